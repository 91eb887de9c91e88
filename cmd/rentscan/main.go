package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/cwygoda/rentscan/internal/adapter/extractor"
	httpAdapter "github.com/cwygoda/rentscan/internal/adapter/http"
	"github.com/cwygoda/rentscan/internal/adapter/report"
	"github.com/cwygoda/rentscan/internal/adapter/sqlite"
	"github.com/cwygoda/rentscan/internal/config"
	"github.com/cwygoda/rentscan/internal/domain"
	"github.com/cwygoda/rentscan/internal/logger"
	"github.com/cwygoda/rentscan/internal/worker"
)

func main() {
	os.Exit(runMain(os.Args[1:]))
}

// runMain returns the process exit code so that deferred cleanup runs
// before main exits.
func runMain(args []string) int {
	// A missing .env is normal.
	_ = godotenv.Load()

	cfg, err := config.Load(args)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	logger.Init(logger.IsDev(), cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := httpAdapter.NewClient(
		httpAdapter.WithTimeout(cfg.Timeout),
		httpAdapter.WithUserAgent(cfg.UserAgent),
		httpAdapter.WithInsecureTLS(cfg.InsecureTLS),
		httpAdapter.WithLogger(logger.Log),
	)
	defer client.CloseIdleConnections()

	if cfg.InsecureTLS {
		logger.Log.Warn().Msg("TLS certificate verification is disabled")
	}

	a := &app{
		cfg:         cfg,
		fetcher:     client,
		log:         logger.Log,
		in:          os.Stdin,
		out:         os.Stdout,
		interactive: isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd()),
	}
	if err := a.run(ctx); err != nil {
		logger.Log.Error().Err(err).Msg("run failed")
		return 1
	}
	return 0
}

type app struct {
	cfg         *config.Config
	fetcher     domain.PageFetcher
	log         zerolog.Logger
	in          io.Reader
	out         io.Writer
	interactive bool
}

func (a *app) run(ctx context.Context) error {
	format, err := report.ParseFormat(a.cfg.Format)
	if err != nil {
		return err
	}

	a.log.Info().Str("file", a.cfg.Input).Msg("reading urls")
	urls, err := readURLs(a.cfg.Input)
	if err != nil {
		return fmt.Errorf("read urls: %w", err)
	}

	o := worker.New(a.fetcher, extractor.NewRegistry(), a.log)
	listings, tasks := o.Run(ctx, urls)

	failed := 0
	for _, t := range tasks {
		if t.Failed() {
			failed++
		}
	}
	a.log.Info().Int("count", len(listings)).Int("failed", failed).Msg("finished getting apartments")

	agg := domain.NewAggregator(listings)
	key, ascending, err := a.sortChoice()
	if err != nil {
		return err
	}
	agg.Sort(key, ascending)

	a.log.Info().Str("file", a.cfg.Output).Str("format", string(format)).Msg("writing results")
	if err := report.WriteFile(a.cfg.Output, format, agg); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if a.cfg.DBPath != "" {
		if err := a.saveRun(ctx, len(urls), agg.Listings()); err != nil {
			return err
		}
	}
	return nil
}

// sortChoice uses the configured sort, or asks when none is configured and
// stdin is a terminal.
func (a *app) sortChoice() (domain.SortKey, bool, error) {
	if !a.cfg.Interactive() {
		key, err := domain.ParseSortKey(a.cfg.Sort)
		if err != nil {
			return "", false, err
		}
		ascending, err := domain.ParseOrder(a.cfg.Order)
		if err != nil {
			return "", false, err
		}
		return key, ascending, nil
	}
	if !a.interactive {
		a.log.Debug().Msg("stdin is not a terminal, keeping collected order")
		return domain.SortNone, true, nil
	}
	return askSort(a.in, a.out, a.cfg.Order)
}

func (a *app) saveRun(ctx context.Context, urls int, listings []domain.Listing) error {
	repo, err := sqlite.New(a.cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer repo.Close()

	var store domain.ListingRepository = repo
	id, err := store.SaveRun(ctx, urls, listings)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	a.log.Info().Str("run", id).Str("db", a.cfg.DBPath).Msg("run stored")
	return nil
}
