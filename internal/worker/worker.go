package worker

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/cwygoda/rentscan/internal/adapter/extractor"
	"github.com/cwygoda/rentscan/internal/domain"
)

// Orchestrator fetches every input page concurrently and extracts listings
// from the ones it can read.
type Orchestrator struct {
	fetcher  domain.PageFetcher
	registry *extractor.Registry
	log      zerolog.Logger
}

// New creates a new orchestrator. The fetcher is shared by all tasks and
// must be safe for concurrent use.
func New(fetcher domain.PageFetcher, registry *extractor.Registry, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		fetcher:  fetcher,
		registry: registry,
		log:      log,
	}
}

// result is owned by exactly one task until Wait returns.
type result struct {
	task     domain.FetchTask
	listings []domain.Listing
}

// Run processes all urls and returns once every fetch has finished. A failed
// URL is reported in its FetchTask and never affects the others. Listings
// are returned grouped by URL in input order.
func (o *Orchestrator) Run(ctx context.Context, urls []string) ([]domain.Listing, []domain.FetchTask) {
	o.log.Info().Int("count", len(urls)).Msg("getting apartments")

	results := make([]result, len(urls))
	var g errgroup.Group
	for i, url := range urls {
		g.Go(func() error {
			results[i] = o.process(ctx, url)
			return nil
		})
	}
	_ = g.Wait()

	var listings []domain.Listing
	tasks := make([]domain.FetchTask, len(results))
	for i, r := range results {
		listings = append(listings, r.listings...)
		tasks[i] = r.task
	}

	o.log.Info().Int("count", len(listings)).Int("urls", len(urls)).Msg("apartments collected")
	return listings, tasks
}

func (o *Orchestrator) process(ctx context.Context, url string) (res result) {
	res.task.URL = url
	log := o.log.With().Str("url", url).Logger()

	defer func() {
		if r := recover(); r != nil {
			res = result{task: domain.FetchTask{URL: url, Site: res.task.Site, Err: fmt.Errorf("panic: %v", r)}}
			log.Error().Interface("panic", r).Msg("task aborted")
		}
	}()

	site, err := o.registry.Resolve(url)
	if err != nil {
		res.task.Err = err
		log.Warn().Msg("this site cannot be parsed")
		return res
	}
	res.task.Site = site.Name()
	log = log.With().Str("site", site.Name()).Logger()

	body, err := o.fetcher.Fetch(ctx, url)
	if err != nil {
		res.task.Err = err
		evt := log.Error().Err(err)
		var te *domain.TransportError
		if errors.As(err, &te) && te.StatusCode != 0 {
			evt = evt.Int("status", te.StatusCode)
		}
		evt.Msg("fetch failed")
		return res
	}

	ex, err := site.Extract(body)
	if err != nil {
		res.task.Err = err
		log.Error().Err(err).Msg("extraction failed")
		return res
	}

	for _, skipped := range ex.Skipped {
		log.Debug().Err(skipped).Msg("card skipped")
	}
	res.listings = ex.Listings
	res.task.Records = len(ex.Listings)
	res.task.Skipped = len(ex.Skipped)
	log.Info().Int("count", res.task.Records).Int("skipped", res.task.Skipped).Msg("page parsed")
	return res
}
