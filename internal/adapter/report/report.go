// Package report writes an aggregated run to a file or stream.
package report

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v2"

	"github.com/cwygoda/rentscan/internal/domain"
)

// Format names an output encoding.
type Format string

const (
	TSV  Format = "tsv"
	JSON Format = "json"
	YAML Format = "yaml"
)

// ParseFormat accepts tsv, json, yaml (and yml). Empty means tsv.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "tsv", "txt":
		return TSV, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("unknown report format %q", s)
	}
}

type record struct {
	Name       string `json:"name" yaml:"name"`
	Price      string `json:"price" yaml:"price"`
	PriceValue int64  `json:"price_value" yaml:"price_value"`
	Address    string `json:"address" yaml:"address"`
	URL        string `json:"url" yaml:"url"`
}

func records(listings []domain.Listing) []record {
	out := make([]record, len(listings))
	for i, l := range listings {
		out[i] = record{
			Name:       l.Name,
			Price:      l.PriceDisplay,
			PriceValue: l.PriceValue,
			Address:    l.Address,
			URL:        l.URL,
		}
	}
	return out
}

// Write encodes agg to w in the given format, keeping its current order.
func Write(w io.Writer, format Format, agg *domain.Aggregator) error {
	switch format {
	case TSV:
		_, err := io.WriteString(w, agg.Render())
		return err
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(records(agg.Listings()))
	case YAML:
		out, err := yaml.Marshal(records(agg.Listings()))
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = w.Write(out)
		return err
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

// WriteFile replaces the file at path with the report.
func WriteFile(path string, format Format, agg *domain.Aggregator) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(f)
	if err := Write(bw, format, agg); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
