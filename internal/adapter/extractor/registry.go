package extractor

import (
	"fmt"
	"net/url"

	"github.com/cwygoda/rentscan/internal/domain"
)

// Registry picks the Site whose URL shape matches a page address.
type Registry struct {
	sites []Site
}

// NewRegistry returns a registry holding every supported site in match order.
func NewRegistry() *Registry {
	return &Registry{sites: []Site{Sutochno, Tvil, Kvartirka}}
}

// Resolve returns the first site that matches rawURL, or an error wrapping
// domain.ErrUnsupportedSite.
func (r *Registry) Resolve(rawURL string) (Site, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", rawURL, domain.ErrUnsupportedSite)
	}
	for _, s := range r.sites {
		if s.Match(u) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%s: %w", rawURL, domain.ErrUnsupportedSite)
}

// Sites returns the registered sites in match order.
func (r *Registry) Sites() []Site {
	return r.sites
}
