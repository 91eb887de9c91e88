package domain

import "context"

// PageFetcher is the driven port for downloading listing pages.
// Fetch returns the decoded body text, or a *TransportError.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// ListingRepository is the driven port for keeping a finished run.
type ListingRepository interface {
	SaveRun(ctx context.Context, urls int, listings []Listing) (string, error)
	Listings(ctx context.Context, runID string) ([]Listing, error)
}
