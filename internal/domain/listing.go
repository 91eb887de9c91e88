package domain

import "fmt"

// Listing is one rental offer normalized from a site-specific card.
// Values are passed by copy and never mutated after NewListing.
type Listing struct {
	Name         string
	PriceDisplay string
	PriceValue   int64
	Address      string
	URL          string
}

// NewListing builds a Listing and checks the fields the aggregate relies on.
func NewListing(name, priceDisplay string, priceValue int64, address, url string) (Listing, error) {
	if url == "" {
		return Listing{}, fmt.Errorf("url: %w", ErrMissingField)
	}
	if priceValue < 0 {
		return Listing{}, fmt.Errorf("price %d: %w", priceValue, ErrPriceFormat)
	}
	return Listing{
		Name:         name,
		PriceDisplay: priceDisplay,
		PriceValue:   priceValue,
		Address:      address,
		URL:          url,
	}, nil
}

// String returns the tab-delimited report line, newline included.
func (l Listing) String() string {
	return l.Name + "\t" + l.PriceDisplay + "\t" + l.Address + "\t" + l.URL + "\n"
}

// FetchTask records what happened to one input URL.
type FetchTask struct {
	URL     string
	Site    string
	Records int
	Skipped int
	Err     error
}

// Failed reports whether the URL contributed nothing because of an error.
func (t FetchTask) Failed() bool {
	return t.Err != nil
}
