package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedSite = errors.New("unsupported site")
	ErrMissingField    = errors.New("missing field")
	ErrPriceFormat     = errors.New("unrecognized price format")
	ErrRunNotFound     = errors.New("run not found")
)

// TransportError is returned when a page could not be fetched, either
// because the request failed or the server answered with a non-200 status.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: response returned with status %d", e.URL, e.StatusCode)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// ExtractionError describes a single card that was skipped.
type ExtractionError struct {
	Site string
	Card int
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%s card %d: %v", e.Site, e.Card, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
