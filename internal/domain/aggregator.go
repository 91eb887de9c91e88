package domain

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// ReportHeader is the first line of every rendered report.
const ReportHeader = "Name\tPrice\tAddress\tURL\n"

// SortKey selects the field a report is ordered by.
type SortKey string

const (
	SortNone  SortKey = "none"
	SortName  SortKey = "name"
	SortPrice SortKey = "price"
)

// ParseSortKey accepts "name", "price", "none" or an empty string (none).
func ParseSortKey(s string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(s))); k {
	case "":
		return SortNone, nil
	case SortNone, SortName, SortPrice:
		return k, nil
	default:
		return "", fmt.Errorf("invalid sort key %q", s)
	}
}

// ParseOrder maps "asc"/"a" to true and "desc"/"d" to false.
func ParseOrder(s string) (ascending bool, err error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "a", "asc", "ascending":
		return true, nil
	case "d", "desc", "descending":
		return false, nil
	default:
		return false, fmt.Errorf("invalid sort order %q", s)
	}
}

// Aggregator owns the listings collected during a run.
type Aggregator struct {
	listings []Listing
}

// NewAggregator takes ownership of listings in their collected order.
func NewAggregator(listings []Listing) *Aggregator {
	return &Aggregator{listings: listings}
}

// Listings returns a copy of the collection in its current order.
func (a *Aggregator) Listings() []Listing {
	return slices.Clone(a.listings)
}

// Len returns the number of listings.
func (a *Aggregator) Len() int {
	return len(a.listings)
}

// Sort dispatches to SortByName or SortByPrice; SortNone leaves the order alone.
func (a *Aggregator) Sort(key SortKey, ascending bool) {
	switch key {
	case SortName:
		a.SortByName(ascending)
	case SortPrice:
		a.SortByPrice(ascending)
	}
}

// SortByName orders listings lexicographically by name. Equal names keep
// their relative order in both directions.
func (a *Aggregator) SortByName(ascending bool) {
	sortStable(a.listings, func(x, y Listing) int {
		return strings.Compare(x.Name, y.Name)
	}, ascending)
}

// SortByPrice orders listings by numeric price, stable in both directions.
func (a *Aggregator) SortByPrice(ascending bool) {
	sortStable(a.listings, func(x, y Listing) int {
		return cmp.Compare(x.PriceValue, y.PriceValue)
	}, ascending)
}

// Render produces the tab-separated report: a header, then one line per listing.
func (a *Aggregator) Render() string {
	var b strings.Builder
	b.WriteString(ReportHeader)
	for _, l := range a.listings {
		b.WriteString(l.String())
	}
	return b.String()
}

func sortStable(listings []Listing, compare func(x, y Listing) int, ascending bool) {
	if !ascending {
		asc := compare
		compare = func(x, y Listing) int { return asc(y, x) }
	}
	slices.SortStableFunc(listings, compare)
}
