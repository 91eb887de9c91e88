package extractor

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/cwygoda/rentscan/internal/domain"
)

// errPlaceholder marks cards that are layout filler rather than listings.
var errPlaceholder = errors.New("placeholder card")

type cardParser func(card *goquery.Selection) (domain.Listing, error)

func extractCards(site Site, doc *goquery.Document, selector string, parse cardParser) Extraction {
	var ex Extraction
	doc.Find(selector).Each(func(i int, card *goquery.Selection) {
		listing, err := parse(card)
		switch {
		case errors.Is(err, errPlaceholder):
		case err != nil:
			ex.Skipped = append(ex.Skipped, &domain.ExtractionError{Site: site.Name(), Card: i, Err: err})
		default:
			ex.Listings = append(ex.Listings, listing)
		}
	})
	return ex
}

// first returns the first element under sel matching selector.
func first(sel *goquery.Selection, selector string) (*goquery.Selection, error) {
	found := sel.Find(selector).First()
	if found.Length() == 0 {
		return nil, fmt.Errorf("%s: %w", selector, domain.ErrMissingField)
	}
	return found, nil
}

func text(sel *goquery.Selection, selector string) (string, error) {
	found, err := first(sel, selector)
	if err != nil {
		return "", err
	}
	return found.Text(), nil
}

func attr(sel *goquery.Selection, selector, name string) (string, error) {
	found, err := first(sel, selector)
	if err != nil {
		return "", err
	}
	v, ok := found.Attr(name)
	if !ok || strings.TrimSpace(v) == "" {
		return "", fmt.Errorf("%s[%s]: %w", selector, name, domain.ErrMissingField)
	}
	return v, nil
}

// resolve turns a possibly relative href into an absolute URL on origin.
func resolve(origin, href string) (string, error) {
	base, err := url.Parse(origin)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", fmt.Errorf("href %q: %w", href, err)
	}
	return base.ResolveReference(ref).String(), nil
}

// parsePrice parses a digit string into a non-negative sort key.
func parsePrice(digits string) (int64, error) {
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("price %q: %w", digits, domain.ErrPriceFormat)
	}
	return v, nil
}
