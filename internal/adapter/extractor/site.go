package extractor

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/cwygoda/rentscan/internal/domain"
)

// Site is one of the listing sites this tool knows how to read.
// The set is closed; Registry decides which one applies to a URL.
type Site int

const (
	Sutochno Site = iota + 1
	Tvil
	Kvartirka
)

var (
	tvilPath      = regexp.MustCompile(`^/city/.+/`)
	kvartirkaPath = regexp.MustCompile(`^/.+/`)
)

// Name returns the short site identifier used in logs and errors.
func (s Site) Name() string {
	switch s {
	case Sutochno:
		return "sutochno"
	case Tvil:
		return "tvil"
	case Kvartirka:
		return "kvartirka"
	default:
		return fmt.Sprintf("site(%d)", int(s))
	}
}

func (s Site) String() string {
	return s.Name()
}

// Origin is the base that relative detail links are resolved against.
func (s Site) Origin() string {
	switch s {
	case Sutochno:
		return "https://sutochno.ru"
	case Tvil:
		return "https://tvil.ru"
	case Kvartirka:
		return "https://kvartirka.com"
	default:
		return ""
	}
}

// Match reports whether u has the shape of a listing page for s.
func (s Site) Match(u *url.URL) bool {
	if u == nil || u.Scheme != "https" {
		return false
	}
	host := strings.ToLower(u.Hostname())

	switch s {
	case Sutochno:
		return strings.Contains(host, "sutochno.ru") && u.Query().Get("from") == "mainpage"
	case Tvil:
		return host == "tvil.ru" && tvilPath.MatchString(u.EscapedPath())
	case Kvartirka:
		return host == "kvartirka.com" && kvartirkaPath.MatchString(u.EscapedPath())
	default:
		return false
	}
}

// Extraction is the outcome of reading one page. Cards that could not be
// read are listed in Skipped and contribute no Listing.
type Extraction struct {
	Listings []domain.Listing
	Skipped  []error
}

// Extract reads every listing card in markup. It only fails when the
// document itself cannot be parsed.
func (s Site) Extract(markup string) (Extraction, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return Extraction{}, fmt.Errorf("parse %s markup: %w", s, err)
	}

	switch s {
	case Sutochno:
		return extractCards(s, doc, sutochnoCard, parseSutochnoCard), nil
	case Tvil:
		return extractCards(s, doc, tvilCard, parseTvilCard), nil
	case Kvartirka:
		return extractCards(s, doc, kvartirkaCard, parseKvartirkaCard), nil
	default:
		return Extraction{}, fmt.Errorf("%s: %w", s, domain.ErrUnsupportedSite)
	}
}
