package extractor

import (
	"fmt"
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"github.com/cwygoda/rentscan/internal/domain"
	"github.com/cwygoda/rentscan/internal/textnorm"
)

const sutochnoCard = "div.card"

var (
	// "12.345.₽": thousands, separator, hundreds, separator, currency.
	sutochnoPrice = regexp.MustCompile(`(\d+)(.)(\d+)(.)(₽)`)
	// "за сутки", "за ночь".
	sutochnoPer = regexp.MustCompile(`([\p{L}\p{N}_]+)(.)([\p{L}\p{N}_]+)`)
)

func parseSutochnoCard(card *goquery.Selection) (domain.Listing, error) {
	title, err := first(card, "a.card-content__object-type")
	if err != nil {
		return domain.Listing{}, err
	}
	href, err := attr(card, "a.card-content__object-type", "href")
	if err != nil {
		return domain.Listing{}, err
	}
	link, err := resolve(Sutochno.Origin(), href)
	if err != nil {
		return domain.Listing{}, err
	}

	addressBlock, err := first(card, "p.address__text")
	if err != nil {
		return domain.Listing{}, err
	}
	rawAddress, err := text(addressBlock, "span")
	if err != nil {
		return domain.Listing{}, err
	}
	address := textnorm.Normalize(rawAddress, textnorm.Tabs|textnorm.Breaks|textnorm.Spaces)

	rawPrice, err := text(card, "div.price")
	if err != nil {
		return domain.Listing{}, err
	}
	m := sutochnoPrice.FindStringSubmatch(rawPrice)
	if m == nil {
		return domain.Listing{}, fmt.Errorf("price %q: %w", rawPrice, domain.ErrPriceFormat)
	}
	value, err := parsePrice(m[1] + m[3])
	if err != nil {
		return domain.Listing{}, err
	}

	rawPer, err := text(card, "span.price-text")
	if err != nil {
		return domain.Listing{}, err
	}
	per := sutochnoPer.FindStringSubmatch(rawPer)
	if per == nil {
		return domain.Listing{}, fmt.Errorf("price unit %q: %w", rawPer, domain.ErrPriceFormat)
	}

	display := m[1] + " " + m[3] + " " + m[5] + " " + per[1] + " " + per[3]
	return domain.NewListing(title.Text(), display, value, address, link)
}
