package extractor

import (
	"fmt"
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"github.com/cwygoda/rentscan/internal/domain"
	"github.com/cwygoda/rentscan/internal/textnorm"
)

const (
	tvilCard = `div[class="search-result-item search-result-item--b"]`
	// Empty result slots render as exactly four spaces.
	tvilBlankCard = "    "
)

var tvilPriceGroup = regexp.MustCompile(`(\d+).(\d+)`)

func parseTvilCard(card *goquery.Selection) (domain.Listing, error) {
	if card.Text() == tvilBlankCard {
		return domain.Listing{}, errPlaceholder
	}

	name, err := text(card, `span[itemprop="name"]`)
	if err != nil {
		return domain.Listing{}, err
	}

	rawAddress, err := text(card, "span.place-wrapper-text")
	if err != nil {
		return domain.Listing{}, err
	}
	address := textnorm.Normalize(rawAddress, textnorm.Breaks|textnorm.Spaces)

	rawPrice, err := text(card, "div.total-price")
	if err != nil {
		return domain.Listing{}, err
	}
	price := textnorm.Normalize(rawPrice, textnorm.Breaks|textnorm.Spaces)

	value, err := tvilAveragePrice(price)
	if err != nil {
		return domain.Listing{}, err
	}

	href, err := attr(card, "a.title", "href")
	if err != nil {
		return domain.Listing{}, err
	}
	link, err := resolve(Tvil.Origin(), href)
	if err != nil {
		return domain.Listing{}, err
	}

	return domain.NewListing(name, price, value, address, link)
}

// tvilAveragePrice averages the first two "N.NNN" groups of a price range,
// rounding down.
func tvilAveragePrice(price string) (int64, error) {
	groups := tvilPriceGroup.FindAllStringSubmatch(price, -1)
	if len(groups) < 2 {
		return 0, fmt.Errorf("price %q has %d of 2 amounts: %w", price, len(groups), domain.ErrPriceFormat)
	}

	low, err := parsePrice(groups[0][1] + groups[0][2])
	if err != nil {
		return 0, err
	}
	high, err := parsePrice(groups[1][1] + groups[1][2])
	if err != nil {
		return 0, err
	}
	return (low + high) / 2, nil
}
