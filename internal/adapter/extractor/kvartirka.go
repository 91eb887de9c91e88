package extractor

import (
	"fmt"
	"regexp"

	"github.com/PuerkitoBio/goquery"

	"github.com/cwygoda/rentscan/internal/domain"
	"github.com/cwygoda/rentscan/internal/textnorm"
)

const (
	kvartirkaCard = `li[class="flat-card_root__Uuvel flat-list-item_item__Ei9_x flat-list-item_card___MR1H"]`

	metroPrefix = "Рядом со станцией метро "
)

var kvartirkaDigits = regexp.MustCompile(`\d+`)

func parseKvartirkaCard(card *goquery.Selection) (domain.Listing, error) {
	name, err := text(card, "span.flat-card-info_buildingType__ZNUgY")
	if err != nil {
		return domain.Listing{}, err
	}

	address, err := kvartirkaAddress(card)
	if err != nil {
		return domain.Listing{}, err
	}

	rawPrice, err := text(card, "div.price_root__o0FPR")
	if err != nil {
		return domain.Listing{}, err
	}
	price := textnorm.Normalize(rawPrice, textnorm.Breaks|textnorm.Spaces)

	digits := kvartirkaDigits.FindString(price)
	if digits == "" {
		return domain.Listing{}, fmt.Errorf("price %q: %w", price, domain.ErrPriceFormat)
	}
	value, err := parsePrice(digits)
	if err != nil {
		return domain.Listing{}, err
	}

	href, err := attr(card, "a.flat-card_link__okzL_", "href")
	if err != nil {
		return domain.Listing{}, err
	}
	link, err := resolve(Kvartirka.Origin(), href)
	if err != nil {
		return domain.Listing{}, err
	}

	return domain.NewListing(name, price, value, address, link)
}

// kvartirkaAddress prefers the nearest metro station over the street address.
func kvartirkaAddress(card *goquery.Selection) (string, error) {
	if subway, err := text(card, "span.flat-subway_text__r3OuS"); err == nil {
		return metroPrefix + textnorm.Normalize(subway, textnorm.Breaks|textnorm.Spaces), nil
	}
	street, err := text(card, "span.address_root__tRWWF")
	if err != nil {
		return "", err
	}
	return textnorm.Normalize(street, textnorm.Default), nil
}
