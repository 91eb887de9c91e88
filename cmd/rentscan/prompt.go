package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cwygoda/rentscan/internal/domain"
)

const (
	sortQuestion  = "Would you like to sort by name or price? (0-name, 1-price, any button-don't sort)"
	orderQuestion = "What type of sort? (a-Ascending, d - Descending)"
)

// askSort asks which field to sort by and, unless the answer is "don't
// sort" or order is already set, in which direction. The direction is asked
// again until it is valid.
func askSort(in io.Reader, out io.Writer, order string) (domain.SortKey, bool, error) {
	sc := bufio.NewScanner(in)

	fmt.Fprintln(out, sortQuestion)
	if !sc.Scan() {
		return domain.SortNone, true, sc.Err()
	}

	var key domain.SortKey
	switch strings.TrimSpace(sc.Text()) {
	case "0":
		key = domain.SortName
	case "1":
		key = domain.SortPrice
	default:
		return domain.SortNone, true, nil
	}

	if order != "" {
		ascending, err := domain.ParseOrder(order)
		if err != nil {
			return "", false, err
		}
		return key, ascending, nil
	}

	for {
		fmt.Fprintln(out, orderQuestion)
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return "", false, err
			}
			return "", false, io.ErrUnexpectedEOF
		}
		switch strings.TrimSpace(sc.Text()) {
		case "a":
			return key, true, nil
		case "d":
			return key, false, nil
		}
		fmt.Fprintln(out, "Wrong input try again")
	}
}
