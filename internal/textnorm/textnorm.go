// Package textnorm collapses whitespace in scraped text so that prices and
// addresses from different sites compare and sort the same way.
package textnorm

import "regexp"

// Mode selects which whitespace classes Normalize rewrites.
type Mode uint8

const (
	// Tabs removes tab characters entirely.
	Tabs Mode = 1 << iota
	// Breaks removes line breaks, leaving a single word boundary per run.
	Breaks
	// Spaces collapses every whitespace run into one space.
	Spaces
)

// Default matches the behaviour callers get when they ask for nothing special.
const Default = Spaces

var (
	tabRun   = regexp.MustCompile(`\t+`)
	breakRun = regexp.MustCompile(`[\r\n]+`)
	// Includes no-break and other Unicode spaces, common in price markup.
	spaceRun = regexp.MustCompile(`[\s\v\x{85}\p{Z}]+`)
)

// Normalize applies the enabled modes in order: tabs, breaks, spaces.
// The result is not trimmed.
func Normalize(s string, m Mode) string {
	if m&Tabs != 0 {
		s = tabRun.ReplaceAllString(s, "")
	}
	if m&Breaks != 0 {
		s = breakRun.ReplaceAllString(s, " ")
	}
	if m&Spaces != 0 {
		s = spaceRun.ReplaceAllString(s, " ")
	}
	return s
}
