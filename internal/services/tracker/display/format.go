// Package display turns catalog entities into plain text for the command line.
package display

import (
	"fmt"
	"strings"

	"github.com/louisbranch/gwtrack/internal/services/tracker/content"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// WikiBaseURL prefixes every item's wiki page name.
const WikiBaseURL = "https://wiki.guildwars.com/wiki/"

// NoValue stands in for a zero numeric column.
const NoValue = "---"

// DefaultLocale is used when no locale is configured.
const DefaultLocale = "en-US"

// Formatter renders numbers with the grouping rules of a locale.
type Formatter struct {
	printer *message.Printer
}

// NewFormatter returns a formatter for locale, a BCP 47 tag such as "en-US".
func NewFormatter(locale string) (*Formatter, error) {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		locale = DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	return &Formatter{printer: message.NewPrinter(tag)}, nil
}

// Number formats n with digit grouping, or NoValue when n is zero.
func (f *Formatter) Number(n int) string {
	if n == 0 {
		return NoValue
	}
	return f.printer.Sprintf("%d", n)
}

// FormatXP formats a quest's experience reward.
func (f *Formatter) FormatXP(xp int) string {
	return f.Number(xp)
}

// ProfessionLabel shows a quest's profession and how it is locked:
// "Monk (P)" for primary only, "(Monk)" for unlocked, and "Monk" otherwise.
func ProfessionLabel(p content.Profession, lock content.ProfessionLock) string {
	if p == content.ProfessionNone {
		return ""
	}
	switch lock {
	case content.LockPrimary:
		return string(p) + " (P)"
	case content.LockUnlocked:
		return "(" + string(p) + ")"
	default:
		return string(p)
	}
}

// WikiURL returns the full wiki address for a page name.
func WikiURL(page string) string {
	return WikiBaseURL + page
}
