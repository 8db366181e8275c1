package i18n

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// filmDateLayout is the wire format of content unit film dates
const filmDateLayout = "2006-01-02"

// plural appends "s" unless n is exactly 1
func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}

// FormatDuration renders seconds as "H hora(s) e M minuto(s)".
// The hours clause is omitted when there are no full hours.
func FormatDuration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	hours := seconds / 3600
	minutes := (seconds % 3600) / 60

	mins := fmt.Sprintf("%d %s", minutes, plural(minutes, "minuto"))
	if hours == 0 {
		return mins
	}
	return fmt.Sprintf("%d %s e %s", hours, plural(hours, "hora"), mins)
}

// PartCount renders the number of parts of a lesson, e.g. "3 partes"
func PartCount(n int) string {
	return fmt.Sprintf("%d %s", n, plural(n, "parte"))
}

// Supported date layouts, matched against the UI language
var (
	dateTags = []language.Tag{
		language.Portuguese, // first entry is the fallback
		language.English,
		language.AmericanEnglish,
		language.Spanish,
		language.Russian,
		language.Hebrew,
	}
	dateLayouts = []string{
		"02/01/2006",
		"02/01/2006",
		"01/02/2006",
		"02/01/2006",
		"02.01.2006",
		"02.01.2006",
	}
	dateMatcher = language.NewMatcher(dateTags)
)

// DateLayout returns the day/month/year layout for a UI language
func DateLayout(lang string) string {
	tag, err := language.Parse(lang)
	if err != nil {
		return dateLayouts[0]
	}
	_, idx, _ := dateMatcher.Match(tag)
	return dateLayouts[idx]
}

// FormatDate renders an API film date ("YYYY-MM-DD", optionally followed by a
// time part) for the UI language. The date is anchored at local midnight so it
// never shifts a day. Unparseable input is returned unchanged.
func FormatDate(date, lang string) string {
	raw := date
	if len(raw) > len(filmDateLayout) {
		raw = raw[:len(filmDateLayout)]
	}
	t, err := time.ParseInLocation(filmDateLayout, raw, time.Local)
	if err != nil {
		return date
	}
	return t.Format(DateLayout(lang))
}
