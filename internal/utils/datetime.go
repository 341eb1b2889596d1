package utils

import (
	"strings"
	"time"
)

// Civil timestamps are stored and compared as "YYYY-MM-DD HH:MM:SS" strings
// with no timezone attached.  The fixed-width form makes lexicographic order
// equal to temporal order, so both SQL and Go can compare them directly.
const (
	localForm = "2006-01-02T15:04"    // HTML datetime-local input value
	civilForm = "2006-01-02 15:04:05" // DB timestamp form
	dateForm  = "2006-01-02"          // date-only filter bound
)

// NormalizeLocalDateTime converts an HTML datetime-local value
// ("YYYY-MM-DDTHH:MM") into civil DB form ("YYYY-MM-DD HH:MM:SS").
// Malformed input returns an error rather than a partial string.
func NormalizeLocalDateTime(s string) (string, error) {
	t, err := time.Parse(localForm, strings.TrimSpace(s))
	if err != nil {
		return "", err
	}
	return t.Format(civilForm), nil
}

// DenormalizeCivil converts a civil DB timestamp back into the
// datetime-local form used to pre-fill form inputs on the edit page.
func DenormalizeCivil(s string) string {
	t, err := time.Parse(civilForm, s)
	if err != nil {
		return ""
	}
	return t.Format(localForm)
}

// DayStart pads a date-only filter bound to the first second of that day.
// An invalid date yields "" so the caller can drop the bound.
func DayStart(date string) string {
	if _, err := time.Parse(dateForm, date); err != nil {
		return ""
	}
	return date + " 00:00:00"
}

// DayEnd pads a date-only filter bound to the last second of that day.
func DayEnd(date string) string {
	if _, err := time.Parse(dateForm, date); err != nil {
		return ""
	}
	return date + " 23:59:59"
}

// CivilNow renders a wall-clock instant in civil DB form.
func CivilNow(t time.Time) string {
	return t.Format(civilForm)
}

// FormatCivil renders a civil timestamp for display, e.g.
// "January 2, 2006 at 3:04 PM".  Unparseable values pass through unchanged.
func FormatCivil(s string) string {
	t, err := time.Parse(civilForm, s)
	if err != nil {
		return s
	}
	return t.Format("January 2, 2006 at 3:04 PM")
}
