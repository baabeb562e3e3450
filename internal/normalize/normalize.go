package normalize

import (
	"math"
	"net/mail"
	"strconv"
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// DateLayout is the display/storage form of every user-facing date.
const DateLayout = "02/01/2006"

// Digits strips every non-digit character.
func Digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FormatDate accepts "ddmmyyyy" (separators ignored) and returns it as
// DD/MM/YYYY when it names a real calendar date.
func FormatDate(s string) (string, bool) {
	d := Digits(s)
	if len(d) != 8 {
		return "", false
	}
	day, _ := strconv.Atoi(d[0:2])
	month, _ := strconv.Atoi(d[2:4])
	year, _ := strconv.Atoi(d[4:8])
	if year < 1 || month < 1 || month > 12 || day < 1 {
		return "", false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date rolls 31/02 over into March
	if t.Day() != day || int(t.Month()) != month {
		return "", false
	}
	return d[0:2] + "/" + d[2:4] + "/" + d[4:8], true
}

// ParseDate turns user or stored text into a UTC calendar date.
func ParseDate(s string) (time.Time, bool) {
	f, ok := FormatDate(s)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.ParseInLocation(DateLayout, f, time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseStoredDate is the strict reader for values already persisted as
// DD/MM/YYYY; anything else is unparseable.
func ParseStoredDate(s string) (time.Time, bool) {
	t, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), time.UTC)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DateString renders t as DD/MM/YYYY.
func DateString(t time.Time) string {
	return t.Format(DateLayout)
}

// ISODate renders the sortable form used for store-side comparisons.
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

// Day truncates t to its calendar date in loc, returned as a UTC date so it
// compares cleanly with ParseDate results.
func Day(t time.Time, loc *time.Location) time.Time {
	if loc != nil {
		t = t.In(loc)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatPhone renders Brazilian numbers:
// 11 digits "(DD) DDDDD-DDDD", 10 "(DD) DDDD-DDDD", 9 "DDDDD-DDDD", 8 "DDDD-DDDD".
func FormatPhone(s string) (string, bool) {
	d := Digits(s)
	if len(d) > 11 {
		d = d[:11]
	}
	switch len(d) {
	case 11:
		return "(" + d[0:2] + ") " + d[2:7] + "-" + d[7:], true
	case 10:
		return "(" + d[0:2] + ") " + d[2:6] + "-" + d[6:], true
	case 9:
		return d[0:5] + "-" + d[5:], true
	case 8:
		return d[0:4] + "-" + d[4:], true
	}
	return "", false
}

// Money re-renders currency text as X.XXX,XX. Empty or non-numeric input
// yields "" and is not an error.
func Money(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return ""
	}
	return FormatMoney(v)
}

// FormatMoney renders v with "." thousands and "," decimals.
func FormatMoney(v float64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	raw := strconv.FormatFloat(v, 'f', 2, 64)
	intPart, frac := raw[:len(raw)-3], raw[len(raw)-2:]

	var b strings.Builder
	if neg && strings.Trim(raw, "0.") != "" {
		b.WriteByte('-')
	}
	lead := len(intPart) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(intPart[:lead])
	for i := lead; i < len(intPart); i += 3 {
		b.WriteByte('.')
		b.WriteString(intPart[i : i+3])
	}
	b.WriteByte(',')
	b.WriteString(frac)
	return b.String()
}

// MoneyValue parses a canonical X.XXX,XX string back into a number; used for
// sorting by fee.
func MoneyValue(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Text trims s, collapses control characters and composes it to NFC so
// accented input from different keyboards is stored identically.
func Text(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
	return norm.NFC.String(s)
}

// Email is the comparison key for duplicate detection, not a validator.
func Email(s string) string {
	return strings.ToLower(Text(s))
}

// ValidEmail reports whether s parses as an address. Empty is fine: email
// is optional.
func ValidEmail(s string) bool {
	e := Email(s)
	if e == "" {
		return true
	}
	_, err := mail.ParseAddress(e)
	return err == nil
}
