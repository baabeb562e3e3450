package services

import (
	"errors"
	"strings"

	"github.com/fisk/followup/internal/normalize"
)

// ErrNoPhone is returned when a phone has no area code to dial from abroad.
var ErrNoPhone = errors.New("phone number has no area code")

// NormPhone renders 8 to 11 digit numbers in the Brazilian display format
// and keeps anything else exactly as typed.
func NormPhone(p string) string {
	s := strings.TrimSpace(p)
	d := normalize.Digits(s)
	if len(d) < 8 || len(d) > 11 {
		return s
	}
	if f, ok := normalize.FormatPhone(d); ok {
		return f
	}
	return s
}

// InternationalDigits returns the number as 55 + area code + subscriber,
// the form WhatsApp links expect.
func InternationalDigits(p string) (string, error) {
	d := normalize.Digits(p)
	switch {
	case len(d) == 10 || len(d) == 11:
		return "55" + d, nil
	case (len(d) == 12 || len(d) == 13) && strings.HasPrefix(d, "55"):
		return d, nil
	}
	return "", ErrNoPhone
}

// WhatsAppURL is the click-to-chat link for p.
func WhatsAppURL(p string) (string, error) {
	d, err := InternationalDigits(p)
	if err != nil {
		return "", err
	}
	return "https://wa.me/" + d, nil
}
