package util

import (
	"errors"
	"strings"

	"github.com/ttacon/libphonenumber"
)

var ErrInvalidPhone = errors.New("invalid phone number")

// NormalizePhone validates and formats a raw phone input as E.164.
// defaultRegion is used for numbers given without a country code.
func NormalizePhone(raw, defaultRegion string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", ErrInvalidPhone
	}

	num, err := libphonenumber.Parse(raw, defaultRegion)
	if err != nil {
		return "", ErrInvalidPhone
	}

	if !libphonenumber.IsValidNumber(num) {
		return "", ErrInvalidPhone
	}

	return libphonenumber.Format(num, libphonenumber.E164), nil
}

// PhoneDigits strips the leading + from an E.164 number. wa.me
// links take the number without it.
func PhoneDigits(e164 string) string {
	return strings.TrimPrefix(e164, "+")
}
