package domain

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidPostcode is returned for values that do not match the UK postcode grammar.
var ErrInvalidPostcode = errors.New("invalid postcode format")

// ukPostcodePattern matches outward code + optional space + inward code, e.g. "SW1A 1AA", "M1 1AE", "CR26XH".
var ukPostcodePattern = regexp.MustCompile(`^[A-Z]{1,2}[0-9][A-Z0-9]? ?[0-9][A-Z]{2}$`)

// NormalizePostcode upper-cases and trims a postcode. It does not validate.
func NormalizePostcode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ValidatePostcode normalizes raw and checks it against the UK postcode grammar.
func ValidatePostcode(raw string) (string, error) {
	pc := NormalizePostcode(raw)
	if !ukPostcodePattern.MatchString(pc) {
		return "", ErrInvalidPostcode
	}
	return pc, nil
}
