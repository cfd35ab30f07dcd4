package sanitizer

import "errors"

const (
	PostalCodeLength       = 8
	HyphenPostalCodeLength = 9
	postalCodeHyphenIndex  = 5
)

var (
	// ErrPostalCodeLength is returned when the raw value is neither 8 nor 9 characters long.
	ErrPostalCodeLength = errors.New("postal code is invalid")

	// ErrPostalCodeFormat is returned when the value has the right length but bad characters.
	ErrPostalCodeFormat = errors.New("postal code format is invalid")
)

// NormalizePostalCode returns the 8-digit canonical form of a CEP.
// Accepted input is "89229780" or "89229-780".
func NormalizePostalCode(raw string) (string, error) {
	switch len(raw) {
	case PostalCodeLength:
		if !allDigits(raw) {
			return "", ErrPostalCodeFormat
		}
		return raw, nil
	case HyphenPostalCodeLength:
		if raw[postalCodeHyphenIndex] != '-' {
			return "", ErrPostalCodeFormat
		}
		canonical := raw[:postalCodeHyphenIndex] + raw[postalCodeHyphenIndex+1:]
		if !allDigits(canonical) {
			return "", ErrPostalCodeFormat
		}
		return canonical, nil
	default:
		return "", ErrPostalCodeLength
	}
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
