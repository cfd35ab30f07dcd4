// Package sanitizer provides input normalization for catalog data.
//
// All normalization functions are idempotent: applying them multiple times produces
// the same result. Free-text helpers never fail and return empty strings for blank
// input; identifier and postal-code helpers report malformed input explicitly.
//
// Normalization includes:
//   - Strings: collapse whitespace, trim leading/trailing spaces
//   - Search text: strip diacritics and lower-case ("São Paulo" becomes "sao paulo")
//   - Identifiers: sign-less base-10 integers only
//   - Postal codes (CEP): 8 digits, or 5 digits + hyphen + 3 digits, stored as 8 digits
//   - Slices: remove duplicates and empty values after normalization
package sanitizer
