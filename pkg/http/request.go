package http

import (
	"bytes"
	"io"
	"net/http"
	"strings"

	apperrors "marketplace/pkg/errors"

	"github.com/goccy/go-json"
)

// DecodeJSON decodes the request body into dst. Numbers are kept as json.Number so
// callers can tell a numeric field from a string one.
func DecodeJSON(r *http.Request, dst any) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return apperrors.InvalidInput("Invalid request body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(dst); err != nil {
		return apperrors.InvalidInput("Invalid request body")
	}
	return nil
}

// QueryValues returns every non-blank value of a repeatable query parameter.
func QueryValues(r *http.Request, key string) []string {
	raw := r.URL.Query()[key]
	values := make([]string, 0, len(raw))
	for _, v := range raw {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func QueryValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}
