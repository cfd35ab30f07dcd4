package errors

import (
	"net/http"

	"github.com/goccy/go-json"
)

func WriteError(w http.ResponseWriter, err error) error {
	appErr := AsAppError(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())

	return json.NewEncoder(w).Encode(appErr.Response())
}

func WriteSuccess(w http.ResponseWriter, statusCode int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	// no recovery possible after WriteHeader; caller logs
	return json.NewEncoder(w).Encode(data)
}
