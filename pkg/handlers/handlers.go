// Package handlers provides HTTP request and response utilities for JSON APIs.
// These stateless functions standardize body decoding and response formatting
// across handlers.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

var (
	// ErrEmptyBody indicates the request carried no JSON document.
	ErrEmptyBody = errors.New("request body is empty")

	// ErrBodyTooLarge indicates the request body exceeded the configured limit.
	ErrBodyTooLarge = errors.New("request body too large")
)

// DecodeJSON reads a single JSON document from the request body into dst.
// Bodies larger than maxBytes are rejected with ErrBodyTooLarge; a
// non-positive maxBytes disables the limit.
func DecodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, dst any) error {
	body := r.Body
	if maxBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, maxBytes)
	}

	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()

	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return ErrEmptyBody
		case errors.As(err, &maxErr):
			return fmt.Errorf("%w: limit %d bytes", ErrBodyTooLarge, maxErr.Limit)
		default:
			return fmt.Errorf("decode body: %w", err)
		}
	}

	if dec.More() {
		return fmt.Errorf("decode body: unexpected data after JSON document")
	}
	return nil
}

// StatusForDecode maps a DecodeJSON error to a response status.
func StatusForDecode(err error) int {
	if errors.Is(err, ErrBodyTooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

// RespondJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs the error and writes a JSON error response.
// The response body contains {"error": "<error message>"}. Client errors are
// logged at warn level, server errors at error level.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	if status >= http.StatusInternalServerError {
		logger.Error("handler error", "error", err, "status", status)
	} else {
		logger.Warn("request rejected", "error", err, "status", status)
	}
	RespondJSON(w, status, map[string]string{"error": err.Error()})
}
