package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"github.com/tendant/family-tree/pkg/familytree"
)

// HTTPError is an error with an HTTP status. Reason is sent to the client;
// LogMessage is only logged.
type HTTPError struct {
	Status     int
	Reason     string
	LogMessage string
	Err        error
}

func (e *HTTPError) Error() string {
	msg := fmt.Sprintf("HTTP %d: %s", e.Status, e.Reason)
	if e.LogMessage != "" {
		msg += " (" + e.LogMessage + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

// NewHTTPError creates an HTTPError whose reason is the standard status text.
func NewHTTPError(status int, err error) *HTTPError {
	return &HTTPError{Status: status, Reason: http.StatusText(status), Err: err}
}

// errorResponse is a problem-details style error body.
type errorResponse struct {
	Type      string `json:"type"`
	Title     string `json:"title"`
	Status    int    `json:"status"`
	Detail    string `json:"detail,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// mapError converts an error to an HTTPError. Errors that are already
// HTTPErrors pass through.
func mapError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}

	switch {
	case errors.Is(err, familytree.ErrInstanceNotFound):
		return NewHTTPError(http.StatusNotFound, err)
	case errors.Is(err, familytree.ErrMissingField),
		errors.Is(err, familytree.ErrInvalidField):
		return NewHTTPError(http.StatusBadRequest, err)
	default:
		return NewHTTPError(http.StatusInternalServerError, err)
	}
}

// writeError logs err and writes it as the response.
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	httpErr := mapError(err)
	requestID, _ := r.Context().Value(RequestIDKey).(string)

	attrs := []any{
		"method", r.Method,
		"path", r.URL.Path,
		"status", httpErr.Status,
		"error", err,
	}
	if requestID != "" {
		attrs = append(attrs, "request_id", requestID)
	}
	if httpErr.Status >= http.StatusInternalServerError {
		slog.Error("Request failed", attrs...)
	} else {
		slog.Warn("Request rejected", attrs...)
	}

	resp := errorResponse{
		Type:      "about:blank",
		Title:     httpErr.Reason,
		Status:    httpErr.Status,
		RequestID: requestID,
	}
	// Server-side details stay in the log.
	if httpErr.Status < http.StatusInternalServerError && httpErr.Err != nil {
		resp.Detail = httpErr.Err.Error()
	}

	render.Status(r, httpErr.Status)
	render.JSON(w, r, resp)
}
