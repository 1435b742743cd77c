package scryfall

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// UpstreamError is a non-success upstream response other than the
// "no results" condition (which surfaces as an empty page, not an error).
// It is never retried here; the caller decides what to do with it.
type UpstreamError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("upstream %s error (status %d): %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("upstream %s error (status %d)", e.Endpoint, e.StatusCode)
}

// errorBody is the upstream's JSON error envelope.
type errorBody struct {
	Details string `json:"details"`
}

// newUpstreamError drains the response body for the upstream's error
// details and closes it.
func newUpstreamError(resp *http.Response, endpoint string) *UpstreamError {
	defer resp.Body.Close()

	e := &UpstreamError{
		StatusCode: resp.StatusCode,
		Endpoint:   endpoint,
		Message:    resp.Status,
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return e
	}
	var eb errorBody
	if json.Unmarshal(body, &eb) == nil && eb.Details != "" {
		e.Message = eb.Details
	}
	return e
}
