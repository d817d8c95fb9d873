package rmapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrMissingCredentials is returned before any call is attempted when the
// tenant config is incomplete.
var ErrMissingCredentials = errors.New("rmapi: customer id and api key are required")

// UpstreamError is a non-2xx response from the vendor. Status is forwarded to
// the client unchanged and Messages become the JSON:API error titles.
type UpstreamError struct {
	Status   int
	Messages []string
	Body     []byte
}

// Error implements the error interface.
func (e *UpstreamError) Error() string {
	return fmt.Sprintf("rm api responded %d: %s", e.Status, strings.Join(e.Messages, "; "))
}

// IsUpstreamStatus reports whether err is an UpstreamError with the given
// status.
func IsUpstreamStatus(err error, status int) bool {
	var upstream *UpstreamError
	return errors.As(err, &upstream) && upstream.Status == status
}

type errorBody struct {
	Errors []struct {
		Code    int    `json:"Code"`
		Message string `json:"Message"`
		SubCode int    `json:"SubCode"`
	} `json:"Errors"`
}

// classifyStatusError builds an UpstreamError from a failed response. Bodies
// that are not in the vendor's error format fall back to the raw text, then
// to the status text.
func classifyStatusError(status int, body []byte) *UpstreamError {
	upstream := &UpstreamError{Status: status, Body: body}

	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil {
		for _, e := range parsed.Errors {
			if e.Message != "" {
				upstream.Messages = append(upstream.Messages, e.Message)
			}
		}
	}

	if len(upstream.Messages) == 0 {
		text := strings.TrimSpace(string(body))
		if text == "" || strings.HasPrefix(text, "{") || strings.HasPrefix(text, "<") {
			text = http.StatusText(status)
		}
		upstream.Messages = []string{text}
	}

	return upstream
}
