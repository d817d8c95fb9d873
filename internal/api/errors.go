package api

import (
	"errors"
	"net/http"

	"github.com/phrazzld/kb-gateway/internal/api/shared"
	"github.com/phrazzld/kb-gateway/internal/domain"
	"github.com/phrazzld/kb-gateway/internal/jsonapi"
	"github.com/phrazzld/kb-gateway/internal/platform/okapi"
	"github.com/phrazzld/kb-gateway/internal/platform/rmapi"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes. Vendor
// responses keep their own status.
func MapErrorToStatusCode(err error) int {
	var (
		upstream *rmapi.UpstreamError
		okapiErr *okapi.ServiceError
	)

	switch {
	case errors.As(err, &upstream):
		return upstream.Status

	// Request-level rejections
	case errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrInvalidQuery),
		errors.Is(err, domain.ErrConflictingFilters),
		errors.Is(err, domain.ErrNotDeletable):
		return http.StatusBadRequest

	// Payload rejections
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrMalformedPayload):
		return http.StatusUnprocessableEntity

	// Not found errors
	case errors.Is(err, domain.ErrNotFound),
		errors.Is(err, domain.ErrLabelDeleted):
		return http.StatusNotFound

	// Credentials
	case errors.Is(err, domain.ErrConfigurationMissing),
		errors.Is(err, rmapi.ErrMissingCredentials):
		return http.StatusUnauthorized

	case errors.As(err, &okapiErr):
		if okapiErr.Status >= http.StatusBadRequest {
			return okapiErr.Status
		}
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing title for errors that do not
// carry their own messages. Internal details never reach the client.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, domain.ErrMalformedPayload):
		return "Invalid JSON"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid id"
	case errors.Is(err, domain.ErrConflictingFilters):
		return "Conflicting filter parameters"
	case errors.Is(err, domain.ErrNotDeletable):
		return "Entity cannot be deleted"
	case errors.Is(err, domain.ErrLabelDeleted):
		return "Custom label not found"
	case errors.Is(err, domain.ErrNotFound):
		return "Not found"
	case errors.Is(err, domain.ErrConfigurationMissing),
		errors.Is(err, rmapi.ErrMissingCredentials):
		return "RM API credentials are missing"
	default:
		var okapiErr *okapi.ServiceError
		if errors.As(err, &okapiErr) {
			return "Configuration service request failed"
		}
		return "An unexpected error occurred"
	}
}

// ErrorObjects builds the JSON:API error objects for err. Validation
// failures keep their field order and vendor failures keep the vendor's
// messages.
func ErrorObjects(err error) []jsonapi.Error {
	var (
		verrs    domain.ValidationErrors
		reqErr   *domain.RequestError
		upstream *rmapi.UpstreamError
	)

	switch {
	case errors.As(err, &verrs):
		out := make([]jsonapi.Error, 0, len(verrs))
		for _, v := range verrs {
			out = append(out, jsonapi.Error{
				Title:  v.Message,
				Detail: v.Detail,
				Source: &jsonapi.ErrorSource{Pointer: "/data/attributes/" + v.Field},
			})
		}
		return out

	case errors.As(err, &upstream):
		out := make([]jsonapi.Error, 0, len(upstream.Messages))
		for _, m := range upstream.Messages {
			out = append(out, jsonapi.Error{Title: m})
		}
		if len(out) == 0 {
			out = append(out, jsonapi.Error{Title: http.StatusText(upstream.Status)})
		}
		return out

	case errors.As(err, &reqErr):
		e := jsonapi.Error{Title: reqErr.Message}
		if e.Title == "" {
			e.Title = GetSafeErrorMessage(err)
		}
		if reqErr.Parameter != "" {
			e.Source = &jsonapi.ErrorSource{Parameter: reqErr.Parameter}
		}
		return []jsonapi.Error{e}

	default:
		return []jsonapi.Error{{Title: GetSafeErrorMessage(err)}}
	}
}

// HandleAPIError writes the error response for err and logs the redacted
// error.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error) {
	status := MapErrorToStatusCode(err)

	var opts []shared.ResponseOption
	if status == http.StatusUnauthorized {
		opts = append(opts, shared.WithElevatedLogLevel())
	}
	shared.RespondWithErrorAndLog(w, r, status, ErrorObjects(err), err, opts...)
}
