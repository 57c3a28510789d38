package httputil

import (
	"encoding/json"
	"errors"
	"net/http"

	dErrors "realty/pkg/domain-errors"
)

func WriteJSON(w http.ResponseWriter, status int, response any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// Headers are already sent; an encoding error cannot change the status.
	_ = json.NewEncoder(w).Encode(response)
}

// ErrorResponse is the JSON envelope written for every failed request.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// WriteError translates a domain error into an HTTP status and error envelope.
func WriteError(w http.ResponseWriter, err error) {
	WriteJSON(w, StatusFor(err), ErrorBody(err))
}

// StatusFor returns the HTTP status that WriteError would use for err.
func StatusFor(err error) int {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		return DomainCodeToHTTPStatus(domainErr.Code)
	}
	return http.StatusInternalServerError
}

// ErrorBody builds the error envelope for err. Messages of non-domain errors
// are never exposed.
func ErrorBody(err error) ErrorResponse {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		return ErrorResponse{
			Error:            DomainCodeToHTTPCode(domainErr.Code),
			ErrorDescription: domainErr.Message,
		}
	}
	return ErrorResponse{Error: DomainCodeToHTTPCode(dErrors.CodeInternal)}
}

// DomainCodeToHTTPStatus translates domain error codes to HTTP status codes.
func DomainCodeToHTTPStatus(code dErrors.Code) int {
	switch code {
	case dErrors.CodeNotFound:
		return http.StatusNotFound
	case dErrors.CodeBadRequest, dErrors.CodeValidation:
		return http.StatusBadRequest
	case dErrors.CodeNotInitialized:
		return http.StatusServiceUnavailable
	case dErrors.CodeUnavailable:
		return http.StatusBadGateway
	case dErrors.CodeNotImplemented:
		return http.StatusNotImplemented
	case dErrors.CodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// DomainCodeToHTTPCode translates domain error codes to the "error" field of the envelope.
func DomainCodeToHTTPCode(code dErrors.Code) string {
	switch code {
	case dErrors.CodeNotFound:
		return "not_found"
	case dErrors.CodeBadRequest:
		return "bad_request"
	case dErrors.CodeValidation:
		return "validation_error"
	case dErrors.CodeNotInitialized:
		return "database_not_initialized"
	case dErrors.CodeUnavailable:
		return "upstream_unavailable"
	case dErrors.CodeNotImplemented:
		return "not_implemented"
	case dErrors.CodeTimeout:
		return "upstream_timeout"
	default:
		return "internal_error"
	}
}
