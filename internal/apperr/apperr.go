package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	KindUnexpected Kind = iota
	KindAuthentication
	KindAuthorization
	KindValidation
	KindNotFound
	KindConflict
	KindUpstream
)

// Error is the error type every handler returns. Status is only consulted
// for KindUpstream, where the mapped provider status is carried along.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil && e.Message == "" {
		return e.Err.Error()
	}
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus returns the response status for the error kind.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindUpstream:
		if e.Status != 0 {
			return e.Status
		}
		return http.StatusInternalServerError
	}
	return http.StatusInternalServerError
}

func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindAuthentication, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindAuthorization, Message: msg}
}

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func Validationf(format string, args ...any) *Error {
	return &Error{Kind: KindValidation, Message: fmt.Sprintf(format, args...)}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func Upstream(status int, msg string, err error) *Error {
	return &Error{Kind: KindUpstream, Status: status, Message: msg, Err: err}
}

// Unavailable reports a dependency that is not configured or reachable.
func Unavailable(msg string) *Error {
	return &Error{Kind: KindUpstream, Status: http.StatusServiceUnavailable, Message: msg}
}

type providerStatus interface {
	ProviderStatus() int
}

// FromProvider maps an LLM provider failure onto the response clients see.
// A rejected key is our misconfiguration, so it surfaces as 503.
func FromProvider(err error, fallback string) *Error {
	var ps providerStatus
	if errors.As(err, &ps) {
		switch ps.ProviderStatus() {
		case http.StatusUnauthorized:
			return Upstream(http.StatusServiceUnavailable, "Invalid OpenAI API key", err)
		case http.StatusTooManyRequests:
			return Upstream(http.StatusTooManyRequests, "Rate limit exceeded. Please try again later.", err)
		}
	}
	return Upstream(http.StatusInternalServerError, fallback, err)
}

// Public is the message safe to send to clients.
func (e *Error) Public() string {
	if e.Kind == KindUnexpected || e.Message == "" {
		return "Internal server error"
	}
	return e.Message
}

func Unexpected(msg string, err error) *Error {
	return &Error{Kind: KindUnexpected, Message: msg, Err: err}
}

// As unwraps err into an *Error. Anything else is reported as unexpected.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Unexpected("", err)
}
