package service

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a request failure.
type Kind string

const (
	KindAuthRequired       Kind = "auth_required"
	KindInvalidToken       Kind = "invalid_token"
	KindInvalidCredentials Kind = "invalid_credentials"
	KindBadRequest         Kind = "bad_request"
	KindInternal           Kind = "internal"
)

// Status maps the kind to an HTTP status code.
func (k Kind) Status() int {
	switch k {
	case KindAuthRequired, KindInvalidToken, KindInvalidCredentials:
		return http.StatusUnauthorized
	case KindBadRequest:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Scope selects the error body layout. Auth endpoints answer with
// {success, message}; legal endpoints with {error[, details]}.
type Scope int

const (
	ScopeLegal Scope = iota
	ScopeAuth
)

// Error is a request failure that knows how it is rendered.
type Error struct {
	Kind    Kind
	Scope   Scope
	Message string
	// Details is echoed to the client on internal errors.
	Details string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Status() int {
	return e.Kind.Status()
}

// ErrorBody is the JSON error payload.
type ErrorBody struct {
	Success *bool  `json:"success,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
	Details string `json:"details,omitempty"`
}

func (e *Error) Body() ErrorBody {
	if e.Scope == ScopeAuth {
		success := false
		return ErrorBody{Success: &success, Message: e.Message}
	}
	return ErrorBody{Error: e.Message, Details: e.Details}
}

// AsError converts any error into an *Error, treating unknown errors as
// internal.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return &Error{
		Kind:    KindInternal,
		Message: "Internal server error",
		Err:     err,
	}
}

func authError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Scope: ScopeAuth, Message: message}
}

func legalError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Scope: ScopeLegal, Message: message}
}

// BadBody reports a request body that could not be decoded.
func BadBody(scope Scope, err error) *Error {
	return &Error{Kind: KindBadRequest, Scope: scope, Message: "Invalid request body", Err: err}
}
