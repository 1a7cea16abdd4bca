package api

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrKind partitions request-time failures into the categories that map to
// distinct response codes at the HTTP boundary.
type ErrKind int

const (
	// ErrArgument signals a request argument that could not be parsed into
	// the type the endpoint expects.
	ErrArgument ErrKind = iota

	// ErrNotFound signals a lookup of a resource that does not exist.
	ErrNotFound

	// ErrMethodNotAllowed signals an operation outside the endpoint's
	// declared operation set.
	ErrMethodNotAllowed

	// ErrInternal signals an unexpected backend failure.
	ErrInternal
)

func (k ErrKind) String() string {
	switch k {
	case ErrArgument:
		return "Argument"
	case ErrNotFound:
		return "NotFound"
	case ErrMethodNotAllowed:
		return "MethodNotAllowed"
	default:
		return "Internal"
	}
}

// StatusCode maps the error kind to an HTTP response code.
func (k ErrKind) StatusCode() int {
	switch k {
	case ErrArgument:
		return http.StatusBadRequest
	case ErrNotFound:
		return http.StatusNotFound
	case ErrMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}

// MarshalJSON encodes the kind by name, so callers match on a stable string
// rather than an ordinal.
func (k ErrKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a kind from its name.
func (k *ErrKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	switch s {
	case "Argument":
		*k = ErrArgument
	case "NotFound":
		*k = ErrNotFound
	case "MethodNotAllowed":
		*k = ErrMethodNotAllowed
	case "Internal":
		*k = ErrInternal
	default:
		return fmt.Errorf("unknown error kind %q", s)
	}

	return nil
}

// Error is the typed error returned by endpoint operations. Request-time
// errors are always recovered into a response; they never unwind past the
// dispatch boundary.
type Error struct {
	Kind ErrKind `json:"kind"`
	Msg  string  `json:"msg"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

// Argument builds an ErrArgument error.
func Argument(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrArgument, Msg: fmt.Sprintf(format, args...)}
}

// NotFound builds an ErrNotFound error.
func NotFound(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrNotFound, Msg: fmt.Sprintf(format, args...)}
}

// MethodNotAllowed builds an ErrMethodNotAllowed error.
func MethodNotAllowed(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrMethodNotAllowed, Msg: fmt.Sprintf(format, args...)}
}

// Internal builds an ErrInternal error.
func Internal(format string, args ...interface{}) *Error {
	return &Error{Kind: ErrInternal, Msg: fmt.Sprintf(format, args...)}
}

// AsError coerces any error returned by an endpoint into a typed *Error.
// Errors the endpoint did not classify are treated as internal.
func AsError(err error) *Error {
	if apiErr, ok := err.(*Error); ok {
		return apiErr
	}
	return &Error{Kind: ErrInternal, Msg: err.Error()}
}
