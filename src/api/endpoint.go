package api

import "net/http"

// Operation enumerates the verbs an endpoint can support.
type Operation int

const (
	// Get reads a resource by identifier.
	Get Operation = iota
	// Create adds a resource.
	Create
	// Update replaces a resource.
	Update
	// Delete removes a resource.
	Delete
)

func (o Operation) String() string {
	switch o {
	case Get:
		return "Get"
	case Create:
		return "Create"
	case Update:
		return "Update"
	case Delete:
		return "Delete"
	default:
		return "Unknown"
	}
}

func operationFromMethod(method string) (Operation, bool) {
	switch method {
	case http.MethodGet:
		return Get, true
	case http.MethodPost:
		return Create, true
	case http.MethodPut:
		return Update, true
	case http.MethodDelete:
		return Delete, true
	}
	return 0, false
}

// IDParser converts the raw identifier segment of a request path into the
// typed identifier an endpoint expects. A parse failure is reported to the
// caller as an Argument error, before the endpoint is invoked.
type IDParser[ID any] func(raw string) (ID, error)

// StringID is the identity parser, for endpoints addressed by plain strings
// or not addressed at all.
func StringID(raw string) (string, error) {
	return raw, nil
}

// Endpoint is the contract a resource implements to be served by a Server.
// It is polymorphic over the identifier, value, input and output types, so
// heterogeneous resources register and dispatch uniformly. An endpoint
// declares which operations it supports; the server rejects anything outside
// that set with MethodNotAllowed instead of silently ignoring it.
type Endpoint[ID, T, In, Out any] interface {
	// Operations declares the verbs this endpoint accepts.
	Operations() []Operation

	// Get looks up a resource by identifier.
	Get(id ID) (T, error)

	// Create adds a resource built from in.
	Create(in In) (Out, error)

	// Update replaces the resource at id with one built from in.
	Update(id ID, in In) (Out, error)

	// Delete removes the resource at id.
	Delete(id ID) error
}

// Unimplemented can be embedded by endpoints that wire only a subset of the
// operations. Its methods all fail with MethodNotAllowed; the server's
// operation check makes them unreachable in practice.
type Unimplemented[ID, T, In, Out any] struct{}

// Get ...
func (Unimplemented[ID, T, In, Out]) Get(ID) (T, error) {
	var zero T
	return zero, MethodNotAllowed("get not supported")
}

// Create ...
func (Unimplemented[ID, T, In, Out]) Create(In) (Out, error) {
	var zero Out
	return zero, MethodNotAllowed("create not supported")
}

// Update ...
func (Unimplemented[ID, T, In, Out]) Update(ID, In) (Out, error) {
	var zero Out
	return zero, MethodNotAllowed("update not supported")
}

// Delete ...
func (Unimplemented[ID, T, In, Out]) Delete(ID) error {
	return MethodNotAllowed("delete not supported")
}
