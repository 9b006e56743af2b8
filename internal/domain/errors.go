package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrVendorMismatch indicates an attempt to mix items from different
	// vendors in a single cart.
	ErrVendorMismatch = errors.New("cart holds items from another vendor")
)

// ValidationError marks a malformed or server-rejected order draft. It is
// user-correctable and shown inline by the UI.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// TransportError marks a network or timeout failure talking to the remote
// service. Retriable by user action; never retried automatically.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }

func (e *TransportError) Unwrap() error { return e.Err }

// RejectedError marks a business-rule refusal from the remote service, e.g.
// cancelling an order that is no longer pending. Terminal for that attempt.
type RejectedError struct {
	Message string
}

func (e *RejectedError) Error() string { return e.Message }
