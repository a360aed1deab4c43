package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNoteNotFound       = errors.New("note was not found")
	ErrUserNotFound       = errors.New("user was not found")
	ErrPermissionNotFound = errors.New("permission was not found")
	ErrAuthorization      = errors.New("insufficient user authorization")
	ErrBadCredentials     = errors.New("invalid credentials")
)

// DataIntegrityError marks stored state that violates an invariant, such as
// an undecodable capability descriptor. It is fatal for the request and maps
// to a server error, never to "no access".
type DataIntegrityError struct {
	Reason string
	Err    error
}

func (e *DataIntegrityError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data integrity: %s: %v", e.Reason, e.Err)
	}
	return "data integrity: " + e.Reason
}

func (e *DataIntegrityError) Unwrap() error { return e.Err }

// TransactionError wraps a storage failure raised inside an atomic
// lifecycle operation after the transaction rolled back.
type TransactionError struct {
	Op  string
	Err error
}

func (e *TransactionError) Error() string { return fmt.Sprintf("failed to %s: %v", e.Op, e.Err) }
func (e *TransactionError) Unwrap() error { return e.Err }

// FieldViolation describes one rejected field of a request.
type FieldViolation struct {
	Field  string `json:"fieldName"`
	Detail string `json:"detail"`
}

type ValidationError struct {
	Violations []FieldViolation
}

func (e *ValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s: %s", e.Violations[0].Field, e.Violations[0].Detail)
}
