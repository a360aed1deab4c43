package service

import (
	"errors"

	"noteshare/internal/domain"
)

// wrapTxErr turns a raw storage failure surfaced by a rolled-back
// transaction into a TransactionError. Errors the core already typed pass
// through unchanged so callers keep their 403/404/400 mapping.
func wrapTxErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrNoteNotFound) ||
		errors.Is(err, domain.ErrUserNotFound) ||
		errors.Is(err, domain.ErrPermissionNotFound) ||
		errors.Is(err, domain.ErrAuthorization) {
		return err
	}
	var (
		integrity  *domain.DataIntegrityError
		validation *domain.ValidationError
		tx         *domain.TransactionError
	)
	if errors.As(err, &integrity) || errors.As(err, &validation) || errors.As(err, &tx) {
		return err
	}
	return &domain.TransactionError{Op: op, Err: err}
}
