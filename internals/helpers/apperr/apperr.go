// Package apperr holds the application error taxonomy shared by services and controllers.
package apperr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindAuthorization
	KindNotFound
	KindPrecondition
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthenticated:
		return "unauthenticated"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	case KindPrecondition:
		return "precondition"
	default:
		return "internal"
	}
}

// Error carries a Kind, a user-facing message and optional per-field details.
type Error struct {
	Kind    Kind
	Message string
	Fields  map[string][]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// HTTPStatus maps the kind to the status code the API answers with.
func (e *Error) HTTPStatus() int {
	switch e.Kind {
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthenticated:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindPrecondition:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Message: msg} }

func ValidationFields(msg string, fields map[string][]string) *Error {
	return &Error{Kind: KindValidation, Message: msg, Fields: fields}
}

func Unauthenticated(msg string) *Error { return &Error{Kind: KindUnauthenticated, Message: msg} }

func Authorization(msg string) *Error { return &Error{Kind: KindAuthorization, Message: msg} }

func NotFound(msg string) *Error { return &Error{Kind: KindNotFound, Message: msg} }

func Precondition(msg string) *Error { return &Error{Kind: KindPrecondition, Message: msg} }

// Internal wraps an unexpected failure; the message stays generic for clients.
func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf reports the kind of err, KindInternal for anything not built by this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

func Is(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}

// FromDB turns driver errors into taxonomy errors. Unique violations become
// precondition failures, anything else is internal.
func FromDB(err error, msg string) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return &Error{Kind: KindPrecondition, Message: duplicateMessage(pgErr.ConstraintName), Err: err}
		case "23503":
			return &Error{Kind: KindNotFound, Message: "referenced record not found", Err: err}
		}
	}
	return Internal(msg, err)
}

func duplicateMessage(constraint string) string {
	if constraint == "" {
		return "duplicate record"
	}
	return "duplicate record (" + constraint + ")"
}
