package common

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrorKind is the client-visible failure class carried in the envelope's code field.
type ErrorKind string

const (
	KindConnectionUnavailable ErrorKind = "CONNECTION_UNAVAILABLE"
	KindUninitialized         ErrorKind = "SCHEMA_UNINITIALIZED"
	KindNotFound              ErrorKind = "NOT_FOUND"
	KindValidation            ErrorKind = "VALIDATION_FAILURE"
	KindForbidden             ErrorKind = "FORBIDDEN"
	KindConflict              ErrorKind = "CONFLICT"
	KindUnauthorized          ErrorKind = "UNAUTHORIZED"
	KindWrongPassword         ErrorKind = "WRONG_PASSWORD"
	KindInternal              ErrorKind = "INTERNAL"
)

// UninitializedMessage is shown when the schema has not been created yet.
const UninitializedMessage = "Database belum diinisialisasi. Silakan klik 'Setup Database'."

// AppError is a classified failure. Message is safe to return to clients; Err is only logged.
type AppError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Err }

// Is matches another *AppError by kind, so errors.Is(err, ErrNotFoundKind) works.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

func newAppError(kind ErrorKind, msg string, err error) *AppError {
	return &AppError{Kind: kind, Message: msg, Err: err}
}

func NotFound(msg string) *AppError            { return newAppError(KindNotFound, msg, nil) }
func Validation(msg string) *AppError          { return newAppError(KindValidation, msg, nil) }
func Forbidden(msg string) *AppError           { return newAppError(KindForbidden, msg, nil) }
func Conflict(msg string, err error) *AppError { return newAppError(KindConflict, msg, err) }
func Unauthorized(msg string) *AppError        { return newAppError(KindUnauthorized, msg, nil) }
func WrongPassword(msg string) *AppError       { return newAppError(KindWrongPassword, msg, nil) }
func Uninitialized(err error) *AppError {
	return newAppError(KindUninitialized, UninitializedMessage, err)
}
func ConnectionUnavailable(err error) *AppError {
	return newAppError(KindConnectionUnavailable, "Database connection unavailable", err)
}
func Internal(err error) *AppError { return newAppError(KindInternal, "Internal Server Error", err) }

// KindOf returns the kind of the first AppError in err's chain, or "" when unclassified.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ""
}

// Classify maps storage errors to the taxonomy. Errors that are already classified are
// returned unchanged; anything unrecognised is returned as-is so the caller treats it as internal.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return newAppError(KindNotFound, "Data tidak ditemukan.", err)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "42P01", "42703", "42704":
			return Uninitialized(err)
		case "23505":
			return newAppError(KindConflict, "Data sudah ada.", err)
		case "23503":
			return newAppError(KindConflict, "Data masih direferensikan atau referensi tidak valid.", err)
		case "22P02", "23502", "23514":
			return newAppError(KindValidation, "Data tidak valid.", err)
		}
		return err
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return ConnectionUnavailable(err)
	}
	return err
}

// LooksUninitialized applies the login-path text heuristic for schema problems.
func LooksUninitialized(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "relation") ||
		strings.Contains(msg, "does not exist") ||
		strings.Contains(msg, "foreign key constraint")
}
