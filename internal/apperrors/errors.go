package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicateCode indicates that a template (or account/journal) code is already taken.
var ErrDuplicateCode = errors.New("code already exists")

// ErrDuplicateExternalID indicates that a record with the same external id was already committed.
var ErrDuplicateExternalID = errors.New("external id already exists")

// ErrInvalidTemplate indicates a structural authoring error in a transaction template.
var ErrInvalidTemplate = errors.New("invalid transaction template")

// Resolution-time errors raised by the expression resolver and the parameter schema.
var (
	ErrUnknownParameter      = errors.New("unknown parameter")
	ErrTypeMismatch          = errors.New("parameter type mismatch")
	ErrUnsupportedExpression = errors.New("unsupported expression")
)

// ErrUnbalancedTransaction indicates that debits and credits differ for some (currency, layer) group.
var ErrUnbalancedTransaction = errors.New("transaction entries do not balance")

// Referential integrity errors.
var (
	ErrUnknownAccount = errors.New("unknown account")
	ErrUnknownJournal = errors.New("unknown journal")
)

// ErrAlreadyVoided indicates that a transaction has already been voided.
var ErrAlreadyVoided = errors.New("transaction already voided")

// ErrStorageFailure indicates that the durable store rejected an operation.
var ErrStorageFailure = errors.New("storage failure")

// AppError carries an HTTP-ish status code, a kind sentinel and the underlying cause.
// errors.Is matches both the kind and anything in the cause chain.
type AppError struct {
	Code    int
	Message string
	Kind    error
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewAppError builds an AppError. A 5xx code without an explicit kind is treated as a storage failure.
func NewAppError(code int, message string, err error) *AppError {
	var kind error
	if code >= http.StatusInternalServerError {
		kind = ErrStorageFailure
	}
	return &AppError{Code: code, Message: message, Kind: kind, Err: err}
}

// NewStorageError wraps a persistence failure.
func NewStorageError(message string, err error) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message, Kind: ErrStorageFailure, Err: err}
}

// StatusCode maps an error onto the HTTP status a transport adapter should report.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicateCode), errors.Is(err, ErrDuplicateExternalID), errors.Is(err, ErrAlreadyVoided):
		return http.StatusConflict
	case errors.Is(err, ErrUnbalancedTransaction), errors.Is(err, ErrUnknownAccount), errors.Is(err, ErrUnknownJournal):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrInvalidTemplate), errors.Is(err, ErrUnknownParameter), errors.Is(err, ErrTypeMismatch),
		errors.Is(err, ErrUnsupportedExpression), errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	}
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}
