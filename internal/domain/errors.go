package domain

import "errors"

// Error categories. Every specific error below wraps exactly one of them so
// callers can branch on the category with errors.Is.
var (
	ErrValidation    = errors.New("validation error")
	ErrNotFound      = errors.New("resource not found")
	ErrInvalidFormat = errors.New("invalid format")
	ErrStoreRead     = errors.New("store read error")
)

// Domain errors
var (
	ErrNameRequired           = newError(ErrValidation, "name is required")
	ErrNameTooLong            = newError(ErrValidation, "name exceeds maximum length")
	ErrTitleRequired          = newError(ErrValidation, "title is required")
	ErrCategoryRequired       = newError(ErrValidation, "category is required")
	ErrInvalidAmount          = newError(ErrValidation, "amount must be greater than zero")
	ErrInvalidTarget          = newError(ErrValidation, "target must be greater than zero")
	ErrInvalidBalance         = newError(ErrValidation, "balance must be a valid number")
	ErrInvalidTransactionType = newError(ErrValidation, "type must be income or expense")
	ErrInvalidDate            = newError(ErrValidation, "date must be formatted as YYYY-MM-DD")
	ErrDueDateRequired        = newError(ErrValidation, "due date is required")
	ErrInvalidRange           = newError(ErrValidation, "invalid report range")

	ErrAccountNotFound     = newError(ErrNotFound, "account not found")
	ErrTransactionNotFound = newError(ErrNotFound, "transaction not found")
	ErrGoalNotFound        = newError(ErrNotFound, "goal not found")
	ErrBudgetNotFound      = newError(ErrNotFound, "budget not found")
	ErrBillNotFound        = newError(ErrNotFound, "bill not found")

	ErrNotAnObject = newError(ErrInvalidFormat, "top-level value must be an object")
)

// Validation constants
const (
	MaxNameLength = 255
)

type categorizedError struct {
	kind error
	msg  string
}

func newError(kind error, msg string) error {
	return &categorizedError{kind: kind, msg: msg}
}

func (e *categorizedError) Error() string { return e.msg }

func (e *categorizedError) Unwrap() error { return e.kind }
