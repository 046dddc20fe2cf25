package errs

import (
	"github.com/finlog/finlog-backend/internal/models"
)

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

// NotFoundError covers missing records, records owned by someone else, and
// filtered queries that match nothing. Foreign records are never reported as
// forbidden, only as not found.
type NotFoundError struct {
	ErrorMessage
}

type AlreadyExistsError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// CategoryInUseError blocks category deletion while transactions still
// reference it. The payload carries everything the caller needs to resolve
// the conflict.
type CategoryInUseError struct {
	ErrorMessage
	Category     *models.Category
	Count        int
	Transactions []models.Transaction
}

type DatabaseError struct {
	ErrorMessage
	Operation string
	Err       error
}

func (e *DatabaseError) Unwrap() error { return e.Err }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewAlreadyExistsError(message string) *AlreadyExistsError {
	return &AlreadyExistsError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewCategoryInUseError(cat *models.Category, txs []models.Transaction) *CategoryInUseError {
	return &CategoryInUseError{
		ErrorMessage: ErrorMessage{Message: "category is referenced by existing transactions"},
		Category:     cat,
		Count:        len(txs),
		Transactions: txs,
	}
}

func NewDatabaseError(operation, message string, err error) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: message},
		Operation:    operation,
		Err:          err,
	}
}
