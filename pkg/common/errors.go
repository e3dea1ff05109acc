package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/hashicorp/go-multierror"
)

type ErrorCategory string

const (
	ErrorCategoryNotFound            ErrorCategory = "not_found"
	ErrorCategoryInvalidRule         ErrorCategory = "invalid_rule_configuration"
	ErrorCategoryDuplicateRule       ErrorCategory = "duplicate_rule"
	ErrorCategorySinkFailure         ErrorCategory = "sink_failure"
	ErrorCategoryTransactionConflict ErrorCategory = "transaction_conflict"
	ErrorCategoryValidation          ErrorCategory = "validation"
)

// EngineError carries a category so callers can match with errors.Is against the sentinels below.
type EngineError struct {
	Category ErrorCategory
	Message  string
	Err      error
}

func (e *EngineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Category, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Category, e.Message)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

func (e *EngineError) Is(target error) bool {
	var t *EngineError
	if !errors.As(target, &t) {
		return false
	}
	return t.Message == "" && t.Err == nil && t.Category == e.Category
}

var (
	ErrNotFound            = &EngineError{Category: ErrorCategoryNotFound}
	ErrInvalidRule         = &EngineError{Category: ErrorCategoryInvalidRule}
	ErrDuplicateRule       = &EngineError{Category: ErrorCategoryDuplicateRule}
	ErrSinkFailure         = &EngineError{Category: ErrorCategorySinkFailure}
	ErrTransactionConflict = &EngineError{Category: ErrorCategoryTransactionConflict}
	ErrValidation          = &EngineError{Category: ErrorCategoryValidation}
)

func NewError(category ErrorCategory, format string, args ...any) *EngineError {
	return &EngineError{Category: category, Message: fmt.Sprintf(format, args...)}
}

func WrapError(category ErrorCategory, err error, format string, args ...any) *EngineError {
	return &EngineError{Category: category, Message: fmt.Sprintf(format, args...), Err: err}
}

func NotFound(format string, args ...any) *EngineError {
	return NewError(ErrorCategoryNotFound, format, args...)
}

func Validation(format string, args ...any) *EngineError {
	return NewError(ErrorCategoryValidation, format, args...)
}

// SinkFailure folds the per-sink errors into one SinkFailure, or nil when there are none.
func SinkFailure(merr *multierror.Error) error {
	if err := merr.ErrorOrNil(); err != nil {
		return WrapError(ErrorCategorySinkFailure, err, "%d sink(s) failed", merr.Len())
	}
	return nil
}

// CategoryOf returns the category of the first EngineError in the chain.
func CategoryOf(err error) (ErrorCategory, bool) {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Category, true
	}
	return "", false
}

func HTTPStatus(category ErrorCategory) int {
	switch category {
	case ErrorCategoryNotFound:
		return http.StatusNotFound
	case ErrorCategoryDuplicateRule, ErrorCategoryTransactionConflict:
		return http.StatusConflict
	case ErrorCategoryInvalidRule, ErrorCategoryValidation:
		return http.StatusBadRequest
	case ErrorCategorySinkFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
