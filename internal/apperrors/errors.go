package apperrors

import (
	"errors"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates that the supplied credentials or token were rejected.
var ErrUnauthorized = errors.New("unauthorized")

// ErrRefreshTokenExpired indicates that a refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// ErrConfiguration indicates that a required setting (secret, expiry) is missing or invalid.
// It is not recoverable by retrying.
var ErrConfiguration = errors.New("configuration error")

// RuleUnique is the rule name reported when a field collides with an existing record.
const RuleUnique = "unique"

// FieldError describes a single failed constraint on one field.
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// ValidationError carries every field that failed validation.
// It matches ErrValidation with errors.Is, and also ErrDuplicate when any
// field failed the unique rule.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Field+": "+f.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(msgs, "; ")
}

func (e *ValidationError) Is(target error) bool {
	switch target {
	case ErrValidation:
		return true
	case ErrDuplicate:
		for _, f := range e.Fields {
			if f.Rule == RuleUnique {
				return true
			}
		}
	}
	return false
}

// NewValidationError builds a ValidationError from the given field errors.
func NewValidationError(fields ...FieldError) *ValidationError {
	return &ValidationError{Fields: fields}
}
