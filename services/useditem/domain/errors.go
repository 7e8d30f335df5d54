package domain

import (
	"errors"
	"strings"
)

// Category sentinels. Every domain failure matches exactly one of them via errors.Is.
var (
	// ErrValidation marks malformed, missing or out-of-range caller input.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound marks a referenced item or review that does not exist.
	ErrNotFound = errors.New("not found")
)

// ValidationError describes why caller input was rejected.
// Fields optionally names the offending JSON fields.
type ValidationError struct {
	Reason string
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Reason
	}
	return e.Reason + ": " + strings.Join(e.Fields, ", ")
}

// Is matches ErrValidation and any ValidationError with the same Reason, so
// a copy carrying Fields still matches its sentinel.
func (e *ValidationError) Is(target error) bool {
	if target == ErrValidation {
		return true
	}
	t, ok := target.(*ValidationError)
	return ok && t.Reason == e.Reason
}

// WithFields returns a copy of e naming the offending fields.
func (e *ValidationError) WithFields(fields ...string) *ValidationError {
	return &ValidationError{Reason: e.Reason, Fields: fields}
}

// NotFoundError reports a missing resource ("item" or "review").
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// Is matches ErrNotFound and any NotFoundError for the same Resource.
func (e *NotFoundError) Is(target error) bool {
	if target == ErrNotFound {
		return true
	}
	t, ok := target.(*NotFoundError)
	return ok && t.Resource == e.Resource
}

// Sentinel errors for the used-item domain. Use errors.Is() to check these.
var (
	ErrMissingField        = &ValidationError{Reason: "missing field"}
	ErrInvalidPrice        = &ValidationError{Reason: "invalid price"}
	ErrMissingKeyword      = &ValidationError{Reason: "missing keyword"}
	ErrMissingReviewField  = &ValidationError{Reason: "missing review field"}
	ErrInvalidRating       = &ValidationError{Reason: "invalid rating"}
	ErrMissingCommentField = &ValidationError{Reason: "missing comment field"}

	ErrItemNotFound   = &NotFoundError{Resource: "item"}
	ErrReviewNotFound = &NotFoundError{Resource: "review"}
)
