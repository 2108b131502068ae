package ir

import (
	"errors"
	"fmt"
)

// FilterErrorCode categorizes filter failures.
type FilterErrorCode string

const (
	// ErrCodeUnknownSource indicates a source filter names no registered source.
	ErrCodeUnknownSource FilterErrorCode = "UNKNOWN_SOURCE"

	// ErrCodeInvalidChallengeRating indicates a CR bound outside the fixed domain.
	ErrCodeInvalidChallengeRating FilterErrorCode = "INVALID_CHALLENGE_RATING"

	// ErrCodeMalformedToken indicates a filter entry without a dimension prefix.
	// Never fatal: the entry is dropped.
	ErrCodeMalformedToken FilterErrorCode = "MALFORMED_CONSTRAINT_TOKEN"

	// ErrCodeStorageUnavailable indicates a connection or query failure.
	ErrCodeStorageUnavailable FilterErrorCode = "STORAGE_UNAVAILABLE"
)

// Sentinels for errors.Is matching against a *FilterError.
var (
	ErrUnknownSource            = errors.New("unknown source")
	ErrInvalidChallengeRating   = errors.New("invalid challenge rating")
	ErrMalformedConstraintToken = errors.New("malformed constraint token")
	ErrStorageUnavailable       = errors.New("storage unavailable")
)

var sentinels = map[FilterErrorCode]error{
	ErrCodeUnknownSource:          ErrUnknownSource,
	ErrCodeInvalidChallengeRating: ErrInvalidChallengeRating,
	ErrCodeMalformedToken:         ErrMalformedConstraintToken,
	ErrCodeStorageUnavailable:     ErrStorageUnavailable,
}

// FilterError reports why a filter request could not be served.
type FilterError struct {
	// Code identifies the error category.
	Code FilterErrorCode

	// Message is a human-readable description.
	Message string

	// Value is the offending input (source name, CR label, token), if any.
	Value string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *FilterError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.Value != "" {
		msg = fmt.Sprintf("%s (%q)", msg, e.Value)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *FilterError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for the error's code.
func (e *FilterError) Is(target error) bool {
	return sentinels[e.Code] == target
}

// UserMessage is the text shown to the client. Storage failures are kept
// generic.
func (e *FilterError) UserMessage() string {
	if e.Code == ErrCodeStorageUnavailable {
		return "monster lookup failed"
	}
	if e.Value != "" {
		return fmt.Sprintf("could not apply filter: %s %q", e.Message, e.Value)
	}
	return "could not apply filter: " + e.Message
}

// NewUnknownSourceError creates a FilterError for an unregistered source name.
func NewUnknownSourceError(name string) *FilterError {
	return &FilterError{
		Code:    ErrCodeUnknownSource,
		Message: "no source registered under this name",
		Value:   name,
	}
}

// NewInvalidChallengeRatingError creates a FilterError for a CR bound.
func NewInvalidChallengeRatingError(label, reason string) *FilterError {
	return &FilterError{
		Code:    ErrCodeInvalidChallengeRating,
		Message: reason,
		Value:   label,
	}
}

// NewMalformedTokenError creates a FilterError for an unsplittable entry.
func NewMalformedTokenError(token string) *FilterError {
	return &FilterError{
		Code:    ErrCodeMalformedToken,
		Message: "filter entry has no dimension prefix",
		Value:   token,
	}
}

// NewStorageError wraps a database failure.
func NewStorageError(op string, err error) *FilterError {
	return &FilterError{
		Code:    ErrCodeStorageUnavailable,
		Message: op,
		Err:     err,
	}
}

// IsUnknownSource returns true if err is, or wraps, an unknown-source error.
func IsUnknownSource(err error) bool {
	return errors.Is(err, ErrUnknownSource)
}

// IsInvalidChallengeRating returns true if err is, or wraps, an invalid CR error.
func IsInvalidChallengeRating(err error) bool {
	return errors.Is(err, ErrInvalidChallengeRating)
}

// IsStorageUnavailable returns true if err is, or wraps, a storage error.
func IsStorageUnavailable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}

// Code extracts the FilterErrorCode from err, or "" if err is not a FilterError.
func Code(err error) FilterErrorCode {
	var fe *FilterError
	if errors.As(err, &fe) {
		return fe.Code
	}
	return ""
}
