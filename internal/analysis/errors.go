package analysis

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies why an analysis failed.
type Kind int

const (
	KindUnclassified Kind = iota
	KindEmptyInput
	KindImageReadFailure
	KindResponseParseFailure
	KindRateLimited
	KindTimeout
	KindNetworkFailure
	KindEmptyResult
	KindCanceled
)

var kindNames = map[Kind]string{
	KindUnclassified:         "unclassified",
	KindEmptyInput:           "empty_input",
	KindImageReadFailure:     "image_read_failure",
	KindResponseParseFailure: "response_parse_failure",
	KindRateLimited:          "rate_limited",
	KindTimeout:              "timeout",
	KindNetworkFailure:       "network_failure",
	KindEmptyResult:          "empty_result",
	KindCanceled:             "canceled",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Retryable reports whether another attempt may succeed.
func (k Kind) Retryable() bool {
	switch k {
	case KindResponseParseFailure, KindRateLimited, KindTimeout:
		return true
	}
	return false
}

// Error is a classified analysis failure.
type Error struct {
	Kind Kind
	Err  error
}

// NewError wraps err with the given kind.
func NewError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Errorf creates a classified error from a format string.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Message returns text suitable for showing to an end user.
func (e *Error) Message() string {
	switch e.Kind {
	case KindEmptyInput:
		return "No image provided."
	case KindImageReadFailure:
		return "Failed to read the image. Please try taking the photo again."
	case KindResponseParseFailure:
		return "The AI service returned an invalid response. Please try again."
	case KindRateLimited:
		return "Service is temporarily busy. Please try again in a few moments."
	case KindTimeout:
		return "Analysis took too long. Please try again with a clearer image."
	case KindNetworkFailure:
		return "Network error. Please check your connection and try again."
	case KindEmptyResult:
		return "AI service returned empty result."
	case KindCanceled:
		return "Analysis was canceled."
	}
	if e.Err != nil {
		return "Analysis failed: " + e.Err.Error()
	}
	return "Analysis failed."
}

// KindOf returns the kind of a classified error. Context errors that were never
// classified map to Canceled and Timeout; anything else is Unclassified.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	switch {
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	}
	return KindUnclassified
}

// AsError returns err as a classified error, wrapping it as Unclassified if
// needed. A nil err returns nil.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return &Error{Kind: KindOf(err), Err: err}
}
