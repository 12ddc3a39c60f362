package analysis

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKind_Retryable(t *testing.T) {
	retryable := map[Kind]bool{
		KindUnclassified:         false,
		KindEmptyInput:           false,
		KindImageReadFailure:     false,
		KindResponseParseFailure: true,
		KindRateLimited:          true,
		KindTimeout:              true,
		KindNetworkFailure:       false,
		KindEmptyResult:          false,
		KindCanceled:             false,
	}
	for kind, want := range retryable {
		assert.Equal(t, want, kind.Retryable(), kind.String())
	}
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "rate_limited", KindRateLimited.String())
	assert.Equal(t, "kind(42)", Kind(42).String())
}

func TestKindOf(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewError(KindNetworkFailure, errors.New("dial tcp")))
	assert.Equal(t, KindNetworkFailure, KindOf(wrapped))
	assert.Equal(t, KindCanceled, KindOf(context.Canceled))
	assert.Equal(t, KindTimeout, KindOf(fmt.Errorf("call: %w", context.DeadlineExceeded)))
	assert.Equal(t, KindUnclassified, KindOf(errors.New("boom")))
}

func TestAsError(t *testing.T) {
	assert.Nil(t, AsError(nil))

	e := AsError(errors.New("boom"))
	assert.Equal(t, KindUnclassified, e.Kind)
	assert.Equal(t, "Analysis failed: boom", e.Message())

	orig := NewError(KindTimeout, errors.New("slow"))
	assert.Same(t, orig, AsError(fmt.Errorf("wrap: %w", orig)))
}

func TestError_Message(t *testing.T) {
	assert.Equal(t, "Service is temporarily busy. Please try again in a few moments.",
		NewError(KindRateLimited, nil).Message())
	assert.Equal(t, "The AI service returned an invalid response. Please try again.",
		NewError(KindResponseParseFailure, nil).Message())
	assert.Equal(t, "Network error. Please check your connection and try again.",
		NewError(KindNetworkFailure, nil).Message())
	assert.Equal(t, "Analysis failed.", NewError(KindUnclassified, nil).Message())
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("cause")
	err := NewError(KindTimeout, cause)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "timeout: cause", err.Error())
	assert.Equal(t, "timeout", NewError(KindTimeout, nil).Error())
}
