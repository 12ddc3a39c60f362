package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"syscall"
	"testing"

	"github.com/raine/watch-appraiser/internal/analysis"
	"github.com/stretchr/testify/assert"
	"google.golang.org/genai"
)

type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestClassifyError(t *testing.T) {
	var syntaxErr *json.SyntaxError
	syntaxSample := json.Unmarshal([]byte("{"), &struct{}{})
	assert.ErrorAs(t, syntaxSample, &syntaxErr)

	tests := []struct {
		name string
		err  error
		want analysis.Kind
	}{
		{"canceled", fmt.Errorf("call: %w", context.Canceled), analysis.KindCanceled},
		{"deadline", context.DeadlineExceeded, analysis.KindTimeout},
		{"429", genai.APIError{Code: 429, Message: "quota", Status: "RESOURCE_EXHAUSTED"}, analysis.KindRateLimited},
		{"429 pointer", &genai.APIError{Code: 429}, analysis.KindRateLimited},
		{"503", genai.APIError{Code: 503, Status: "UNAVAILABLE"}, analysis.KindRateLimited},
		{"504", genai.APIError{Code: 504}, analysis.KindTimeout},
		{"deadline status", genai.APIError{Code: 499, Status: "DEADLINE_EXCEEDED"}, analysis.KindTimeout},
		{"502", genai.APIError{Code: 502}, analysis.KindNetworkFailure},
		{"400", genai.APIError{Code: 400, Status: "INVALID_ARGUMENT"}, analysis.KindUnclassified},
		{"wrapped api error", fmt.Errorf("generate: %w", genai.APIError{Code: 429}), analysis.KindRateLimited},
		{"dns", &net.DNSError{Err: "no such host", Name: "generativelanguage.googleapis.com"}, analysis.KindNetworkFailure},
		{"dial", &net.OpError{Op: "dial", Net: "tcp", Err: os.NewSyscallError("connect", syscall.ECONNREFUSED)}, analysis.KindNetworkFailure},
		{"url timeout", &url.Error{Op: "Post", URL: "https://example.com", Err: timeoutError{}}, analysis.KindTimeout},
		{"connection refused", fmt.Errorf("post: %w", syscall.ECONNREFUSED), analysis.KindNetworkFailure},
		{"syntax", fmt.Errorf("decode: %w", syntaxSample), analysis.KindResponseParseFailure},
		{"truncated", io.ErrUnexpectedEOF, analysis.KindResponseParseFailure},
		{"other", errors.New("something odd"), analysis.KindUnclassified},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifyError(tt.err)
			assert.Equal(t, tt.want, got.Kind)
			assert.Equal(t, tt.err, got.Err)
		})
	}
}
