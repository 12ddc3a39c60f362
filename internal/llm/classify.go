package llm

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"syscall"

	"github.com/raine/watch-appraiser/internal/analysis"
	"google.golang.org/genai"
)

// classifyError tags a Gemini client error with an analysis kind. The checks
// run on error types and status codes, not on message text.
func classifyError(err error) *analysis.Error {
	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	var netErr net.Error
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError

	switch {
	case errors.Is(err, context.Canceled):
		return analysis.NewError(analysis.KindCanceled, err)
	case errors.Is(err, context.DeadlineExceeded):
		return analysis.NewError(analysis.KindTimeout, err)
	case errors.As(err, &apiErr):
		return analysis.NewError(apiErrorKind(apiErr), err)
	case errors.As(err, &apiErrPtr) && apiErrPtr != nil:
		return analysis.NewError(apiErrorKind(*apiErrPtr), err)
	case errors.As(err, &syntaxErr), errors.As(err, &typeErr), errors.Is(err, io.ErrUnexpectedEOF):
		return analysis.NewError(analysis.KindResponseParseFailure, err)
	case errors.As(err, &netErr):
		if netErr.Timeout() {
			return analysis.NewError(analysis.KindTimeout, err)
		}
		return analysis.NewError(analysis.KindNetworkFailure, err)
	case errors.Is(err, syscall.ECONNREFUSED), errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.ENETUNREACH), errors.Is(err, syscall.EHOSTUNREACH):
		return analysis.NewError(analysis.KindNetworkFailure, err)
	}
	return analysis.NewError(analysis.KindUnclassified, err)
}

func apiErrorKind(e genai.APIError) analysis.Kind {
	switch e.Status {
	case "RESOURCE_EXHAUSTED", "UNAVAILABLE":
		return analysis.KindRateLimited
	case "DEADLINE_EXCEEDED":
		return analysis.KindTimeout
	}
	switch e.Code {
	case http.StatusTooManyRequests, http.StatusServiceUnavailable:
		return analysis.KindRateLimited
	case http.StatusRequestTimeout, http.StatusGatewayTimeout:
		return analysis.KindTimeout
	case http.StatusBadGateway:
		return analysis.KindNetworkFailure
	}
	return analysis.KindUnclassified
}
