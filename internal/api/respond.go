package api

import (
	"encoding/json"
	"net/http"

	"github.com/raine/watch-appraiser/internal/analysis"
	"github.com/rs/zerolog/log"
)

// StatusClientClosedRequest is the non-standard status used when the caller
// went away before the analysis finished.
const StatusClientClosedRequest = 499

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorBody{Error: code, Message: message})
}

// StatusForKind maps an analysis error kind to an HTTP status.
func StatusForKind(kind analysis.Kind) int {
	switch kind {
	case analysis.KindEmptyInput:
		return http.StatusBadRequest
	case analysis.KindImageReadFailure:
		return http.StatusUnprocessableEntity
	case analysis.KindRateLimited:
		return http.StatusServiceUnavailable
	case analysis.KindTimeout:
		return http.StatusGatewayTimeout
	case analysis.KindNetworkFailure, analysis.KindResponseParseFailure, analysis.KindEmptyResult:
		return http.StatusBadGateway
	case analysis.KindCanceled:
		return StatusClientClosedRequest
	}
	return http.StatusInternalServerError
}

func writeAnalysisError(w http.ResponseWriter, err error) {
	ae := analysis.AsError(err)
	status := StatusForKind(ae.Kind)
	if status == http.StatusServiceUnavailable {
		w.Header().Set("Retry-After", "5")
	}
	writeError(w, status, ae.Kind.String(), ae.Message())
}
