package api

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/raine/watch-appraiser/internal/analysis"
	"github.com/raine/watch-appraiser/internal/catalog"
	"github.com/raine/watch-appraiser/internal/currency"
	"github.com/raine/watch-appraiser/internal/storage"
	"github.com/rs/zerolog/log"
)

type createAnalysisRequest struct {
	ImageURL string `json:"imageUrl" validate:"required,http_url"`
	Language string `json:"language" validate:"omitempty,max=35"`
}

type analysisResponse struct {
	ID             string           `json:"id"`
	Language       string           `json:"language"`
	CreatedAt      time.Time        `json:"createdAt"`
	Result         *analysis.Result `json:"result"`
	FormattedValue string           `json:"formattedValue"`
}

func ownerFrom(r *http.Request) string {
	id := strings.TrimSpace(r.Header.Get(ClientIDHeader))
	if id == "" {
		id = "anonymous"
	}
	return "api:" + id
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) createAnalysis(w http.ResponseWriter, r *http.Request) {
	var src, lang string

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		path, err := s.spoolUpload(w, r)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		defer os.Remove(path)
		src = path
		lang = r.FormValue("language")
	default:
		var req createAnalysisRequest
		if err := bindJSON(w, r, &req); err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		src = req.ImageURL
		lang = req.Language
	}

	result, err := s.analyzer.Analyze(r.Context(), src, lang)
	if err != nil {
		writeAnalysisError(w, err)
		return
	}

	language := analysis.ResolveLanguage(lang)
	rec, err := s.store.SaveAnalysis(ownerFrom(r), language.Code, result)
	if err != nil {
		log.Error().Err(err).Msg("failed to save analysis")
		writeError(w, http.StatusInternalServerError, "storage_failure", "Failed to save the analysis.")
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(rec))
}

// spoolUpload writes the multipart "image" field to a temp file and returns
// its path.
func (s *Server) spoolUpload(w http.ResponseWriter, r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		return "", errors.New("invalid multipart body or image too large")
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return "", errors.New("missing image file field")
	}
	defer file.Close()

	out, err := os.CreateTemp(s.uploadDir, "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, file); err != nil {
		out.Close()
		os.Remove(out.Name())
		return "", err
	}
	if err := out.Close(); err != nil {
		os.Remove(out.Name())
		return "", err
	}
	return out.Name(), nil
}

func (s *Server) getAnalysis(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.ownedRecord(w, r)
	if !ok {
		return
	}

	resp := toResponse(rec)
	if code := r.URL.Query().Get("currency"); code != "" {
		converted, err := convertValue(rec.Result, code)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", err.Error())
			return
		}
		resp.Result = converted
		resp.FormattedValue = formatRange(converted.EstimatedValue)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) listAnalyses(w http.ResponseWriter, r *http.Request) {
	limit := storage.DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			writeError(w, http.StatusBadRequest, "bad_request", "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	records, err := s.store.ListAnalyses(ownerFrom(r), limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to list analyses")
		writeError(w, http.StatusInternalServerError, "storage_failure", "Failed to load analyses.")
		return
	}

	items := make([]analysisResponse, 0, len(records))
	for i := range records {
		items = append(items, toResponse(&records[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{"analyses": items})
}

func (s *Server) deleteAnalysis(w http.ResponseWriter, r *http.Request) {
	err := s.store.DeleteAnalysis(chi.URLParam(r, "id"), ownerFrom(r))
	switch {
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found", "Analysis not found.")
	case err != nil:
		log.Error().Err(err).Msg("failed to delete analysis")
		writeError(w, http.StatusInternalServerError, "storage_failure", "Failed to delete the analysis.")
	default:
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) ownedRecord(w http.ResponseWriter, r *http.Request) (*storage.Record, bool) {
	rec, err := s.store.GetAnalysis(chi.URLParam(r, "id"))
	if errors.Is(err, storage.ErrNotFound) || (err == nil && rec.Owner != ownerFrom(r)) {
		writeError(w, http.StatusNotFound, "not_found", "Analysis not found.")
		return nil, false
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to load analysis")
		writeError(w, http.StatusInternalServerError, "storage_failure", "Failed to load the analysis.")
		return nil, false
	}
	return rec, true
}

func (s *Server) listBrands(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"brands": s.catalog.Brands()})
}

func (s *Server) brandModels(w http.ResponseWriter, r *http.Request) {
	brand := chi.URLParam(r, "brand")
	models := s.catalog.ByBrand(brand)
	if len(models) == 0 {
		writeError(w, http.StatusNotFound, "not_found", "Unknown brand.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"brand": models[0].Brand, "models": models})
}

func (s *Server) findReference(w http.ResponseWriter, r *http.Request) {
	m, ok := s.catalog.FindByReference(chi.URLParam(r, "ref"))
	if !ok {
		writeError(w, http.StatusNotFound, "not_found", "Unknown reference number.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]catalog.WatchModel{"model": m})
}

func toResponse(rec *storage.Record) analysisResponse {
	return analysisResponse{
		ID:             rec.ID,
		Language:       rec.Language,
		CreatedAt:      rec.CreatedAt,
		Result:         rec.Result,
		FormattedValue: formatRange(rec.Result.EstimatedValue),
	}
}

// convertValue returns a copy of result with its estimated value in code.
func convertValue(result *analysis.Result, code string) (*analysis.Result, error) {
	to, err := currency.Normalize(code)
	if err != nil {
		return nil, err
	}
	converted := *result
	ev := result.EstimatedValue
	if converted.EstimatedValue.Min, err = currency.Convert(ev.Min, ev.Currency, to); err != nil {
		return nil, err
	}
	if converted.EstimatedValue.Max, err = currency.Convert(ev.Max, ev.Currency, to); err != nil {
		return nil, err
	}
	converted.EstimatedValue.Currency = to
	return &converted, nil
}

func formatRange(ev analysis.EstimatedValue) string {
	return currency.Format(ev.Min, ev.Currency) + " - " + currency.Format(ev.Max, ev.Currency)
}
