package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"convertify/internal/domain"
	"convertify/internal/domain/models"
	"convertify/internal/domain/services"
	"convertify/internal/httputil"
)

// ConversionHandler handles upload-and-convert requests
type ConversionHandler struct {
	service        services.ConversionService
	maxUploadBytes int64
	logger         *slog.Logger
}

// NewConversionHandler creates a new conversion handler
func NewConversionHandler(service services.ConversionService, maxUploadBytes int64, logger *slog.Logger) *ConversionHandler {
	return &ConversionHandler{
		service:        service,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// ConvertResponse is the body of a successful conversion
type ConvertResponse struct {
	Success bool                     `json:"success"`
	Result  *models.ConversionRecord `json:"result"`
	URL     string                   `json:"url"`
}

// HistoryResponse is the body of the history endpoint
type HistoryResponse struct {
	Success bool                      `json:"success"`
	Results []models.ConversionRecord `json:"results"`
}

// ConvertAndUpload converts the multipart "file" to the "targetFormat" form
// value and stores the result.
// POST /api/file/convertAndUpload
func (h *ConversionHandler) ConvertAndUpload(w http.ResponseWriter, r *http.Request) {
	upload, err := httputil.ParseUpload(w, r, "file", h.maxUploadBytes)
	if err != nil {
		switch {
		case errors.Is(err, httputil.ErrNoFile):
			handleError(w, &domain.MissingInputError{Field: "file"})
		case errors.Is(err, httputil.ErrTooLarge):
			respondFailure(w, http.StatusRequestEntityTooLarge, "file too large", "")
		default:
			respondFailure(w, http.StatusBadRequest, err.Error(), "")
		}
		return
	}

	resp, err := h.service.ConvertAndStore(r.Context(), &services.ConvertRequest{
		FileName:     upload.Name,
		TargetFormat: r.FormValue("targetFormat"),
		Payload:      upload.Data,
		UserID:       httputil.GetUserID(r),
	})
	if err != nil {
		h.logger.Warn("convert and upload failed",
			"file_name", upload.Name,
			"target", r.FormValue("targetFormat"),
			"error", err,
		)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, ConvertResponse{
		Success: true,
		Result:  resp.Record,
		URL:     resp.URL,
	})
}

// ListConversions returns the caller's history. Anonymous callers see the
// shared anonymous history.
// GET /api/conversions?limit=N
func (h *ConversionHandler) ListConversions(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondFailure(w, http.StatusBadRequest, "limit must be a positive integer", "")
			return
		}
		limit = n
	}

	records, err := h.service.ListConversions(r.Context(), httputil.GetUserID(r), limit)
	if err != nil {
		h.logger.Error("list conversions failed", "error", err)
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, HistoryResponse{Success: true, Results: records})
}
