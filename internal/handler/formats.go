package handler

import (
	"net/http"

	"convertify/internal/catalog"
	"convertify/internal/httputil"
	"convertify/internal/service/converter"
)

// FormatsHandler lists the supported formats and their conversion targets
type FormatsHandler struct {
	registry *catalog.Registry
}

// NewFormatsHandler creates a new formats handler
func NewFormatsHandler(registry *catalog.Registry) *FormatsHandler {
	return &FormatsHandler{registry: registry}
}

// FormatResponse is one entry of the formats listing
type FormatResponse struct {
	catalog.Format
	Targets []string `json:"targets"`
}

// ListFormats returns every catalog format with the targets it converts to
// GET /api/formats
func (h *FormatsHandler) ListFormats(w http.ResponseWriter, r *http.Request) {
	formats := h.registry.List()
	out := make([]FormatResponse, 0, len(formats))
	for _, f := range formats {
		out = append(out, FormatResponse{
			Format:  f,
			Targets: converter.SupportedTargets(f.Token),
		})
	}
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"formats": out,
	})
}
