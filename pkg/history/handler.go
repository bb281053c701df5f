package history

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/logger"
)

// Handler exposes read-only history endpoints
type Handler struct {
	service *Service
	logger  *logger.Logger
}

func NewHandler(service *Service, logger *logger.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the history routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/pages/{id}/history", func(r chi.Router) {
		r.Get("/", h.ListByPage)
	})
}

// ListByPage returns a page's check history
// @Summary List check history
// @Description List a page's check history, newest first
// @Tags History
// @Produce json
// @Param id path int true "Page ID"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} ListResponse
// @Router /pages/{id}/history [get]
func (h *Handler) ListByPage(w http.ResponseWriter, r *http.Request) {
	pageID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid page ID", http.StatusBadRequest)
		return
	}

	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	result, err := h.service.ListByPage(r.Context(), pageID, page, pageSize)
	if err != nil {
		h.logger.Error("Failed to list check history", "pageID", pageID, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
