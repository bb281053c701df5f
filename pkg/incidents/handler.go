package incidents

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/logger"
)

// Handler exposes read-only incident endpoints
type Handler struct {
	service *Service
	logger  *logger.Logger
}

func NewHandler(service *Service, logger *logger.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the incident routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/incidents", func(r chi.Router) {
		r.Get("/", h.ListRecent)
		r.Get("/open", h.ListOpen)
		r.Get("/{id}", h.Get)
	})
	r.Get("/pages/{id}/incidents", h.ListByPage)
}

// ListRecent returns the most recent incidents
// @Summary List incidents
// @Description List the most recent incidents across all pages
// @Tags Incidents
// @Produce json
// @Param limit query int false "Maximum entries"
// @Success 200 {array} Incident
// @Router /incidents [get]
func (h *Handler) ListRecent(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	items, err := h.service.ListRecent(r.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list incidents", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

// ListOpen returns the currently open incidents
// @Summary List open incidents
// @Description List incidents that have not been resolved yet
// @Tags Incidents
// @Produce json
// @Success 200 {array} Incident
// @Router /incidents/open [get]
func (h *Handler) ListOpen(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListOpenIncidents(r.Context())
	if err != nil {
		h.logger.Error("Failed to list open incidents", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(items)
}

// Get returns one incident
// @Summary Get incident
// @Description Get an incident by ID
// @Tags Incidents
// @Produce json
// @Param id path int true "Incident ID"
// @Success 200 {object} Incident
// @Router /incidents/{id} [get]
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid incident ID", http.StatusBadRequest)
		return
	}

	incident, err := h.service.Get(r.Context(), id)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(incident)
}

// ListByPage returns a page's incidents
// @Summary List page incidents
// @Description List incidents for one page, newest first
// @Tags Incidents
// @Produce json
// @Param id path int true "Page ID"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} ListResponse
// @Router /pages/{id}/incidents [get]
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
		h.logger.Error("Failed to list page incidents", "pageID", pageID, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}
