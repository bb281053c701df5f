package reports

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/logger"
)

// Handler exposes the report endpoint
type Handler struct {
	service *Service
	logger  *logger.Logger
}

func NewHandler(service *Service, logger *logger.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the report routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/reports/incidents", h.IncidentReport)
}

// IncidentReport generates a summary of recent incidents
// @Summary Incident report
// @Description Generate a summary of recent incidents and monitoring state
// @Tags Reports
// @Produce json
// @Success 200 {object} Report
// @Router /reports/incidents [get]
func (h *Handler) IncidentReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.service.GenerateIncidentReport(r.Context())
	if err != nil {
		h.logger.Error("Failed to generate incident report", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(report)
}
