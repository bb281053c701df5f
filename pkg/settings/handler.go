package settings

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/logger"
)

// Handler handles HTTP requests for settings
type Handler struct {
	service *SettingsService
	logger  *logger.Logger
}

// NewHandler creates a new settings handler
func NewHandler(service *SettingsService, logger *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers the settings routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/settings", func(r chi.Router) {
		r.Get("/", h.GetSetting)
		r.Put("/", h.UpdateSetting)
		r.Post("/", h.UpdateSetting)
	})
}

// GetSetting returns the monitoring configuration
// @Summary Get settings
// @Description Get the monitoring configuration
// @Tags Settings
// @Produce json
// @Success 200 {object} Setting
// @Router /settings [get]
func (h *Handler) GetSetting(w http.ResponseWriter, r *http.Request) {
	setting, err := h.service.GetSetting(r.Context())
	if err != nil {
		h.logger.Error("Failed to get setting", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(setting)
}

// UpdateSetting replaces the monitoring configuration
// @Summary Update settings
// @Description Replace the monitoring configuration
// @Tags Settings
// @Accept json
// @Produce json
// @Param setting body UpdateSettingParams true "Monitoring configuration"
// @Success 200 {object} Setting
// @Router /settings [put]
func (h *Handler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	var params UpdateSettingParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	setting, err := h.service.UpdateSetting(r.Context(), params)
	if err != nil {
		status := http.StatusInternalServerError
		if strings.Contains(err.Error(), "validation failed") {
			status = http.StatusBadRequest
		}
		h.logger.Error("Failed to update setting", "error", err)
		http.Error(w, err.Error(), status)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(setting)
}
