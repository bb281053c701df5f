package notifications

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/logger"
)

// Handler handles HTTP requests for notification providers
type Handler struct {
	service *Service
	logger  *logger.Logger
}

func NewHandler(service *Service, logger *logger.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the notification routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/notifications", func(r chi.Router) {
		r.Post("/providers", h.CreateProvider)
		r.Get("/providers", h.ListProviders)
		r.Route("/providers/{providerId}", func(r chi.Router) {
			r.Get("/", h.GetProvider)
			r.Put("/", h.UpdateProvider)
			r.Delete("/", h.DeleteProvider)
			r.Post("/test", h.TestProvider)
		})
	})
}

// CreateProvider creates a notification provider
// @Summary Create a notification provider
// @Description Create a new SMTP notification provider
// @Tags Notifications
// @Accept json
// @Produce json
// @Param request body CreateProviderParams true "Provider configuration"
// @Success 201 {object} Provider
// @Router /notifications/providers [post]
func (h *Handler) CreateProvider(w http.ResponseWriter, r *http.Request) {
	var params CreateProviderParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	provider, err := h.service.CreateProvider(r.Context(), params)
	if err != nil {
		h.logger.Error("Failed to create provider", "error", err)
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(provider)
}

// ListProviders lists all notification providers
// @Summary List notification providers
// @Tags Notifications
// @Produce json
// @Success 200 {array} Provider
// @Router /notifications/providers [get]
func (h *Handler) ListProviders(w http.ResponseWriter, r *http.Request) {
	providers, err := h.service.ListProviders(r.Context())
	if err != nil {
		h.logger.Error("Failed to list providers", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(providers)
}

// GetProvider returns a notification provider
// @Summary Get a notification provider
// @Tags Notifications
// @Produce json
// @Param providerId path int true "Provider ID"
// @Success 200 {object} Provider
// @Router /notifications/providers/{providerId} [get]
func (h *Handler) GetProvider(w http.ResponseWriter, r *http.Request) {
	id, ok := providerID(w, r)
	if !ok {
		return
	}

	provider, err := h.service.GetProvider(r.Context(), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Provider not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Failed to get provider", "providerID", id, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(provider)
}

// UpdateProvider updates a notification provider
// @Summary Update a notification provider
// @Tags Notifications
// @Accept json
// @Produce json
// @Param providerId path int true "Provider ID"
// @Param request body UpdateProviderParams true "Provider configuration"
// @Success 200 {object} Provider
// @Router /notifications/providers/{providerId} [put]
func (h *Handler) UpdateProvider(w http.ResponseWriter, r *http.Request) {
	id, ok := providerID(w, r)
	if !ok {
		return
	}

	var params UpdateProviderParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	params.ID = id

	provider, err := h.service.UpdateProvider(r.Context(), params)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Provider not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Failed to update provider", "providerID", id, "error", err)
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(provider)
}

// DeleteProvider deletes a notification provider
// @Summary Delete a notification provider
// @Tags Notifications
// @Param providerId path int true "Provider ID"
// @Success 204 "No Content"
// @Router /notifications/providers/{providerId} [delete]
func (h *Handler) DeleteProvider(w http.ResponseWriter, r *http.Request) {
	id, ok := providerID(w, r)
	if !ok {
		return
	}

	if err := h.service.DeleteProvider(r.Context(), id); err != nil {
		h.logger.Error("Failed to delete provider", "providerID", id, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// TestProvider sends a test e-mail through a provider
// @Summary Test a notification provider
// @Tags Notifications
// @Accept json
// @Produce json
// @Param providerId path int true "Provider ID"
// @Param request body TestProviderParams true "Test parameters"
// @Success 200 {object} TestResult
// @Router /notifications/providers/{providerId}/test [post]
func (h *Handler) TestProvider(w http.ResponseWriter, r *http.Request) {
	id, ok := providerID(w, r)
	if !ok {
		return
	}

	var params TestProviderParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.TestProvider(r.Context(), id, params)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.Error(w, "Provider not found", http.StatusNotFound)
			return
		}
		h.logger.Error("Failed to test provider", "providerID", id, "error", err)
		http.Error(w, err.Error(), statusFor(err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func providerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "providerId"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid provider ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func statusFor(err error) int {
	if strings.Contains(err.Error(), "invalid") {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
