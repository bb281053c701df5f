package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apperrors "github.com/omarcoswillian/monitora-prymo-sub000/pkg/errors"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/logger"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/monitor"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/pages"
)

// PageSource resolves registered pages into check-time descriptors
type PageSource interface {
	Descriptor(ctx context.Context, id int64) (monitor.PageDescriptor, error)
}

// StatusSource aggregates cached page statuses
type StatusSource interface {
	StatusSummary(ctx context.Context) (*pages.StatusSummary, error)
}

// Checker runs checks on demand
type Checker interface {
	RunCheck(ctx context.Context, page monitor.PageDescriptor, origin monitor.CheckOrigin) (monitor.CheckResult, error)
	CheckURL(ctx context.Context, rawURL string, origin monitor.CheckOrigin) (monitor.CheckResult, error)
}

// Handler exposes manual check triggers and the status snapshot
type Handler struct {
	checker Checker
	pages   PageSource
	status  StatusSource
	logger  *logger.Logger
}

func NewHandler(checker Checker, pageSource PageSource, statusSource StatusSource, log *logger.Logger) *Handler {
	return &Handler{
		checker: checker,
		pages:   pageSource,
		status:  statusSource,
		logger:  log,
	}
}

// RegisterRoutes registers the check routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/checks", func(r chi.Router) {
		r.Get("/status", h.StatusSnapshot)
		r.Post("/pages/{id}", h.CheckPage)
		r.Post("/url", h.CheckURL)
	})
}

// CheckURLRequest is the body of an ad-hoc URL check
type CheckURLRequest struct {
	URL string `json:"url"`
}

// StatusSnapshot returns the aggregated cached statuses
// @Summary Status snapshot
// @Description Aggregated cached statuses across all monitored pages
// @Tags Checks
// @Produce json
// @Success 200 {object} pages.StatusSummary
// @Router /checks/status [get]
func (h *Handler) StatusSnapshot(w http.ResponseWriter, r *http.Request) {
	summary, err := h.status.StatusSummary(r.Context())
	if err != nil {
		h.logger.Error("Failed to build status summary", "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": err.Error()})
		return
	}
	render.JSON(w, r, summary)
}

// CheckPage runs an immediate check of a registered page
// @Summary Check a page now
// @Description Run an immediate check of a registered page, bypassing the schedule
// @Tags Checks
// @Produce json
// @Param id path int true "Page ID"
// @Success 200 {object} monitor.CheckResult
// @Router /checks/pages/{id} [post]
func (h *Handler) CheckPage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": "Invalid page ID"})
		return
	}

	page, err := h.pages.Descriptor(r.Context(), id)
	if err != nil {
		status := http.StatusInternalServerError
		if appErr, ok := err.(*apperrors.AppError); ok && appErr.Type == apperrors.NotFoundError {
			status = http.StatusNotFound
		}
		render.Status(r, status)
		render.JSON(w, r, map[string]string{"error": err.Error()})
		return
	}

	result, err := h.checker.RunCheck(r.Context(), page, monitor.OriginManual)
	if err != nil {
		h.logger.Error("Manual check failed", "pageID", id, "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": err.Error()})
		return
	}

	render.JSON(w, r, result)
}

// CheckURL runs an ad-hoc check of an arbitrary URL
// @Summary Check a URL now
// @Description Probe and classify an arbitrary URL without registering it
// @Tags Checks
// @Accept json
// @Produce json
// @Param request body CheckURLRequest true "URL to check"
// @Success 200 {object} monitor.CheckResult
// @Router /checks/url [post]
func (h *Handler) CheckURL(w http.ResponseWriter, r *http.Request) {
	var req CheckURLRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, map[string]string{"error": "Invalid request body, expected {\"url\": \"...\"}"})
		return
	}

	result, err := h.checker.CheckURL(r.Context(), req.URL, monitor.OriginManual)
	if err != nil {
		h.logger.Error("Ad-hoc check failed", "url", req.URL, "error", err)
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]string{"error": err.Error()})
		return
	}

	render.JSON(w, r, result)
}
