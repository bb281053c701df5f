package pages

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apperrors "github.com/omarcoswillian/monitora-prymo-sub000/pkg/errors"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/http/response"
)

// Handler handles HTTP requests for page management
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the page routes
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/pages", func(r chi.Router) {
		r.Get("/", response.Middleware(h.ListPages))
		r.Post("/", response.Middleware(h.CreatePage))
		r.Get("/{id}", response.Middleware(h.GetPage))
		r.Put("/{id}", response.Middleware(h.UpdatePage))
		r.Delete("/{id}", response.Middleware(h.DeletePage))
	})
}

// ListPages returns the registered pages
// @Summary List pages
// @Description List monitored pages, optionally filtered by client
// @Tags Pages
// @Produce json
// @Param client query string false "Filter by client"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} ListPagesResponse
// @Router /pages [get]
func (h *Handler) ListPages(w http.ResponseWriter, r *http.Request) error {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("page_size"))

	result, err := h.service.ListPages(r.Context(), r.URL.Query().Get("client"), page, pageSize)
	if err != nil {
		return err
	}
	return response.WriteJSON(w, http.StatusOK, result)
}

// CreatePage registers a new page
// @Summary Create page
// @Description Register a new page for monitoring
// @Tags Pages
// @Accept json
// @Produce json
// @Param page body CreatePageParams true "Page parameters"
// @Success 201 {object} Page
// @Failure 400 {object} response.ErrorResponse
// @Router /pages [post]
func (h *Handler) CreatePage(w http.ResponseWriter, r *http.Request) error {
	var params CreatePageParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		return apperrors.NewValidationError("invalid request body", map[string]interface{}{"error": err.Error()})
	}

	page, err := h.service.CreatePage(r.Context(), params)
	if err != nil {
		return err
	}
	return response.WriteJSON(w, http.StatusCreated, page)
}

// GetPage returns one page
// @Summary Get page
// @Description Get a monitored page by ID
// @Tags Pages
// @Produce json
// @Param id path int true "Page ID"
// @Success 200 {object} Page
// @Failure 404 {object} response.ErrorResponse
// @Router /pages/{id} [get]
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) error {
	id, err := pageID(r)
	if err != nil {
		return err
	}

	page, err := h.service.GetPage(r.Context(), id)
	if err != nil {
		return err
	}
	return response.WriteJSON(w, http.StatusOK, page)
}

// UpdatePage updates a page
// @Summary Update page
// @Description Update a monitored page
// @Tags Pages
// @Accept json
// @Produce json
// @Param id path int true "Page ID"
// @Param page body UpdatePageParams true "Page parameters"
// @Success 200 {object} Page
// @Failure 404 {object} response.ErrorResponse
// @Router /pages/{id} [put]
func (h *Handler) UpdatePage(w http.ResponseWriter, r *http.Request) error {
	id, err := pageID(r)
	if err != nil {
		return err
	}

	var params UpdatePageParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		return apperrors.NewValidationError("invalid request body", map[string]interface{}{"error": err.Error()})
	}

	page, err := h.service.UpdatePage(r.Context(), id, params)
	if err != nil {
		return err
	}
	return response.WriteJSON(w, http.StatusOK, page)
}

// DeletePage removes a page
// @Summary Delete page
// @Description Remove a page from monitoring
// @Tags Pages
// @Param id path int true "Page ID"
// @Success 204
// @Failure 404 {object} response.ErrorResponse
// @Router /pages/{id} [delete]
func (h *Handler) DeletePage(w http.ResponseWriter, r *http.Request) error {
	id, err := pageID(r)
	if err != nil {
		return err
	}

	if err := h.service.DeletePage(r.Context(), id); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func pageID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid page ID", nil)
	}
	return id, nil
}
