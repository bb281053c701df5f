package pages

import "time"

// Page is the service-layer representation of a monitored page.
type Page struct {
	ID                  int64      `json:"id"`
	Slug                string     `json:"slug"`
	Name                string     `json:"name"`
	Client              string     `json:"client"`
	URL                 string     `json:"url"`
	TimeoutMs           *int64     `json:"timeout_ms,omitempty"`
	Soft404Patterns     []string   `json:"soft404_patterns,omitempty"`
	Status              string     `json:"status"`
	ErrorType           string     `json:"error_type,omitempty"`
	ErrorMessage        string     `json:"error_message,omitempty"`
	ConsecutiveFailures int        `json:"consecutive_failures"`
	LastCheckedAt       *time.Time `json:"last_checked_at,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// CreatePageParams are the parameters for registering a page.
type CreatePageParams struct {
	Name            string   `json:"name" validate:"required,min=1,max=255"`
	Client          string   `json:"client" validate:"required,min=1,max=255"`
	URL             string   `json:"url" validate:"required,url"`
	TimeoutMs       *int64   `json:"timeout_ms,omitempty" validate:"omitempty,min=1000,max=120000"`
	Soft404Patterns []string `json:"soft404_patterns,omitempty" validate:"omitempty,dive,min=3"`
}

// UpdatePageParams are the parameters for updating a page.
type UpdatePageParams struct {
	Name            string   `json:"name" validate:"required,min=1,max=255"`
	Client          string   `json:"client" validate:"required,min=1,max=255"`
	URL             string   `json:"url" validate:"required,url"`
	TimeoutMs       *int64   `json:"timeout_ms,omitempty" validate:"omitempty,min=1000,max=120000"`
	Soft404Patterns []string `json:"soft404_patterns,omitempty" validate:"omitempty,dive,min=3"`
}

// ListPagesResponse is a paginated page listing.
type ListPagesResponse struct {
	Items      []*Page `json:"items"`
	TotalCount int64   `json:"total_count"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
}

// StatusSummary aggregates cached page statuses for the status endpoint.
type StatusSummary struct {
	TotalPages int            `json:"total_pages"`
	ByStatus   map[string]int `json:"by_status"`
	Failing    []Page         `json:"failing,omitempty"`
}
