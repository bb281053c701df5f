package incidents

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/db"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/logger"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/monitor"
)

// Incident is the service-layer view of an incident record. Duration is
// computed on read, never stored.
type Incident struct {
	ID                  int64      `json:"id"`
	PageID              int64      `json:"page_id"`
	Type                string     `json:"type"`
	Message             string     `json:"message"`
	ProbableCause       string     `json:"probable_cause"`
	Origin              string     `json:"origin"`
	ConsecutiveFailures int        `json:"consecutive_failures"`
	FinalStatus         string     `json:"final_status,omitempty"`
	StartedAt           time.Time  `json:"started_at"`
	ResolvedAt          *time.Time `json:"resolved_at,omitempty"`
	DurationSeconds     *int64     `json:"duration_seconds,omitempty"`
}

// ListResponse is a paginated incident listing.
type ListResponse struct {
	Items []*Incident `json:"items"`
}

// Service owns incident records and implements the engine's incident store.
type Service struct {
	queries *db.Queries
	logger  *logger.Logger
}

var _ monitor.IncidentStore = (*Service)(nil)

func NewService(queries *db.Queries, logger *logger.Logger) *Service {
	return &Service{queries: queries, logger: logger}
}

// ListOpen implements monitor.IncidentStore.
func (s *Service) ListOpen(ctx context.Context) (map[int64]int64, error) {
	rows, err := s.queries.ListOpenIncidents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list open incidents: %w", err)
	}
	open := make(map[int64]int64, len(rows))
	for _, row := range rows {
		open[row.PageID] = row.ID
	}
	return open, nil
}

// Open implements monitor.IncidentStore. The partial unique index on
// (page_id) WHERE resolved_at IS NULL backs the one-open-incident invariant.
func (s *Service) Open(ctx context.Context, params monitor.OpenIncidentParams) (int64, error) {
	incidentType := string(params.Type)
	if incidentType == "" {
		incidentType = string(monitor.ErrorTypeUnknown)
	}

	incident, err := s.queries.CreateIncident(ctx, &db.CreateIncidentParams{
		PageID:              params.PageID,
		Type:                incidentType,
		Message:             params.Message,
		ProbableCause:       params.ProbableCause,
		Origin:              string(params.Origin),
		ConsecutiveFailures: int64(params.ConsecutiveFailures),
	})
	if err != nil {
		return 0, fmt.Errorf("failed to open incident: %w", err)
	}
	return incident.ID, nil
}

// Resolve implements monitor.IncidentStore.
func (s *Service) Resolve(ctx context.Context, incidentID int64, finalStatus monitor.PageStatus) error {
	err := s.queries.ResolveIncident(ctx, &db.ResolveIncidentParams{
		ID:          incidentID,
		FinalStatus: string(finalStatus),
	})
	if err != nil {
		return fmt.Errorf("failed to resolve incident: %w", err)
	}
	return nil
}

// Get returns one incident by ID.
func (s *Service) Get(ctx context.Context, id int64) (*Incident, error) {
	row, err := s.queries.GetIncident(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("incident %d not found", id)
		}
		return nil, fmt.Errorf("failed to get incident: %w", err)
	}
	return toDTO(row), nil
}

// ListByPage returns a page's incidents, newest first.
func (s *Service) ListByPage(ctx context.Context, pageID int64, page, pageSize int) (*ListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	rows, err := s.queries.ListIncidentsByPage(ctx, &db.ListIncidentsByPageParams{
		PageID: pageID,
		Limit:  int64(pageSize),
		Offset: int64((page - 1) * pageSize),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}

	items := make([]*Incident, len(rows))
	for i, row := range rows {
		items[i] = toDTO(row)
	}
	return &ListResponse{Items: items}, nil
}

// ListRecent returns the most recent incidents across all pages.
func (s *Service) ListRecent(ctx context.Context, limit int) ([]*Incident, error) {
	if limit < 1 || limit > 200 {
		limit = 50
	}
	rows, err := s.queries.ListRecentIncidents(ctx, int64(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list incidents: %w", err)
	}
	items := make([]*Incident, len(rows))
	for i, row := range rows {
		items[i] = toDTO(row)
	}
	return items, nil
}

// ListOpenIncidents returns the open incidents as DTOs.
func (s *Service) ListOpenIncidents(ctx context.Context) ([]*Incident, error) {
	rows, err := s.queries.ListOpenIncidents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list open incidents: %w", err)
	}
	items := make([]*Incident, len(rows))
	for i, row := range rows {
		items[i] = toDTO(row)
	}
	return items, nil
}

func toDTO(row *db.Incident) *Incident {
	incident := &Incident{
		ID:                  row.ID,
		PageID:              row.PageID,
		Type:                row.Type,
		Message:             row.Message,
		ProbableCause:       row.ProbableCause,
		Origin:              row.Origin,
		ConsecutiveFailures: int(row.ConsecutiveFailures),
		FinalStatus:         row.FinalStatus.String,
		StartedAt:           row.StartedAt,
	}
	if row.ResolvedAt.Valid {
		t := row.ResolvedAt.Time
		incident.ResolvedAt = &t
		duration := int64(t.Sub(row.StartedAt).Seconds())
		incident.DurationSeconds = &duration
	}
	return incident
}
