package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/db"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/logger"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/monitor"
)

// Entry is one row of a page's check history.
type Entry struct {
	ID             int64     `json:"id"`
	PageID         int64     `json:"page_id"`
	HTTPStatus     *int      `json:"http_status,omitempty"`
	ResponseTimeMs int64     `json:"response_time_ms"`
	ErrorMessage   string    `json:"error_message,omitempty"`
	StatusLabel    string    `json:"status_label"`
	Origin         string    `json:"origin"`
	CheckedAt      time.Time `json:"checked_at"`
}

// ListResponse is a paginated history listing.
type ListResponse struct {
	Items      []*Entry `json:"items"`
	TotalCount int64    `json:"total_count"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
}

// Service is the append-only check history store.
type Service struct {
	queries *db.Queries
	logger  *logger.Logger
}

var _ monitor.HistorySink = (*Service)(nil)

func NewService(queries *db.Queries, logger *logger.Logger) *Service {
	return &Service{queries: queries, logger: logger}
}

// Record implements monitor.HistorySink.
func (s *Service) Record(ctx context.Context, params monitor.RecordParams) error {
	var httpStatus sql.NullInt64
	if params.HTTPStatus != nil {
		httpStatus = sql.NullInt64{Int64: int64(*params.HTTPStatus), Valid: true}
	}
	var errorMessage sql.NullString
	if params.ErrorMessage != "" {
		errorMessage = sql.NullString{String: params.ErrorMessage, Valid: true}
	}

	_, err := s.queries.CreateCheckHistory(ctx, &db.CreateCheckHistoryParams{
		PageID:         params.PageID,
		HttpStatus:     httpStatus,
		ResponseTimeMs: params.ResponseTime.Milliseconds(),
		ErrorMessage:   errorMessage,
		StatusLabel:    string(params.Label),
		Origin:         string(params.Origin),
		CheckedAt:      params.CheckedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to record check history: %w", err)
	}
	return nil
}

// ListByPage returns a page's history, newest first.
func (s *Service) ListByPage(ctx context.Context, pageID int64, page, pageSize int) (*ListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 500 {
		pageSize = 50
	}

	rows, err := s.queries.ListCheckHistoryByPage(ctx, &db.ListCheckHistoryByPageParams{
		PageID: pageID,
		Limit:  int64(pageSize),
		Offset: int64((page - 1) * pageSize),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list check history: %w", err)
	}

	total, err := s.queries.CountCheckHistoryByPage(ctx, pageID)
	if err != nil {
		return nil, fmt.Errorf("failed to count check history: %w", err)
	}

	items := make([]*Entry, len(rows))
	for i, row := range rows {
		items[i] = toEntry(row)
	}
	return &ListResponse{Items: items, TotalCount: total, Page: page, PageSize: pageSize}, nil
}

// Latest returns up to limit most recent entries for one page.
func (s *Service) Latest(ctx context.Context, pageID int64, limit int) ([]*Entry, error) {
	if limit < 1 {
		limit = 10
	}
	rows, err := s.queries.ListCheckHistoryByPage(ctx, &db.ListCheckHistoryByPageParams{
		PageID: pageID,
		Limit:  int64(limit),
		Offset: 0,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list check history: %w", err)
	}
	items := make([]*Entry, len(rows))
	for i, row := range rows {
		items[i] = toEntry(row)
	}
	return items, nil
}

func toEntry(row *db.CheckHistory) *Entry {
	entry := &Entry{
		ID:             row.ID,
		PageID:         row.PageID,
		ResponseTimeMs: row.ResponseTimeMs,
		ErrorMessage:   row.ErrorMessage.String,
		StatusLabel:    row.StatusLabel,
		Origin:         row.Origin,
		CheckedAt:      row.CheckedAt,
	}
	if row.HttpStatus.Valid {
		status := int(row.HttpStatus.Int64)
		entry.HTTPStatus = &status
	}
	return entry
}
