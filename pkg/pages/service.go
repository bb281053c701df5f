package pages

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/lithammer/shortuuid/v4"

	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/db"
	apperrors "github.com/omarcoswillian/monitora-prymo-sub000/pkg/errors"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/logger"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/monitor"
)

// Service handles CRUD over monitored pages and owns their cached status,
// including the consecutive-failure counter the incident debounce reads.
type Service struct {
	queries  *db.Queries
	logger   *logger.Logger
	validate *validator.Validate
}

// Service is the engine's status store.
var _ monitor.StatusStore = (*Service)(nil)

func NewService(queries *db.Queries, logger *logger.Logger) *Service {
	return &Service{
		queries:  queries,
		logger:   logger,
		validate: validator.New(),
	}
}

func (s *Service) CreatePage(ctx context.Context, params CreatePageParams) (*Page, error) {
	if err := s.validate.Struct(params); err != nil {
		return nil, apperrors.NewValidationError("invalid page parameters", map[string]interface{}{"error": err.Error()})
	}

	page, err := s.queries.CreatePage(ctx, &db.CreatePageParams{
		Slug:            shortuuid.New(),
		Name:            params.Name,
		Client:          params.Client,
		Url:             params.URL,
		TimeoutMs:       nullInt64(params.TimeoutMs),
		Soft404Patterns: marshalPatterns(params.Soft404Patterns),
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to create page", err, nil)
	}
	return s.toDTO(page), nil
}

func (s *Service) GetPage(ctx context.Context, id int64) (*Page, error) {
	page, err := s.queries.GetPage(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NewNotFoundError("page not found", map[string]interface{}{"id": id})
		}
		return nil, apperrors.NewDatabaseError("failed to get page", err, nil)
	}
	return s.toDTO(page), nil
}

func (s *Service) GetPageBySlug(ctx context.Context, slug string) (*Page, error) {
	page, err := s.queries.GetPageBySlug(ctx, slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NewNotFoundError("page not found", map[string]interface{}{"slug": slug})
		}
		return nil, apperrors.NewDatabaseError("failed to get page", err, nil)
	}
	return s.toDTO(page), nil
}

func (s *Service) ListPages(ctx context.Context, client string, page, pageSize int) (*ListPagesResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	rows, err := s.queries.ListPages(ctx, &db.ListPagesParams{
		Client: client,
		Limit:  int64(pageSize),
		Offset: int64((page - 1) * pageSize),
	})
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to list pages", err, nil)
	}

	total, err := s.queries.CountPages(ctx, client)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to count pages", err, nil)
	}

	items := make([]*Page, len(rows))
	for i, row := range rows {
		items[i] = s.toDTO(row)
	}
	return &ListPagesResponse{
		Items:      items,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
	}, nil
}

func (s *Service) UpdatePage(ctx context.Context, id int64, params UpdatePageParams) (*Page, error) {
	if err := s.validate.Struct(params); err != nil {
		return nil, apperrors.NewValidationError("invalid page parameters", map[string]interface{}{"error": err.Error()})
	}

	page, err := s.queries.UpdatePage(ctx, &db.UpdatePageParams{
		ID:              id,
		Name:            params.Name,
		Client:          params.Client,
		Url:             params.URL,
		TimeoutMs:       nullInt64(params.TimeoutMs),
		Soft404Patterns: marshalPatterns(params.Soft404Patterns),
	})
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperrors.NewNotFoundError("page not found", map[string]interface{}{"id": id})
		}
		return nil, apperrors.NewDatabaseError("failed to update page", err, nil)
	}
	return s.toDTO(page), nil
}

func (s *Service) DeletePage(ctx context.Context, id int64) error {
	if _, err := s.GetPage(ctx, id); err != nil {
		return err
	}
	if err := s.queries.DeletePage(ctx, id); err != nil {
		return apperrors.NewDatabaseError("failed to delete page", err, nil)
	}
	return nil
}

// Descriptor builds the immutable check-time view of one page.
func (s *Service) Descriptor(ctx context.Context, id int64) (monitor.PageDescriptor, error) {
	page, err := s.queries.GetPage(ctx, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return monitor.PageDescriptor{}, apperrors.NewNotFoundError("page not found", map[string]interface{}{"id": id})
		}
		return monitor.PageDescriptor{}, apperrors.NewDatabaseError("failed to get page", err, nil)
	}
	return toDescriptor(page), nil
}

// Descriptors returns the check-time view of every registered page.
func (s *Service) Descriptors(ctx context.Context) ([]monitor.PageDescriptor, error) {
	rows, err := s.queries.ListAllPages(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to list pages", err, nil)
	}
	out := make([]monitor.PageDescriptor, len(rows))
	for i, row := range rows {
		out[i] = toDescriptor(row)
	}
	return out, nil
}

// StatusSummary aggregates the cached statuses of all pages.
func (s *Service) StatusSummary(ctx context.Context) (*StatusSummary, error) {
	rows, err := s.queries.ListAllPages(ctx)
	if err != nil {
		return nil, apperrors.NewDatabaseError("failed to list pages", err, nil)
	}

	summary := &StatusSummary{
		TotalPages: len(rows),
		ByStatus:   map[string]int{},
	}
	for _, row := range rows {
		summary.ByStatus[row.Status]++
		if monitor.PageStatus(row.Status).Failing() {
			summary.Failing = append(summary.Failing, *s.toDTO(row))
		}
	}
	return summary, nil
}

// ConsecutiveFailures implements monitor.StatusStore.
func (s *Service) ConsecutiveFailures(ctx context.Context, pageID int64) (int, error) {
	count, err := s.queries.GetPageConsecutiveFailures(ctx, pageID)
	if err != nil {
		return 0, fmt.Errorf("failed to read consecutive failures: %w", err)
	}
	return int(count), nil
}

// UpdateStatus implements monitor.StatusStore: one write carries the status
// and the counter together so the pair can never drift apart.
func (s *Service) UpdateStatus(ctx context.Context, update monitor.StatusUpdate) error {
	err := s.queries.UpdatePageStatus(ctx, &db.UpdatePageStatusParams{
		ID:                  update.PageID,
		Status:              string(update.Status),
		ErrorType:           nullString(string(update.ErrorType)),
		ErrorMessage:        nullString(update.ErrorMessage),
		ConsecutiveFailures: int64(update.ConsecutiveFailures),
		LastCheckedAt:       sql.NullTime{Time: update.CheckedAt, Valid: !update.CheckedAt.IsZero()},
	})
	if err != nil {
		return fmt.Errorf("failed to update page status: %w", err)
	}
	return nil
}

func (s *Service) toDTO(page *db.Page) *Page {
	dto := &Page{
		ID:                  page.ID,
		Slug:                page.Slug,
		Name:                page.Name,
		Client:              page.Client,
		URL:                 page.Url,
		Status:              page.Status,
		ErrorType:           page.ErrorType.String,
		ErrorMessage:        page.ErrorMessage.String,
		ConsecutiveFailures: int(page.ConsecutiveFailures),
		CreatedAt:           page.CreatedAt,
		UpdatedAt:           page.UpdatedAt,
	}
	if page.TimeoutMs.Valid {
		dto.TimeoutMs = &page.TimeoutMs.Int64
	}
	if page.LastCheckedAt.Valid {
		t := page.LastCheckedAt.Time
		dto.LastCheckedAt = &t
	}
	dto.Soft404Patterns = unmarshalPatterns(page.Soft404Patterns)
	return dto
}

func toDescriptor(page *db.Page) monitor.PageDescriptor {
	descriptor := monitor.PageDescriptor{
		ID:              page.ID,
		Slug:            page.Slug,
		Name:            page.Name,
		Client:          page.Client,
		URL:             page.Url,
		Soft404Patterns: unmarshalPatterns(page.Soft404Patterns),
	}
	if page.TimeoutMs.Valid {
		descriptor.Timeout = time.Duration(page.TimeoutMs.Int64) * time.Millisecond
	}
	return descriptor
}

func marshalPatterns(patterns []string) sql.NullString {
	if len(patterns) == 0 {
		return sql.NullString{}
	}
	data, err := json.Marshal(patterns)
	if err != nil {
		return sql.NullString{}
	}
	return sql.NullString{String: string(data), Valid: true}
}

func unmarshalPatterns(raw sql.NullString) []string {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	var patterns []string
	if err := json.Unmarshal([]byte(raw.String), &patterns); err != nil {
		return nil
	}
	return patterns
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func nullString(v string) sql.NullString {
	if v == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}
