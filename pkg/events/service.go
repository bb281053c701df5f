package events

import (
	"context"
	"database/sql"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/db"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/logger"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/monitor"
)

// Event is one entry of the monitoring audit trail.
type Event struct {
	ID        int64                  `json:"id"`
	PageID    int64                  `json:"page_id"`
	EventType string                 `json:"event_type"`
	Message   string                 `json:"message"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Origin    string                 `json:"origin,omitempty"`
	RequestID string                 `json:"request_id,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// ListResponse is a paginated event listing.
type ListResponse struct {
	Items      []*Event `json:"items"`
	TotalCount int64    `json:"total_count"`
	Page       int      `json:"page"`
	PageSize   int      `json:"page_size"`
}

// Config holds the configuration for the event service
type Config struct {
	// BufferSize is the size of the async queue
	BufferSize int
	// WorkerCount is the number of persistence workers
	WorkerCount int
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		BufferSize:  1000,
		WorkerCount: 5,
	}
}

// Service is the asynchronous event trail. Appends go through a bounded
// queue drained by workers; when the queue is full the event is dropped.
// Dropped events are not a correctness issue: incident state derives from
// the status and incident stores, never from this log.
type Service struct {
	queries  *db.Queries
	logger   *logger.Logger
	queue    chan queuedEvent
	workers  int
	wg       sync.WaitGroup
	stopChan chan struct{}
}

type queuedEvent struct {
	pageID    int64
	eventType string
	message   string
	metadata  map[string]interface{}
	origin    string
	requestID string
	createdAt time.Time
}

var _ monitor.EventSink = (*Service)(nil)

func NewService(queries *db.Queries, log *logger.Logger, config Config) *Service {
	if config.BufferSize <= 0 {
		config.BufferSize = DefaultConfig().BufferSize
	}
	if config.WorkerCount <= 0 {
		config.WorkerCount = DefaultConfig().WorkerCount
	}

	s := &Service{
		queries:  queries,
		logger:   log,
		queue:    make(chan queuedEvent, config.BufferSize),
		workers:  config.WorkerCount,
		stopChan: make(chan struct{}),
	}
	s.startWorkers()
	return s
}

func (s *Service) startWorkers() {
	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker()
	}
}

// Append implements monitor.EventSink: non-blocking, best-effort.
func (s *Service) Append(pageID int64, eventType, message string, metadata map[string]interface{}, origin monitor.CheckOrigin) {
	event := queuedEvent{
		pageID:    pageID,
		eventType: eventType,
		message:   message,
		metadata:  metadata,
		origin:    string(origin),
		requestID: uuid.NewString(),
		createdAt: time.Now().UTC(),
	}

	select {
	case s.queue <- event:
	default:
		// Queue full: drop rather than block the check path
		s.logger.Warn("Event queue full, dropping event", "pageID", pageID, "type", eventType)
	}
}

func (s *Service) worker() {
	defer s.wg.Done()

	for {
		select {
		case event := <-s.queue:
			s.persist(event)
		case <-s.stopChan:
			// Drain what is already queued before exiting
			for {
				select {
				case event := <-s.queue:
					s.persist(event)
				default:
					return
				}
			}
		}
	}
}

func (s *Service) persist(event queuedEvent) {
	var metadata sql.NullString
	if len(event.metadata) > 0 {
		data, err := json.Marshal(event.metadata)
		if err != nil {
			s.logger.Error("Failed to marshal event metadata", "error", err)
		} else {
			metadata = sql.NullString{String: string(data), Valid: true}
		}
	}
	var origin sql.NullString
	if event.origin != "" {
		origin = sql.NullString{String: event.origin, Valid: true}
	}

	err := s.queries.CreateEvent(context.Background(), &db.CreateEventParams{
		PageID:    event.pageID,
		EventType: event.eventType,
		Message:   event.message,
		Metadata:  metadata,
		Origin:    origin,
		RequestID: sql.NullString{String: event.requestID, Valid: true},
		CreatedAt: event.createdAt,
	})
	if err != nil {
		// Log and move on; event persistence must never ripple upward
		s.logger.Error("Failed to persist event", "pageID", event.pageID, "type", event.eventType, "error", err)
	}
}

// Close stops the workers and waits for queued events to flush.
func (s *Service) Close() {
	close(s.stopChan)
	s.wg.Wait()
}

// ListByPage returns a page's events, newest first.
func (s *Service) ListByPage(ctx context.Context, pageID int64, page, pageSize int) (*ListResponse, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 50
	}

	rows, err := s.queries.ListEventsByPage(ctx, &db.ListEventsByPageParams{
		PageID: pageID,
		Limit:  int64(pageSize),
		Offset: int64((page - 1) * pageSize),
	})
	if err != nil {
		return nil, err
	}

	total, err := s.queries.CountEventsByPage(ctx, pageID)
	if err != nil {
		return nil, err
	}

	items := make([]*Event, len(rows))
	for i, row := range rows {
		event := &Event{
			ID:        row.ID,
			PageID:    row.PageID,
			EventType: row.EventType,
			Message:   row.Message,
			Origin:    row.Origin.String,
			RequestID: row.RequestID.String,
			CreatedAt: row.CreatedAt,
		}
		if row.Metadata.Valid && row.Metadata.String != "" {
			var metadata map[string]interface{}
			if err := json.Unmarshal([]byte(row.Metadata.String), &metadata); err == nil {
				event.Metadata = metadata
			}
		}
		items[i] = event
	}
	return &ListResponse{Items: items, TotalCount: total, Page: page, PageSize: pageSize}, nil
}
