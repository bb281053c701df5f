package monitor

import (
	"context"
	"time"
)

// RecordParams carries one check outcome into the history sink.
type RecordParams struct {
	PageID       int64
	HTTPStatus   *int
	ResponseTime time.Duration
	ErrorMessage string
	CheckedAt    time.Time
	Origin       CheckOrigin
	Label        StatusLabel
}

// HistorySink appends check results to the per-page history.
type HistorySink interface {
	Record(ctx context.Context, params RecordParams) error
}

// StatusUpdate carries the page's new cached status and failure counter.
type StatusUpdate struct {
	PageID              int64
	Status              PageStatus
	Origin              CheckOrigin
	ErrorType           ErrorType
	ErrorMessage        string
	ConsecutiveFailures int
	CheckedAt           time.Time
}

// StatusStore owns the per-page cached status and consecutive-failure counter.
// The counter must be read fresh at the start of each incident-tracking step.
type StatusStore interface {
	ConsecutiveFailures(ctx context.Context, pageID int64) (int, error)
	UpdateStatus(ctx context.Context, update StatusUpdate) error
}

// OpenIncidentParams carries the data recorded when an incident opens.
type OpenIncidentParams struct {
	PageID              int64
	Type                ErrorType
	Message             string
	ProbableCause       string
	Origin              CheckOrigin
	ConsecutiveFailures int
}

// IncidentStore owns incident records. At most one open incident exists per
// page at any time.
type IncidentStore interface {
	// ListOpen returns a map of page ID to open incident ID
	ListOpen(ctx context.Context) (map[int64]int64, error)
	Open(ctx context.Context, params OpenIncidentParams) (int64, error)
	Resolve(ctx context.Context, incidentID int64, finalStatus PageStatus) error
}

// EventSink receives the audit trail of check events. Appends are
// fire-and-forget: implementations must never block the check path or
// surface persistence failures to the caller.
type EventSink interface {
	Append(pageID int64, eventType, message string, metadata map[string]interface{}, origin CheckOrigin)
}

// PolicyProvider supplies the monitoring policy, refreshed per cycle.
type PolicyProvider interface {
	Policy(ctx context.Context) (MonitoringPolicy, error)
}

// IncidentNotification is the payload handed to an IncidentNotifier.
type IncidentNotification struct {
	IncidentID          int64
	PageID              int64
	PageName            string
	PageURL             string
	Client              string
	Type                ErrorType
	Message             string
	ProbableCause       string
	FinalStatus         PageStatus
	ConsecutiveFailures int
	OccurredAt          time.Time
}

// IncidentNotifier delivers operator notifications about incident
// transitions. Failures are the notifier's problem, never the check's.
type IncidentNotifier interface {
	NotifyIncidentOpened(ctx context.Context, data IncidentNotification)
	NotifyIncidentResolved(ctx context.Context, data IncidentNotification)
}
