package monitor

import (
	"time"
)

// PageStatus is the discrete status resolved for a page after one check.
type PageStatus string

const (
	// StatusOnline indicates the page responded successfully within the slow threshold
	StatusOnline PageStatus = "ONLINE"
	// StatusSlow indicates the page responded successfully but slower than the threshold
	StatusSlow PageStatus = "LENTO"
	// StatusTimeout indicates the request failed at the network level with no HTTP status
	StatusTimeout PageStatus = "TIMEOUT"
	// StatusOffline indicates an HTTP error status, unreachable server or soft-404 content
	StatusOffline PageStatus = "OFFLINE"
	// StatusBlocked indicates a WAF, bot challenge or redirect-based block
	StatusBlocked PageStatus = "BLOQUEADO"
)

// Failing reports whether the status counts as a failure for incident tracking.
func (s PageStatus) Failing() bool {
	return s == StatusTimeout || s == StatusOffline || s == StatusBlocked
}

// StatusLabel is the coarser legacy 4-value label kept for older consumers.
type StatusLabel string

const (
	LabelOnline  StatusLabel = "Online"
	LabelOffline StatusLabel = "Offline"
	LabelSlow    StatusLabel = "Lento"
	LabelSoft404 StatusLabel = "Soft 404"
)

// ErrorType classifies why a check failed.
type ErrorType string

const (
	ErrorTypeWAFBlock     ErrorType = "WAF_BLOCK"
	ErrorTypeRedirectLoop ErrorType = "REDIRECT_LOOP"
	ErrorTypeSoft404      ErrorType = "SOFT_404"
	ErrorTypeTimeout      ErrorType = "TIMEOUT"
	ErrorTypeConnection   ErrorType = "CONNECTION_ERROR"
	ErrorTypeHTTP404      ErrorType = "HTTP_404"
	ErrorTypeHTTP500      ErrorType = "HTTP_500"
	ErrorTypeUnknown      ErrorType = "UNKNOWN"
)

// CheckOrigin identifies what triggered a check.
type CheckOrigin string

const (
	OriginCron   CheckOrigin = "cron"
	OriginManual CheckOrigin = "manual"
	OriginCLI    CheckOrigin = "cli"
)

// Event types emitted during a check cycle.
const (
	EventRetryStarted     = "RETRY_STARTED"
	EventRetryCompleted   = "RETRY_COMPLETED"
	EventIncidentCreated  = "INCIDENT_CREATED"
	EventIncidentResolved = "INCIDENT_RESOLVED"
	EventPageOffline      = "PAGE_OFFLINE"
	EventPageBlocked      = "PAGE_BLOCKED"
	EventPageOnline       = "PAGE_ONLINE"
)

// PageDescriptor describes one monitored page for the duration of a check.
// It is owned by the pages store and never mutated here.
type PageDescriptor struct {
	ID     int64
	Slug   string
	Name   string
	Client string
	URL    string
	// Timeout overrides the policy default when non-zero
	Timeout time.Duration
	// Soft404Patterns are extra phrases checked against the body
	Soft404Patterns []string
}

// MonitoringPolicy is supplied per check cycle and never mutated by the engine.
type MonitoringPolicy struct {
	SlowThreshold    time.Duration
	FailureThreshold int
	AutoResolve      bool
	HTTPTimeout      time.Duration
	MaxRetries       int
	RetryDelay       time.Duration
}

// DefaultPolicy returns the policy used when no settings row exists yet.
func DefaultPolicy() MonitoringPolicy {
	return MonitoringPolicy{
		SlowThreshold:    3 * time.Second,
		FailureThreshold: 2,
		AutoResolve:      true,
		HTTPTimeout:      10 * time.Second,
		MaxRetries:       2,
		RetryDelay:       5 * time.Second,
	}
}

// ProbeOutcome is the ephemeral result of a single probe attempt. The body
// snippet exists only for classification and is discarded afterwards.
type ProbeOutcome struct {
	Success      bool
	HTTPStatus   *int
	ResponseTime time.Duration
	BodySnippet  string
	FinalURL     string
	Soft404      bool
	Blocked      bool
	BlockReason  string
	BlockType    ErrorType
	ErrorMessage string
}

// CheckResult is the engine's output contract, produced once per completed
// check (after retries) and handed to the collaborator stores.
type CheckResult struct {
	PageID       int64         `json:"page_id"`
	Status       PageStatus    `json:"status"`
	Label        StatusLabel   `json:"label"`
	ErrorType    ErrorType     `json:"error_type,omitempty"`
	ErrorMessage string        `json:"error_message,omitempty"`
	HTTPStatus   *int          `json:"http_status,omitempty"`
	ResponseTime time.Duration `json:"response_time"`
	Soft404      bool          `json:"soft404"`
	Blocked      bool          `json:"blocked"`
	BlockReason  string        `json:"block_reason,omitempty"`
	Retries      int           `json:"retries"`
	Origin       CheckOrigin   `json:"origin"`
	CheckedAt    time.Time     `json:"checked_at"`
}
