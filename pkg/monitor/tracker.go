package monitor

import (
	"context"
	"fmt"

	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/logger"
)

// IncidentTracker is the per-page debounced incident state machine. An
// incident opens only once the consecutive-failure counter reaches the
// policy threshold, and auto-resolves on the first non-failing result.
//
// The open-incident check and the failure counter are read-then-act with no
// locking; correctness for the same page relies on the scheduler serializing
// its checks.
type IncidentTracker struct {
	status    StatusStore
	incidents IncidentStore
	events    EventSink
	notifier  IncidentNotifier
	logger    *logger.Logger
}

func NewIncidentTracker(status StatusStore, incidents IncidentStore, events EventSink, notifier IncidentNotifier, log *logger.Logger) *IncidentTracker {
	return &IncidentTracker{
		status:    status,
		incidents: incidents,
		events:    events,
		notifier:  notifier,
		logger:    log,
	}
}

// Track applies one CheckResult to the page's incident state.
func (t *IncidentTracker) Track(ctx context.Context, page PageDescriptor, result CheckResult, policy MonitoringPolicy) error {
	open, err := t.incidents.ListOpen(ctx)
	if err != nil {
		return fmt.Errorf("failed to list open incidents: %w", err)
	}
	openID, hasOpen := open[page.ID]

	switch {
	case result.Status.Failing() && !hasOpen:
		return t.maybeOpen(ctx, page, result, policy)
	case !result.Status.Failing() && hasOpen && policy.AutoResolve:
		return t.resolve(ctx, page, result, openID)
	default:
		return nil
	}
}

func (t *IncidentTracker) maybeOpen(ctx context.Context, page PageDescriptor, result CheckResult, policy MonitoringPolicy) error {
	// Read fresh: the status-update step has already incremented the counter
	// for this failure, and a cached value could act on a stale debounce.
	failures, err := t.status.ConsecutiveFailures(ctx, page.ID)
	if err != nil {
		return fmt.Errorf("failed to read consecutive failures: %w", err)
	}
	if failures < policy.FailureThreshold {
		return nil
	}

	cause := ProbableCause(result)
	message := incidentMessage(result)

	incidentID, err := t.incidents.Open(ctx, OpenIncidentParams{
		PageID:              page.ID,
		Type:                result.ErrorType,
		Message:             message,
		ProbableCause:       cause,
		Origin:              result.Origin,
		ConsecutiveFailures: failures,
	})
	if err != nil {
		return fmt.Errorf("failed to open incident: %w", err)
	}

	t.events.Append(page.ID, EventIncidentCreated,
		fmt.Sprintf("incident opened after %d consecutive failures: %s", failures, cause),
		map[string]interface{}{
			"incident_id": incidentID,
			"type":        string(result.ErrorType),
			"failures":    failures,
		},
		result.Origin)

	stateEvent := EventPageOffline
	stateMessage := fmt.Sprintf("page marked offline (%s)", result.Status)
	if result.Status == StatusBlocked {
		stateEvent = EventPageBlocked
		stateMessage = fmt.Sprintf("page marked blocked: %s", result.BlockReason)
	}
	t.events.Append(page.ID, stateEvent, stateMessage, nil, result.Origin)

	if t.notifier != nil {
		t.notifier.NotifyIncidentOpened(ctx, IncidentNotification{
			IncidentID:          incidentID,
			PageID:              page.ID,
			PageName:            page.Name,
			PageURL:             page.URL,
			Client:              page.Client,
			Type:                result.ErrorType,
			Message:             message,
			ProbableCause:       cause,
			FinalStatus:         result.Status,
			ConsecutiveFailures: failures,
			OccurredAt:          result.CheckedAt,
		})
	}

	t.logger.Warn("Incident opened",
		"pageID", page.ID, "page", page.Name, "type", result.ErrorType, "failures", failures)
	return nil
}

func (t *IncidentTracker) resolve(ctx context.Context, page PageDescriptor, result CheckResult, incidentID int64) error {
	if err := t.incidents.Resolve(ctx, incidentID, result.Status); err != nil {
		return fmt.Errorf("failed to resolve incident: %w", err)
	}

	t.events.Append(page.ID, EventIncidentResolved,
		fmt.Sprintf("incident resolved with status %s", result.Status),
		map[string]interface{}{"incident_id": incidentID, "status": string(result.Status)},
		result.Origin)
	t.events.Append(page.ID, EventPageOnline,
		fmt.Sprintf("page recovered (%s, %dms)", result.Status, result.ResponseTime.Milliseconds()),
		nil, result.Origin)

	if t.notifier != nil {
		t.notifier.NotifyIncidentResolved(ctx, IncidentNotification{
			IncidentID:  incidentID,
			PageID:      page.ID,
			PageName:    page.Name,
			PageURL:     page.URL,
			Client:      page.Client,
			FinalStatus: result.Status,
			OccurredAt:  result.CheckedAt,
		})
	}

	t.logger.Info("Incident resolved", "pageID", page.ID, "page", page.Name, "status", result.Status)
	return nil
}

// ProbableCause derives the advisory, human-readable explanation attached to
// an incident. It is triage text, never used for control flow.
func ProbableCause(result CheckResult) string {
	if result.Blocked {
		return result.BlockReason
	}
	switch result.ErrorType {
	case ErrorTypeTimeout:
		return fmt.Sprintf("timeout after %dms, possible slowness or bot blocking", result.ResponseTime.Milliseconds())
	case ErrorTypeConnection:
		return "server unreachable"
	case ErrorTypeHTTP500:
		return fmt.Sprintf("server-side error (status %d)", httpStatusOf(result))
	case ErrorTypeHTTP404:
		return fmt.Sprintf("page not found (status %d)", httpStatusOf(result))
	case ErrorTypeSoft404:
		return "soft-404 content detected"
	}
	if result.Status == StatusSlow {
		return "slow response, possible server overload"
	}
	return result.ErrorMessage
}

func incidentMessage(result CheckResult) string {
	if result.ErrorMessage != "" {
		return result.ErrorMessage
	}
	if status := httpStatusOf(result); status != 0 {
		return fmt.Sprintf("check failed with HTTP %d", status)
	}
	return fmt.Sprintf("check failed with status %s", result.Status)
}

func httpStatusOf(result CheckResult) int {
	if result.HTTPStatus == nil {
		return 0
	}
	return *result.HTTPStatus
}
