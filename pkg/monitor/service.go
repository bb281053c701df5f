package monitor

import (
	"context"
	"fmt"

	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/logger"
)

// Service orchestrates one full check: retrying probe, history write, cached
// status update and incident transition, with events on the side channel.
//
// Collaborator write failures are logged and swallowed so a persistence
// hiccup never prevents the next scheduled check or corrupts the returned
// result. Safe for concurrent use across different pages; same-page checks
// must be serialized by the caller.
type Service struct {
	prober   *Prober
	retry    *RetryCoordinator
	history  HistorySink
	status   StatusStore
	tracker  *IncidentTracker
	policies PolicyProvider
	logger   *logger.Logger
}

type ServiceDeps struct {
	History  HistorySink
	Status   StatusStore
	Incident IncidentStore
	Events   EventSink
	Policies PolicyProvider
	Notifier IncidentNotifier
	Patterns *PatternSet
	Logger   *logger.Logger
}

func NewService(deps ServiceDeps) *Service {
	if deps.Logger == nil {
		deps.Logger = logger.NewDefault()
	}
	classifier := NewClassifier(deps.Patterns)
	prober := NewProber(classifier, deps.Logger)

	return &Service{
		prober:   prober,
		retry:    NewRetryCoordinator(prober, deps.Events, deps.Logger),
		history:  deps.History,
		status:   deps.Status,
		tracker:  NewIncidentTracker(deps.Status, deps.Incident, deps.Events, deps.Notifier, deps.Logger),
		policies: deps.Policies,
		logger:   deps.Logger,
	}
}

// RunCheck performs one complete check cycle for the page and returns the
// result. The policy is fetched fresh on every call.
func (s *Service) RunCheck(ctx context.Context, page PageDescriptor, origin CheckOrigin) (CheckResult, error) {
	policy, err := s.policies.Policy(ctx)
	if err != nil {
		return CheckResult{}, fmt.Errorf("failed to load monitoring policy: %w", err)
	}

	result := s.retry.CheckWithRetry(ctx, page, policy, origin)

	s.recordHistory(ctx, result)
	failures := s.updateStatus(ctx, result)

	if err := s.tracker.Track(ctx, page, result, policy); err != nil {
		s.logger.Error("Incident tracking failed", "pageID", page.ID, "error", err)
	}

	s.logger.Debug("Check completed",
		"pageID", page.ID,
		"page", page.Name,
		"status", result.Status,
		"responseTime", result.ResponseTime,
		"retries", result.Retries,
		"failures", failures,
	)
	return result, nil
}

// CheckURL probes an arbitrary URL once and classifies the outcome without
// touching any store. Used for ad-hoc checks of pages that are not registered.
func (s *Service) CheckURL(ctx context.Context, rawURL string, origin CheckOrigin) (CheckResult, error) {
	policy, err := s.policies.Policy(ctx)
	if err != nil {
		return CheckResult{}, fmt.Errorf("failed to load monitoring policy: %w", err)
	}

	page := PageDescriptor{Name: rawURL, URL: rawURL}
	outcome := s.prober.Probe(ctx, page, policy)
	status := ResolveStatus(outcome.Success, outcome.HTTPStatus, outcome.ResponseTime,
		outcome.Soft404, outcome.Blocked, policy.SlowThreshold)
	return buildResult(page, outcome, status, 0, origin), nil
}

func (s *Service) recordHistory(ctx context.Context, result CheckResult) {
	err := s.history.Record(ctx, RecordParams{
		PageID:       result.PageID,
		HTTPStatus:   result.HTTPStatus,
		ResponseTime: result.ResponseTime,
		ErrorMessage: result.ErrorMessage,
		CheckedAt:    result.CheckedAt,
		Origin:       result.Origin,
		Label:        result.Label,
	})
	if err != nil {
		s.logger.Error("Failed to record check history", "pageID", result.PageID, "error", err)
	}
}

// updateStatus writes the page's cached status and advances or resets the
// consecutive-failure counter. Returns the counter value written.
func (s *Service) updateStatus(ctx context.Context, result CheckResult) int {
	failures := 0
	if result.Status.Failing() {
		prev, err := s.status.ConsecutiveFailures(ctx, result.PageID)
		if err != nil {
			s.logger.Error("Failed to read consecutive failures", "pageID", result.PageID, "error", err)
		}
		failures = prev + 1
	}

	err := s.status.UpdateStatus(ctx, StatusUpdate{
		PageID:              result.PageID,
		Status:              result.Status,
		Origin:              result.Origin,
		ErrorType:           result.ErrorType,
		ErrorMessage:        result.ErrorMessage,
		ConsecutiveFailures: failures,
		CheckedAt:           result.CheckedAt,
	})
	if err != nil {
		s.logger.Error("Failed to update page status", "pageID", result.PageID, "error", err)
	}
	return failures
}
