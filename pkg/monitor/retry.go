package monitor

import (
	"context"
	"fmt"
	"time"

	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/logger"
)

// RetryCoordinator re-probes a failing page before the failure is declared,
// trading up to MaxRetries*RetryDelay of extra latency against opening
// incidents on single transient blips. ONLINE and LENTO results never retry.
type RetryCoordinator struct {
	prober *Prober
	events EventSink
	logger *logger.Logger
}

func NewRetryCoordinator(prober *Prober, events EventSink, log *logger.Logger) *RetryCoordinator {
	return &RetryCoordinator{
		prober: prober,
		events: events,
		logger: log,
	}
}

// CheckWithRetry runs one probe+resolve cycle and, on a failing status,
// loops up to MaxRetries with RetryDelay between attempts, stopping early
// the moment a retry recovers. The result carries the retry count used.
func (rc *RetryCoordinator) CheckWithRetry(ctx context.Context, page PageDescriptor, policy MonitoringPolicy, origin CheckOrigin) CheckResult {
	outcome := rc.prober.Probe(ctx, page, policy)
	status := ResolveStatus(outcome.Success, outcome.HTTPStatus, outcome.ResponseTime, outcome.Soft404, outcome.Blocked, policy.SlowThreshold)

	if !status.Failing() {
		return buildResult(page, outcome, status, 0, origin)
	}

	retries := 0
	for attempt := 1; attempt <= policy.MaxRetries; attempt++ {
		rc.events.Append(page.ID, EventRetryStarted,
			fmt.Sprintf("retry %d/%d after status %s", attempt, policy.MaxRetries, status),
			map[string]interface{}{"attempt": attempt, "previous_status": string(status)},
			origin)

		if err := sleepContext(ctx, policy.RetryDelay); err != nil {
			rc.logger.Debug("Retry loop cancelled", "pageID", page.ID, "error", err)
			break
		}

		outcome = rc.prober.Probe(ctx, page, policy)
		status = ResolveStatus(outcome.Success, outcome.HTTPStatus, outcome.ResponseTime, outcome.Soft404, outcome.Blocked, policy.SlowThreshold)
		retries = attempt

		rc.events.Append(page.ID, EventRetryCompleted,
			fmt.Sprintf("retry %d/%d finished with status %s", attempt, policy.MaxRetries, status),
			map[string]interface{}{"attempt": attempt, "status": string(status)},
			origin)

		if !status.Failing() {
			break
		}
	}

	return buildResult(page, outcome, status, retries, origin)
}

func buildResult(page PageDescriptor, outcome ProbeOutcome, status PageStatus, retries int, origin CheckOrigin) CheckResult {
	return CheckResult{
		PageID:       page.ID,
		Status:       status,
		Label:        LegacyLabel(status, outcome.Soft404),
		ErrorType:    ClassifyErrorType(outcome),
		ErrorMessage: outcome.ErrorMessage,
		HTTPStatus:   outcome.HTTPStatus,
		ResponseTime: outcome.ResponseTime,
		Soft404:      outcome.Soft404,
		Blocked:      outcome.Blocked,
		BlockReason:  outcome.BlockReason,
		Retries:      retries,
		Origin:       origin,
		CheckedAt:    time.Now().UTC(),
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
