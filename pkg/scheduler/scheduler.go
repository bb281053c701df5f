package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/logger"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/monitor"
	"github.com/omarcoswillian/monitora-prymo-sub000/pkg/settings"
)

// PageSource lists the pages to check each cycle
type PageSource interface {
	Descriptors(ctx context.Context) ([]monitor.PageDescriptor, error)
}

// Checker runs a single page check
type Checker interface {
	RunCheck(ctx context.Context, page monitor.PageDescriptor, origin monitor.CheckOrigin) (monitor.CheckResult, error)
}

// SettingsSource supplies the scheduling parameters, re-read every cycle
type SettingsSource interface {
	Scheduler(ctx context.Context) (settings.SchedulerConfig, error)
}

// Scheduler drives periodic check cycles. Pages are checked in batches with a
// delay between batches; a page whose previous check is still running is
// skipped for the cycle.
type Scheduler struct {
	cron     *cron.Cron
	checker  Checker
	pages    PageSource
	settings SettingsSource
	logger   *logger.Logger

	mu       sync.Mutex
	entryID  cron.EntryID
	interval time.Duration

	inFlight sync.Map
}

func New(checker Checker, pages PageSource, settingsSource SettingsSource, log *logger.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		checker:  checker,
		pages:    pages,
		settings: settingsSource,
		logger:   log,
	}
}

// Start schedules the check cycle and starts the cron loop
func (s *Scheduler) Start(ctx context.Context) error {
	config, err := s.settings.Scheduler(ctx)
	if err != nil {
		return fmt.Errorf("failed to load scheduler settings: %w", err)
	}

	if err := s.schedule(config.CheckInterval); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("Scheduler started", "interval", config.CheckInterval)
	return nil
}

// Stop halts the cron loop and waits for running jobs to finish
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Scheduler stopped")
}

func (s *Scheduler) schedule(interval time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.entryID != 0 {
		s.cron.Remove(s.entryID)
	}

	entryID, err := s.cron.AddFunc(fmt.Sprintf("@every %s", interval), s.runCycle)
	if err != nil {
		return fmt.Errorf("failed to schedule check cycle: %w", err)
	}
	s.entryID = entryID
	s.interval = interval
	return nil
}

// runCycle executes one full check pass over all pages
func (s *Scheduler) runCycle() {
	ctx := context.Background()

	config, err := s.settings.Scheduler(ctx)
	if err != nil {
		s.logger.Error("Failed to load scheduler settings, skipping cycle", "error", err)
		return
	}

	// Reschedule if the operator changed the interval
	s.mu.Lock()
	intervalChanged := config.CheckInterval != s.interval
	s.mu.Unlock()
	if intervalChanged {
		s.logger.Info("Check interval changed, rescheduling", "interval", config.CheckInterval)
		if err := s.schedule(config.CheckInterval); err != nil {
			s.logger.Error("Failed to reschedule", "error", err)
		}
	}

	pages, err := s.pages.Descriptors(ctx)
	if err != nil {
		s.logger.Error("Failed to list pages, skipping cycle", "error", err)
		return
	}
	if len(pages) == 0 {
		return
	}

	s.logger.Info("Starting check cycle", "pages", len(pages), "batchSize", config.BatchSize)
	start := time.Now()
	checked := 0

	for batchStart := 0; batchStart < len(pages); batchStart += config.BatchSize {
		batchEnd := batchStart + config.BatchSize
		if batchEnd > len(pages) {
			batchEnd = len(pages)
		}

		checked += s.runBatch(ctx, pages[batchStart:batchEnd])

		if batchEnd < len(pages) && config.BatchDelay > 0 {
			time.Sleep(config.BatchDelay)
		}
	}

	s.logger.Info("Check cycle finished", "checked", checked, "skipped", len(pages)-checked, "elapsed", time.Since(start))
}

func (s *Scheduler) runBatch(ctx context.Context, batch []monitor.PageDescriptor) int {
	var wg sync.WaitGroup
	checked := 0
	var mu sync.Mutex

	for _, page := range batch {
		if _, running := s.inFlight.LoadOrStore(page.ID, struct{}{}); running {
			s.logger.Warn("Previous check still running, skipping page", "pageID", page.ID, "slug", page.Slug)
			continue
		}

		wg.Add(1)
		go func(page monitor.PageDescriptor) {
			defer wg.Done()
			defer s.inFlight.Delete(page.ID)

			if _, err := s.checker.RunCheck(ctx, page, monitor.OriginCron); err != nil {
				s.logger.Error("Check failed", "pageID", page.ID, "slug", page.Slug, "error", err)
				return
			}
			mu.Lock()
			checked++
			mu.Unlock()
		}(page)
	}

	wg.Wait()
	return checked
}
