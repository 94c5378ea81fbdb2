package scheduler

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/AI2HU/gdc/internal/logger"
	"github.com/AI2HU/gdc/internal/models"
	"github.com/AI2HU/gdc/internal/services"
)

// Retry configuration constants
const (
	DefaultMaxRetries = 3
	DefaultRetryDelay = 5 * time.Second
	DefaultCron       = "@hourly"
)

// Options configures scheduled exports
type Options struct {
	Directory  string
	Cron       string
	MaxRetries int
	RetryDelay time.Duration
}

// Scheduler writes dashboard snapshots on a cron schedule
type Scheduler struct {
	dashboard *services.DashboardService
	episodes  *services.EpisodeService
	opts      Options
	cron      *cron.Cron
	running   bool
	runs      int
	mu        sync.RWMutex
}

// New creates a new scheduler
func New(dashboard *services.DashboardService, episodes *services.EpisodeService, opts Options) *Scheduler {
	if opts.Directory == "" {
		opts.Directory = "exports"
	}
	if opts.Cron == "" {
		opts.Cron = DefaultCron
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = DefaultMaxRetries
	}
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = DefaultRetryDelay
	}

	return &Scheduler{
		dashboard: dashboard,
		episodes:  episodes,
		opts:      opts,
	}
}

// Start registers the export job and starts the cron runner
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	c := cron.New()
	_, err := c.AddFunc(s.opts.Cron, func() {
		if _, err := s.RunOnce(ctx); err != nil {
			logger.Error("Scheduled export failed: %v", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	c.Start()
	s.cron = c
	s.running = true

	logger.Info("Scheduler started, exporting to %s with cron expression: %s", s.opts.Directory, s.opts.Cron)
	return nil
}

// Stop stops the scheduler and waits for a running export to finish.
// The lock is released before waiting since the export takes it to count the run.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	c := s.cron
	s.running = false
	s.mu.Unlock()

	<-c.Stop().Done()

	logger.Info("Scheduler stopped")
}

// IsRunning reports whether the cron runner is active
func (s *Scheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Runs returns how many exports completed
func (s *Scheduler) Runs() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.runs
}

// NextRun returns the next scheduled export time, zero when not running
func (s *Scheduler) NextRun() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.running {
		return time.Time{}
	}
	entries := s.cron.Entries()
	if len(entries) == 0 {
		return time.Time{}
	}
	return entries[0].Next
}

// Build assembles one export document
func (s *Scheduler) Build(ctx context.Context) models.DashboardExport {
	return models.DashboardExport{
		ID:          uuid.New().String(),
		GeneratedAt: time.Now().UTC(),
		Dashboard:   s.dashboard.Dashboard(),
		Views:       s.episodes.Snapshots(ctx),
	}
}

// Write encodes an export as indented JSON
func Write(w io.Writer, export models.DashboardExport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(export); err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	return nil
}

// RunOnce writes one export to <directory>/dashboard-<id>.json and returns the file path.
// Failed writes are retried up to MaxRetries times.
func (s *Scheduler) RunOnce(ctx context.Context) (string, error) {
	export := s.Build(ctx)
	path := filepath.Join(s.opts.Directory, fmt.Sprintf("dashboard-%s.json", export.ID))

	var lastErr error
	for attempt := 1; attempt <= s.opts.MaxRetries; attempt++ {
		lastErr = writeFile(path, export)
		if lastErr == nil {
			break
		}

		logger.Warning("Export attempt %d/%d failed: %v", attempt, s.opts.MaxRetries, lastErr)
		if attempt == s.opts.MaxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(s.opts.RetryDelay):
		}
	}
	if lastErr != nil {
		return "", fmt.Errorf("failed to write export after %d attempts: %w", s.opts.MaxRetries, lastErr)
	}

	s.mu.Lock()
	s.runs++
	s.mu.Unlock()

	logger.Info("Exported dashboard %s to %s", export.ID, path)
	return path, nil
}

func writeFile(path string, export models.DashboardExport) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create export directory: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	if err := Write(f, export); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to close export file: %w", err)
	}

	return os.Rename(tmp, path)
}
