package scheduler

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/AI2HU/gdc/internal/analytics"
	"github.com/AI2HU/gdc/internal/catalog"
	"github.com/AI2HU/gdc/internal/db/memory"
	"github.com/AI2HU/gdc/internal/models"
	"github.com/AI2HU/gdc/internal/services"
	"github.com/AI2HU/gdc/internal/views"
)

func newScheduler(dir, expr string) *Scheduler {
	c := catalog.Default()
	return New(
		services.NewDashboardService(analytics.New(c, analytics.Period{})),
		services.NewEpisodeService(c, views.NewCounter(memory.New(), "test")),
		Options{Directory: dir, Cron: expr, MaxRetries: 2, RetryDelay: time.Millisecond},
	)
}

func dashboardJSON(t *testing.T, d models.Dashboard) string {
	t.Helper()
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.String()
}

func TestRunOnce(t *testing.T) {
	dir := t.TempDir()
	s := newScheduler(dir, "")

	path, err := s.RunOnce(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Dir(path) != dir || !strings.HasPrefix(filepath.Base(path), "dashboard-") {
		t.Fatalf("unexpected export path %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}

	var export models.DashboardExport
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("invalid export JSON: %v", err)
	}
	if filepath.Base(path) != "dashboard-"+export.ID+".json" {
		t.Fatalf("file name does not carry export id %s", export.ID)
	}
	if len(export.Views) != 11 {
		t.Fatalf("expected 11 view snapshots, got %d", len(export.Views))
	}
	if s.Runs() != 1 {
		t.Fatalf("expected 1 run, got %d", s.Runs())
	}
}

func TestExportsAreDeterministic(t *testing.T) {
	first := newScheduler(t.TempDir(), "").Build(context.Background())
	second := newScheduler(t.TempDir(), "").Build(context.Background())

	if first.ID == second.ID {
		t.Fatalf("expected distinct export ids")
	}

	a, b := dashboardJSON(t, first.Dashboard), dashboardJSON(t, second.Dashboard)
	if a != b {
		diff, _ := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(a),
			B:        difflib.SplitLines(b),
			FromFile: "first",
			ToFile:   "second",
			Context:  3,
		})
		t.Fatalf("dashboards differ between exports:\n%s", diff)
	}
}

func TestStartStop(t *testing.T) {
	s := newScheduler(t.TempDir(), "@every 1h")
	ctx := context.Background()

	if err := s.Start(ctx); err != nil {
		t.Fatalf("failed to start: %v", err)
	}
	if !s.IsRunning() || s.NextRun().IsZero() {
		t.Fatalf("expected a running scheduler with a next run")
	}
	if err := s.Start(ctx); err == nil {
		t.Fatalf("expected error starting twice")
	}

	s.Stop()
	if s.IsRunning() {
		t.Fatalf("expected scheduler to stop")
	}
	s.Stop()
}

// slowStore delays every read and reports the first one on started
type slowStore struct {
	delay   time.Duration
	started chan struct{}
	once    sync.Once
}

func (s *slowStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.once.Do(func() { close(s.started) })
	time.Sleep(s.delay)
	return "", false, nil
}

func (s *slowStore) Set(ctx context.Context, key, value string) error {
	return nil
}

func TestStopWaitsForRunningExport(t *testing.T) {
	store := &slowStore{delay: 20 * time.Millisecond, started: make(chan struct{})}
	c := catalog.Default()
	s := New(
		services.NewDashboardService(analytics.New(c, analytics.Period{})),
		services.NewEpisodeService(c, views.NewCounter(store, "test")),
		Options{Directory: t.TempDir(), Cron: "@every 1s", MaxRetries: 1, RetryDelay: time.Millisecond},
	)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("failed to start: %v", err)
	}

	select {
	case <-store.started:
	case <-time.After(5 * time.Second):
		t.Fatalf("export did not start")
	}

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatalf("Stop did not return while an export was running")
	}
	if s.Runs() != 1 {
		t.Fatalf("expected the running export to complete, got %d runs", s.Runs())
	}
	if s.IsRunning() {
		t.Fatalf("expected scheduler to stop")
	}
}

func TestRestartAfterStop(t *testing.T) {
	s := newScheduler(t.TempDir(), "@every 1h")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := s.Start(ctx); err != nil {
			t.Fatalf("start %d failed: %v", i+1, err)
		}
		s.Stop()
	}
	if s.IsRunning() {
		t.Fatalf("expected scheduler to stop")
	}
}

func TestStartInvalidCron(t *testing.T) {
	if err := newScheduler(t.TempDir(), "every tuesday").Start(context.Background()); err == nil {
		t.Fatalf("expected error for an invalid cron expression")
	}
}

func TestRunOnceUnwritableDirectory(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := newScheduler(filepath.Join(blocker, "exports"), "").RunOnce(context.Background()); err == nil {
		t.Fatalf("expected error when the export directory cannot be created")
	}
}
