package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/AI2HU/gdc/internal/models"
)

func TestDefaultCatalog(t *testing.T) {
	c := Default()
	if c.Len() != 12 {
		t.Fatalf("expected 12 episodes, got %d", c.Len())
	}
	if got := len(c.Playable()); got != 11 {
		t.Fatalf("expected 11 playable episodes, got %d", got)
	}
	soon := c.ByState(models.ComingSoon)
	if len(soon) != 1 || soon[0].ID != 12 {
		t.Fatalf("unexpected coming soon episodes: %+v", soon)
	}
}

func TestNewFillsThumbnail(t *testing.T) {
	c, err := New([]models.Episode{{ID: 1, EpisodeNumber: 1, YouTubeID: "abc"}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ep, err := c.Get(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ep.ThumbnailURL != "https://img.youtube.com/vi/abc/hqdefault.jpg" {
		t.Fatalf("unexpected thumbnail: %s", ep.ThumbnailURL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		episodes []models.Episode
		wantErr  bool
	}{
		{"ok", []models.Episode{{ID: 1, EpisodeNumber: 1}, {ID: 2, EpisodeNumber: 2}}, false},
		{"zero id", []models.Episode{{ID: 0, EpisodeNumber: 1}}, true},
		{"negative id", []models.Episode{{ID: -3, EpisodeNumber: 1}}, true},
		{"duplicate id", []models.Episode{{ID: 1, EpisodeNumber: 1}, {ID: 1, EpisodeNumber: 2}}, true},
		{"duplicate number", []models.Episode{{ID: 1, EpisodeNumber: 1}, {ID: 2, EpisodeNumber: 1}}, true},
		{"negative duration", []models.Episode{{ID: 1, EpisodeNumber: 1, Duration: -1}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.episodes)
			if (err != nil) != tt.wantErr {
				t.Fatalf("expected error=%v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestGetNotFound(t *testing.T) {
	_, err := Default().Get(999)
	if !errors.Is(err, ErrEpisodeNotFound) {
		t.Fatalf("expected ErrEpisodeNotFound, got %v", err)
	}
}

func TestNavigation(t *testing.T) {
	c, err := New([]models.Episode{
		{ID: 10, EpisodeNumber: 1},
		{ID: 20, EpisodeNumber: 2, ComingSoon: true},
		{ID: 30, EpisodeNumber: 3, Featured: true},
		{ID: 40, EpisodeNumber: 4},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if next, ok := c.Next(10); !ok || next.ID != 30 {
		t.Fatalf("expected next of 10 to be 30, got %+v ok=%v", next, ok)
	}
	if prev, ok := c.Previous(30); !ok || prev.ID != 10 {
		t.Fatalf("expected previous of 30 to be 10, got %+v ok=%v", prev, ok)
	}
	if _, ok := c.Previous(10); ok {
		t.Fatalf("expected no previous for first episode")
	}
	if _, ok := c.Next(40); ok {
		t.Fatalf("expected no next for last episode")
	}
	if _, ok := c.Next(20); ok {
		t.Fatalf("coming soon episodes are not navigable")
	}
	if featured, ok := c.Featured(); !ok || featured.ID != 30 {
		t.Fatalf("expected featured 30, got %+v", featured)
	}
}

func TestFeaturedFallsBackToFirstPlayable(t *testing.T) {
	c, err := New([]models.Episode{
		{ID: 1, EpisodeNumber: 1, ComingSoon: true},
		{ID: 2, EpisodeNumber: 2},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if featured, ok := c.Featured(); !ok || featured.ID != 2 {
		t.Fatalf("expected featured 2, got %+v", featured)
	}

	empty, _ := New(nil)
	if _, ok := empty.Featured(); ok {
		t.Fatalf("expected no featured episode in empty catalog")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	data := []byte(`episodes:
  - id: 7
    title: "Only"
    episode_number: 1
    duration: 600
`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ep, err := c.Get(7)
	if err != nil || ep.Title != "Only" || ep.Duration != 600 {
		t.Fatalf("unexpected episode: %+v err=%v", ep, err)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestThumbnailURL(t *testing.T) {
	if got := ThumbnailURL("x", QualityMaxRes); got != "https://img.youtube.com/vi/x/maxresdefault.jpg" {
		t.Fatalf("unexpected url: %s", got)
	}
	if got := ThumbnailURL("x", "bogus"); got != "https://img.youtube.com/vi/x/hqdefault.jpg" {
		t.Fatalf("unexpected fallback url: %s", got)
	}
}
