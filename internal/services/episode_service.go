package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/AI2HU/gdc/internal/catalog"
	"github.com/AI2HU/gdc/internal/models"
	"github.com/AI2HU/gdc/internal/views"
)

// ErrNotPlayable is returned when a view is recorded for an episode that cannot be watched yet
var ErrNotPlayable = errors.New("episode is not playable yet")

// EpisodeService joins the catalog with the view counter
type EpisodeService struct {
	catalog *catalog.Catalog
	counter *views.Counter
}

// NewEpisodeService creates a new episode service
func NewEpisodeService(c *catalog.Catalog, counter *views.Counter) *EpisodeService {
	return &EpisodeService{
		catalog: c,
		counter: counter,
	}
}

// Catalog returns the underlying catalog
func (s *EpisodeService) Catalog() *catalog.Catalog {
	return s.catalog
}

// Counter returns the underlying view counter
func (s *EpisodeService) Counter() *views.Counter {
	return s.counter
}

// List returns the episodes in catalog order, optionally filtered by display state
func (s *EpisodeService) List(ctx context.Context, state *models.DisplayState) []models.EpisodeResponse {
	var episodes []models.Episode
	if state != nil {
		episodes = s.catalog.ByState(*state)
	} else {
		episodes = s.catalog.List()
	}

	out := make([]models.EpisodeResponse, 0, len(episodes))
	for _, ep := range episodes {
		out = append(out, s.response(ctx, ep))
	}
	return out
}

// Get returns one episode with its view figure
func (s *EpisodeService) Get(ctx context.Context, id int) (models.EpisodeResponse, error) {
	ep, err := s.catalog.Get(id)
	if err != nil {
		return models.EpisodeResponse{}, err
	}
	return s.response(ctx, ep), nil
}

// Featured returns the episode the home page highlights
func (s *EpisodeService) Featured(ctx context.Context) (models.EpisodeResponse, error) {
	ep, ok := s.catalog.Featured()
	if !ok {
		return models.EpisodeResponse{}, fmt.Errorf("no playable episode: %w", catalog.ErrEpisodeNotFound)
	}
	return s.response(ctx, ep), nil
}

// Next returns the playable episode after id
func (s *EpisodeService) Next(ctx context.Context, id int) (models.EpisodeResponse, error) {
	return s.navigate(ctx, id, s.catalog.Next)
}

// Previous returns the playable episode before id
func (s *EpisodeService) Previous(ctx context.Context, id int) (models.EpisodeResponse, error) {
	return s.navigate(ctx, id, s.catalog.Previous)
}

func (s *EpisodeService) navigate(ctx context.Context, id int, step func(int) (models.Episode, bool)) (models.EpisodeResponse, error) {
	if _, err := s.catalog.Get(id); err != nil {
		return models.EpisodeResponse{}, err
	}
	ep, ok := step(id)
	if !ok {
		return models.EpisodeResponse{}, fmt.Errorf("no playable episode next to %d: %w", id, catalog.ErrEpisodeNotFound)
	}
	return s.response(ctx, ep), nil
}

// Views returns the view snapshot of an episode
func (s *EpisodeService) Views(ctx context.Context, id int) (models.ViewSnapshot, error) {
	if _, err := s.catalog.Get(id); err != nil {
		return models.ViewSnapshot{}, err
	}
	return s.counter.Snapshot(ctx, id), nil
}

// RecordView increments the counter of a playable episode
func (s *EpisodeService) RecordView(ctx context.Context, id int) (models.RecordViewResponse, error) {
	ep, err := s.catalog.Get(id)
	if err != nil {
		return models.RecordViewResponse{}, err
	}
	if !ep.IsPlayable() {
		return models.RecordViewResponse{}, fmt.Errorf("episode %d: %w", id, ErrNotPlayable)
	}

	// a recorded view always leaves an increment of at least 1
	inc := s.counter.Increment(ctx, id)
	return models.RecordViewResponse{
		EpisodeID: id,
		Recorded:  inc > 0,
		Increment: inc,
		Total:     s.counter.Base(id) + inc,
	}, nil
}

// Snapshots returns the view snapshot of every playable episode in catalog order
func (s *EpisodeService) Snapshots(ctx context.Context) []models.ViewSnapshot {
	playable := s.catalog.Playable()
	out := make([]models.ViewSnapshot, 0, len(playable))
	for _, ep := range playable {
		out = append(out, s.counter.Snapshot(ctx, ep.ID))
	}
	return out
}

func (s *EpisodeService) response(ctx context.Context, ep models.Episode) models.EpisodeResponse {
	return models.EpisodeResponse{
		Episode: ep,
		State:   ep.DisplayState().String(),
		Views:   s.counter.TotalViews(ctx, ep.ID),
	}
}
