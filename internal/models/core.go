package models

import (
	"fmt"
)

// Core domain models

// DisplayState is the display variant of an episode
type DisplayState int

const (
	// Playable episodes can be opened in the player and count towards analytics
	Playable DisplayState = iota
	// ComingSoon episodes are announced but not yet released
	ComingSoon
)

// String returns the wire name of the display state
func (d DisplayState) String() string {
	switch d {
	case Playable:
		return "playable"
	case ComingSoon:
		return "coming_soon"
	default:
		return "unknown"
	}
}

// ParseDisplayState parses a wire name back into a DisplayState
func ParseDisplayState(s string) (DisplayState, error) {
	switch s {
	case "playable":
		return Playable, nil
	case "coming_soon", "coming-soon", "comingsoon":
		return ComingSoon, nil
	default:
		return Playable, fmt.Errorf("unknown display state: %s", s)
	}
}

// Episode represents one episode of the series
type Episode struct {
	ID            int      `json:"id" yaml:"id"`
	Slug          string   `json:"slug" yaml:"slug"`
	Title         string   `json:"title" yaml:"title"`
	TitleBM       string   `json:"title_bm" yaml:"title_bm"`
	Description   string   `json:"description" yaml:"description"`
	DescriptionBM string   `json:"description_bm" yaml:"description_bm"`
	YouTubeID     string   `json:"youtube_id" yaml:"youtube_id"`
	ThumbnailURL  string   `json:"thumbnail_url" yaml:"thumbnail_url"`
	Duration      int      `json:"duration" yaml:"duration"` // seconds
	Season        int      `json:"season" yaml:"season"`
	EpisodeNumber int      `json:"episode_number" yaml:"episode_number"`
	ReleaseDate   string   `json:"release_date" yaml:"release_date"` // YYYY-MM-DD
	Tags          []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	Topic         string   `json:"topic" yaml:"topic"`
	Featured      bool     `json:"featured,omitempty" yaml:"featured,omitempty"`
	ComingSoon    bool     `json:"coming_soon,omitempty" yaml:"coming_soon,omitempty"`
}

// DisplayState reports whether the episode is playable or coming soon
func (e *Episode) DisplayState() DisplayState {
	if e.ComingSoon {
		return ComingSoon
	}
	return Playable
}

// IsPlayable is shorthand for DisplayState() == Playable
func (e *Episode) IsPlayable() bool {
	return e.DisplayState() == Playable
}
