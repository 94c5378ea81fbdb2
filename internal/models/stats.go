package models

import (
	"time"
)

// DailyStat holds the synthetic traffic of one calendar day
type DailyStat struct {
	Date             string `json:"date"` // YYYY-MM-DD
	Views            int    `json:"views"`
	UniqueViewers    int    `json:"unique_viewers"`
	WatchTimeMinutes int    `json:"watch_time_minutes"`
}

// EpisodeAnalytic holds the synthetic engagement of one released episode
type EpisodeAnalytic struct {
	EpisodeID        int    `json:"episode_id"`
	EpisodeNumber    int    `json:"episode_number"`
	Title            string `json:"title"`
	TitleBM          string `json:"title_bm"`
	ThumbnailURL     string `json:"thumbnail_url"`
	Views            int    `json:"views"`
	WatchTimeMinutes int    `json:"watch_time_minutes"`
	AvgWatchPercent  int    `json:"avg_watch_percent"` // 65-94
	Shares           int    `json:"shares"`
}

// StateViewers holds the viewer share of one region
type StateViewers struct {
	State      string  `json:"state"`
	StateCode  string  `json:"state_code"`
	Viewers    int     `json:"viewers"`
	Percentage float64 `json:"percentage"`
}

// TrafficSource holds the visitor share of one referral channel
type TrafficSource struct {
	Source     string  `json:"source"`
	Icon       string  `json:"icon"`
	Visitors   int     `json:"visitors"`
	Percentage float64 `json:"percentage"`
	Color      string  `json:"color"`
}

// OverviewStats is the headline figures of the analytics page
type OverviewStats struct {
	TotalViews         int `json:"total_views"`
	TotalWatchTime     int `json:"total_watch_time"` // minutes
	TotalShares        int `json:"total_shares"`
	AvgViewsPerEpisode int `json:"avg_views_per_episode"`
	AvgWatchPercent    int `json:"avg_watch_percent"`
	TotalEpisodes      int `json:"total_episodes"`
	StatesReached      int `json:"states_reached"`
}

// Dashboard bundles every generated series for one page render
type Dashboard struct {
	Period   string            `json:"period"` // YYYY-MM
	Overview OverviewStats     `json:"overview"`
	Daily    []DailyStat       `json:"daily"`
	Episodes []EpisodeAnalytic `json:"episodes"`
	States   []StateViewers    `json:"states"`
	Traffic  []TrafficSource   `json:"traffic"`
}

// ViewSnapshot is the split view-count read of one episode
type ViewSnapshot struct {
	EpisodeID int `json:"episode_id"`
	Base      int `json:"base"`
	Increment int `json:"increment"`
	Total     int `json:"total"`
}

// DashboardExport is the document written by scheduled exports
type DashboardExport struct {
	ID          string         `json:"id"`
	GeneratedAt time.Time      `json:"generated_at"`
	Dashboard   Dashboard      `json:"dashboard"`
	Views       []ViewSnapshot `json:"views"`
}
