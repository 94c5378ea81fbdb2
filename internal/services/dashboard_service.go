package services

import (
	"github.com/AI2HU/gdc/internal/analytics"
	"github.com/AI2HU/gdc/internal/models"
)

// DashboardService serves the analytics series to the API, CLI and exports
type DashboardService struct {
	generator *analytics.Generator
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(generator *analytics.Generator) *DashboardService {
	return &DashboardService{generator: generator}
}

// Period returns the month the series cover
func (s *DashboardService) Period() analytics.Period {
	return s.generator.Period()
}

// Daily returns the per-day series
func (s *DashboardService) Daily() []models.DailyStat {
	return s.generator.DailyStats()
}

// Episodes returns per-episode analytics, most viewed first, trimmed to limit when positive
func (s *DashboardService) Episodes(limit int) []models.EpisodeAnalytic {
	return truncate(s.generator.EpisodeAnalytics(), limit)
}

// States returns the geographic distribution, trimmed to limit when positive
func (s *DashboardService) States(limit int) []models.StateViewers {
	return truncate(s.generator.StateDistribution(), limit)
}

// Traffic returns the referral breakdown, trimmed to limit when positive
func (s *DashboardService) Traffic(limit int) []models.TrafficSource {
	return truncate(s.generator.TrafficSources(), limit)
}

// Overview returns the headline figures
func (s *DashboardService) Overview() models.OverviewStats {
	return s.generator.Overview()
}

// Dashboard returns every series at once
func (s *DashboardService) Dashboard() models.Dashboard {
	return s.generator.Dashboard()
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && limit < len(items) {
		return items[:limit]
	}
	return items
}
