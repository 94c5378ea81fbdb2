// Package analytics fabricates the dashboard figures of the showcase site.
//
// Every series is a pure function of fixed seeds and the episode catalog:
// nothing is cached, and calling a generator twice yields identical output.
package analytics

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/AI2HU/gdc/internal/models"
	"github.com/AI2HU/gdc/internal/views"
)

// EpisodeSource supplies the episode list the generator reads
type EpisodeSource interface {
	List() []models.Episode
}

// Period is the calendar month the daily series covers
type Period struct {
	Year  int
	Month time.Month
}

// DefaultPeriod is December 2025, the month the season-1 dashboard reports on
var DefaultPeriod = Period{Year: 2025, Month: time.December}

// Days returns the number of days in the period
func (p Period) Days() int {
	return time.Date(p.Year, p.Month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// String formats the period as YYYY-MM
func (p Period) String() string {
	return fmt.Sprintf("%04d-%02d", p.Year, int(p.Month))
}

// Date returns day d of the period at midnight UTC
func (p Period) Date(d int) time.Time {
	return time.Date(p.Year, p.Month, d, 0, 0, 0, 0, time.UTC)
}

// Generator produces the synthetic analytics series
type Generator struct {
	episodes EpisodeSource
	period   Period
}

// New creates a generator over the given episodes. A zero period falls back to DefaultPeriod.
func New(episodes EpisodeSource, period Period) *Generator {
	if period.Year == 0 || period.Month < time.January || period.Month > time.December {
		period = DefaultPeriod
	}
	return &Generator{
		episodes: episodes,
		period:   period,
	}
}

// Period returns the month the generator reports on
func (g *Generator) Period() Period {
	return g.period
}

// DailyStats returns one record per day of the period in ascending date order
func (g *Generator) DailyStats() []models.DailyStat {
	days := g.period.Days()
	stats := make([]models.DailyStat, 0, days)

	for day := 1; day <= days; day++ {
		date := g.period.Date(day)
		d := float64(day)

		base := 800 + SeededRandom(d*seedDailyBase)*600
		if weekday := date.Weekday(); weekday == time.Saturday || weekday == time.Sunday {
			base *= 1.4
		}

		// gradual channel growth
		base += d * 15

		// holiday season
		if day == 25 {
			base *= 1.8
		}
		if day == 24 || day == 26 {
			base *= 1.3
		}
		if day >= 28 {
			base *= 1.2
		}

		viewCount := math.Floor(base)
		uniqueViewers := math.Floor(viewCount * (0.7 + SeededRandom(d*seedDailyUnique)*0.15))
		watchTime := math.Floor(viewCount * (2.5 + SeededRandom(d*seedDailyWatch)*1.5))

		stats = append(stats, models.DailyStat{
			Date:             date.Format("2006-01-02"),
			Views:            int(viewCount),
			UniqueViewers:    int(uniqueViewers),
			WatchTimeMinutes: int(watchTime),
		})
	}

	return stats
}

// EpisodeAnalytics returns engagement figures for every playable episode, most viewed first
func (g *Generator) EpisodeAnalytics() []models.EpisodeAnalytic {
	var out []models.EpisodeAnalytic

	for _, ep := range g.episodes.List() {
		if ep.DisplayState() == models.ComingSoon {
			continue
		}

		base := float64(views.BaseViews(ep.ID))
		seed := float64(ep.ID) * seedEpisode

		// Older episodes had longer to accumulate views. Past episode 20 the
		// multiplier drops below 1 and eventually turns negative; kept as is.
		multiplier := 1 + float64(20-ep.EpisodeNumber)*0.05
		viewCount := math.Floor(base * multiplier)

		avgWatchPercent := math.Floor(65 + SeededRandom(seed)*30)
		watchTime := math.Floor(viewCount * (float64(ep.Duration) / 60) * (avgWatchPercent / 100))
		shares := math.Floor(viewCount * (0.02 + SeededRandom(seed+2)*0.03))

		out = append(out, models.EpisodeAnalytic{
			EpisodeID:        ep.ID,
			EpisodeNumber:    ep.EpisodeNumber,
			Title:            ep.Title,
			TitleBM:          ep.TitleBM,
			ThumbnailURL:     ep.ThumbnailURL,
			Views:            int(viewCount),
			WatchTimeMinutes: int(watchTime),
			AvgWatchPercent:  int(avgWatchPercent),
			Shares:           int(shares),
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Views > out[j].Views
	})

	return out
}

// TotalViews sums the views of a fresh daily series
func (g *Generator) TotalViews() int {
	total := 0
	for _, d := range g.DailyStats() {
		total += d.Views
	}
	return total
}

// StateDistribution spreads the period's views across the fixed regions, largest first
func (g *Generator) StateDistribution() []models.StateViewers {
	total := float64(g.TotalViews())
	out := make([]models.StateViewers, 0, len(Regions))

	for i, r := range Regions {
		weight := jitter(r.Weight, i, seedStateSpread, 0.2)
		out = append(out, models.StateViewers{
			State:      r.Name,
			StateCode:  r.Code,
			Viewers:    int(math.Floor(total * (weight / 100))),
			Percentage: weight,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Viewers > out[j].Viewers
	})

	return out
}

// TrafficSources spreads the period's views across the fixed referral channels, largest first
func (g *Generator) TrafficSources() []models.TrafficSource {
	total := float64(g.TotalViews())
	out := make([]models.TrafficSource, 0, len(Channels))

	for i, ch := range Channels {
		weight := jitter(ch.Weight, i, seedTrafficSpread, 0.3)
		out = append(out, models.TrafficSource{
			Source:     ch.Name,
			Icon:       ch.Icon,
			Visitors:   int(math.Floor(total * (weight / 100))),
			Percentage: weight,
			Color:      ch.Color,
		})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Visitors > out[j].Visitors
	})

	return out
}

// Overview aggregates the headline figures
func (g *Generator) Overview() models.OverviewStats {
	daily := g.DailyStats()
	episodes := g.EpisodeAnalytics()

	var overview models.OverviewStats
	for _, d := range daily {
		overview.TotalViews += d.Views
		overview.TotalWatchTime += d.WatchTimeMinutes
	}

	percentSum := 0
	for _, e := range episodes {
		overview.TotalShares += e.Shares
		percentSum += e.AvgWatchPercent
	}

	overview.TotalEpisodes = len(episodes)
	overview.StatesReached = len(Regions)
	if n := len(episodes); n > 0 {
		overview.AvgViewsPerEpisode = int(math.Floor(float64(overview.TotalViews) / float64(n)))
		overview.AvgWatchPercent = int(math.Floor(float64(percentSum) / float64(n)))
	}

	return overview
}

// Dashboard returns every series of the analytics page in one value
func (g *Generator) Dashboard() models.Dashboard {
	return models.Dashboard{
		Period:   g.period.String(),
		Overview: g.Overview(),
		Daily:    g.DailyStats(),
		Episodes: g.EpisodeAnalytics(),
		States:   g.StateDistribution(),
		Traffic:  g.TrafficSources(),
	}
}

// jitter scales a base weight by 1 ± spread/2, drawn from the i-th seed of the domain
func jitter(weight float64, i int, k float64, spread float64) float64 {
	variation := 1 + (SeededRandom(float64(i)*k)-0.5)*spread
	return weight * variation
}
