package analytics

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/AI2HU/gdc/internal/catalog"
	"github.com/AI2HU/gdc/internal/models"
	"github.com/AI2HU/gdc/internal/views"
)

type episodeList []models.Episode

func (l episodeList) List() []models.Episode {
	return l
}

func newDefaultGenerator() *Generator {
	return New(catalog.Default(), Period{})
}

func TestSeededRandomRange(t *testing.T) {
	for seed := -1000; seed <= 100000; seed += 7 {
		r := SeededRandom(float64(seed))
		if r < 0 || r >= 1 {
			t.Fatalf("SeededRandom(%d) = %f out of [0,1)", seed, r)
		}
	}
	if SeededRandom(17) != SeededRandom(17) {
		t.Fatalf("expected SeededRandom to be deterministic")
	}
}

func TestSeededRandomSpread(t *testing.T) {
	seen := make(map[float64]int)
	for i := 1; i <= 31; i++ {
		for _, k := range []float64{seedDailyBase, seedDailyUnique, seedDailyWatch} {
			seen[SeededRandom(float64(i)*k)]++
		}
	}
	// i*17 == j*23 and friends collide for a few pairs; everything else must differ.
	if len(seen) < 85 {
		t.Fatalf("expected distinct draws for the daily seeds, got %d unique of 93", len(seen))
	}
}

func TestDeterminism(t *testing.T) {
	g := newDefaultGenerator()

	if !reflect.DeepEqual(g.DailyStats(), g.DailyStats()) {
		t.Fatalf("DailyStats differs between calls")
	}
	if !reflect.DeepEqual(g.EpisodeAnalytics(), g.EpisodeAnalytics()) {
		t.Fatalf("EpisodeAnalytics differs between calls")
	}
	if !reflect.DeepEqual(g.StateDistribution(), g.StateDistribution()) {
		t.Fatalf("StateDistribution differs between calls")
	}
	if !reflect.DeepEqual(g.TrafficSources(), g.TrafficSources()) {
		t.Fatalf("TrafficSources differs between calls")
	}
	if !reflect.DeepEqual(g.Dashboard(), newDefaultGenerator().Dashboard()) {
		t.Fatalf("Dashboard differs between generators")
	}
}

func TestDailyStats(t *testing.T) {
	stats := newDefaultGenerator().DailyStats()
	if len(stats) != 31 {
		t.Fatalf("expected 31 days, got %d", len(stats))
	}

	for i, s := range stats {
		want := time.Date(2025, time.December, i+1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
		if s.Date != want {
			t.Fatalf("expected date %s at index %d, got %s", want, i, s.Date)
		}
		if s.Views < 0 || s.UniqueViewers < 0 || s.WatchTimeMinutes < 0 {
			t.Fatalf("negative figure on %s: %+v", s.Date, s)
		}
		if s.UniqueViewers > s.Views {
			t.Fatalf("unique viewers exceed views on %s: %+v", s.Date, s)
		}
	}
}

func TestDailyStatsFirstDay(t *testing.T) {
	// 2025-12-01 is a Monday: no weekend boost and no holiday multiplier.
	stats := newDefaultGenerator().DailyStats()
	want := int(800 + SeededRandom(17)*600 + 15)
	if stats[0].Views != want {
		t.Fatalf("expected %d views on day 1, got %d", want, stats[0].Views)
	}
}

func TestDailyStatsMultipliers(t *testing.T) {
	r := SeededRandom
	// December 2025: the 6th, 27th and 28th fall on a weekend.
	tests := []struct {
		name string
		day  int
		want float64
	}{
		{"weekday", 2, 800 + r(34)*600 + 30},
		{"saturday boost before growth", 6, (800+r(102)*600)*1.4 + 90},
		{"christmas eve", 24, (800 + r(408)*600 + 360) * 1.3},
		{"christmas", 25, (800 + r(425)*600 + 375) * 1.8},
		{"boxing day", 26, (800 + r(442)*600 + 390) * 1.3},
		{"saturday before year end", 27, (800+r(459)*600)*1.4 + 405},
		{"sunday year end", 28, ((800+r(476)*600)*1.4 + 420) * 1.2},
		{"weekday year end", 29, (800 + r(493)*600 + 435) * 1.2},
	}

	stats := newDefaultGenerator().DailyStats()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stats[tt.day-1]
			want := int(math.Floor(tt.want))
			if got.Views != want {
				t.Fatalf("expected %d views on day %d, got %d", want, tt.day, got.Views)
			}

			d := float64(tt.day)
			n := float64(got.Views)
			unique := int(math.Floor(n * (0.7 + r(d*23)*0.15)))
			watch := int(math.Floor(n * (2.5 + r(d*31)*1.5)))
			if got.UniqueViewers != unique || got.WatchTimeMinutes != watch {
				t.Fatalf("expected %d unique and %d minutes on day %d, got %+v", unique, watch, tt.day, got)
			}
		})
	}
}

func TestChristmasSpike(t *testing.T) {
	stats := newDefaultGenerator().DailyStats()
	christmas := stats[24]
	// 23 December 2025 is a Tuesday, like 25 December is a weekday.
	before := stats[22]
	if christmas.Views <= before.Views {
		t.Fatalf("expected day 25 (%d) above day 23 (%d)", christmas.Views, before.Views)
	}
}

func TestPeriodDays(t *testing.T) {
	tests := []struct {
		period Period
		days   int
	}{
		{Period{2025, time.December}, 31},
		{Period{2025, time.February}, 28},
		{Period{2024, time.February}, 29},
		{Period{2025, time.April}, 30},
	}
	for _, tt := range tests {
		g := New(episodeList(nil), tt.period)
		if got := len(g.DailyStats()); got != tt.days {
			t.Fatalf("expected %d records for %s, got %d", tt.days, tt.period, got)
		}
	}
	if New(episodeList(nil), Period{}).Period() != DefaultPeriod {
		t.Fatalf("expected zero period to fall back to default")
	}
}

func TestEpisodeAnalytics(t *testing.T) {
	c := catalog.Default()
	analytics := New(c, Period{}).EpisodeAnalytics()
	if len(analytics) != len(c.Playable()) {
		t.Fatalf("expected %d records, got %d", len(c.Playable()), len(analytics))
	}

	for i, a := range analytics {
		if a.AvgWatchPercent < 65 || a.AvgWatchPercent > 94 {
			t.Fatalf("avg watch percent out of range: %+v", a)
		}
		if i > 0 && analytics[i-1].Views < a.Views {
			t.Fatalf("analytics not sorted by views at %d", i)
		}
		ep, err := c.Get(a.EpisodeID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ep.ComingSoon {
			t.Fatalf("coming soon episode %d in analytics", ep.ID)
		}
		if a.Shares < a.Views*2/100-1 || a.Shares > a.Views*5/100 {
			t.Fatalf("shares outside 2-5%% of views: %+v", a)
		}
	}
}

func TestEpisodeAnalyticsFormula(t *testing.T) {
	ep := models.Episode{ID: 4, EpisodeNumber: 10, Duration: 600}
	got := New(episodeList{ep}, Period{}).EpisodeAnalytics()
	if len(got) != 1 {
		t.Fatalf("expected 1 record, got %d", len(got))
	}

	want := int(float64(views.BaseViews(4)) * 1.5)
	if got[0].Views != want {
		t.Fatalf("expected %d views, got %d", want, got[0].Views)
	}
}

func TestEpisodeAnalyticsLateEpisodesKeepFormula(t *testing.T) {
	eps := episodeList{
		{ID: 1, EpisodeNumber: 20},
		{ID: 2, EpisodeNumber: 40},
		{ID: 3, EpisodeNumber: 41},
	}
	got := New(eps, Period{}).EpisodeAnalytics()

	byID := make(map[int]models.EpisodeAnalytic)
	for _, a := range got {
		byID[a.EpisodeID] = a
	}
	if byID[1].Views != views.BaseViews(1) {
		t.Fatalf("expected multiplier 1 at episode 20, got %d", byID[1].Views)
	}
	// 1 + (20-40)*0.05 is zero in exact arithmetic; floating point leaves it within one view.
	if v := byID[2].Views; v < -1 || v > 0 {
		t.Fatalf("expected about 0 views at episode 40, got %d", v)
	}
	if byID[3].Views >= 0 {
		t.Fatalf("expected negative views past episode 40, got %d", byID[3].Views)
	}
	if got[len(got)-1].EpisodeID != 3 {
		t.Fatalf("expected the negative record last, got %+v", got)
	}
}

func TestEpisodeAnalyticsSkipsComingSoon(t *testing.T) {
	eps := episodeList{
		{ID: 9, EpisodeNumber: 1, ComingSoon: true},
		{ID: 5, EpisodeNumber: 2},
	}
	got := New(eps, Period{}).EpisodeAnalytics()
	if len(got) != 1 || got[0].EpisodeID != 5 {
		t.Fatalf("expected only episode 5, got %+v", got)
	}
}

func TestStateDistribution(t *testing.T) {
	g := newDefaultGenerator()
	states := g.StateDistribution()
	if len(states) != 14 {
		t.Fatalf("expected 14 regions, got %d", len(states))
	}

	codes := make(map[string]bool)
	for _, r := range Regions {
		codes[r.Code] = true
	}

	total := g.TotalViews()
	seen := make(map[string]bool)
	for i, s := range states {
		if !codes[s.StateCode] {
			t.Fatalf("unknown region %s", s.StateCode)
		}
		if seen[s.StateCode] {
			t.Fatalf("region %s appears twice", s.StateCode)
		}
		seen[s.StateCode] = true

		if i > 0 && states[i-1].Viewers < s.Viewers {
			t.Fatalf("regions not sorted at %d", i)
		}
		if s.Viewers > total {
			t.Fatalf("region %s has more viewers than total views", s.StateCode)
		}
	}

	for _, r := range Regions {
		for _, s := range states {
			if s.StateCode != r.Code {
				continue
			}
			if s.Percentage < r.Weight*0.9-1e-9 || s.Percentage > r.Weight*1.1+1e-9 {
				t.Fatalf("region %s percentage %f outside ±10%% of %f", r.Code, s.Percentage, r.Weight)
			}
		}
	}
}

func TestTrafficSources(t *testing.T) {
	sources := newDefaultGenerator().TrafficSources()
	if len(sources) != 9 {
		t.Fatalf("expected 9 sources, got %d", len(sources))
	}

	weights := make(map[string]float64)
	for _, ch := range Channels {
		weights[ch.Name] = ch.Weight
	}

	for i, s := range sources {
		w, ok := weights[s.Source]
		if !ok {
			t.Fatalf("unknown source %s", s.Source)
		}
		delete(weights, s.Source)
		if s.Percentage < w*0.85-1e-9 || s.Percentage > w*1.15+1e-9 {
			t.Fatalf("source %s percentage %f outside ±15%% of %f", s.Source, s.Percentage, w)
		}
		if i > 0 && sources[i-1].Visitors < s.Visitors {
			t.Fatalf("sources not sorted at %d", i)
		}
	}
	if len(weights) != 0 {
		t.Fatalf("missing sources: %v", weights)
	}
}

func TestOverview(t *testing.T) {
	g := newDefaultGenerator()
	o := g.Overview()

	if o.TotalViews != g.TotalViews() {
		t.Fatalf("overview total %d differs from daily total %d", o.TotalViews, g.TotalViews())
	}
	if o.TotalEpisodes != 11 {
		t.Fatalf("expected 11 episodes, got %d", o.TotalEpisodes)
	}
	if o.AvgViewsPerEpisode != o.TotalViews/o.TotalEpisodes {
		t.Fatalf("unexpected average views per episode: %d", o.AvgViewsPerEpisode)
	}
	if o.AvgWatchPercent < 65 || o.AvgWatchPercent > 94 {
		t.Fatalf("unexpected average watch percent: %d", o.AvgWatchPercent)
	}
	if o.StatesReached != 14 {
		t.Fatalf("expected 14 states reached, got %d", o.StatesReached)
	}

	empty := New(episodeList(nil), Period{}).Overview()
	if empty.TotalEpisodes != 0 || empty.AvgViewsPerEpisode != 0 || empty.AvgWatchPercent != 0 {
		t.Fatalf("expected zero averages without episodes, got %+v", empty)
	}
}
