package analytics

import (
	"sort"
	"time"

	"skillpulse/internal/models"
)

// Config carries the engine tunables. Zero values fall back to the
// defaults; the heatmap skill count is clamped to [5, 30].
type Config struct {
	MonthsAhead         int
	MovingAverageWindow int
	TopForecastSkills   int
	HeatmapTopSkills    int
}

func DefaultConfig() Config {
	return Config{
		MonthsAhead:         1,
		MovingAverageWindow: 3,
		TopForecastSkills:   10,
		HeatmapTopSkills:    DefaultHeatmapTopSkills,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.MonthsAhead <= 0 {
		c.MonthsAhead = defaults.MonthsAhead
	}
	if c.MovingAverageWindow <= 0 {
		c.MovingAverageWindow = defaults.MovingAverageWindow
	}
	if c.TopForecastSkills <= 0 {
		c.TopForecastSkills = defaults.TopForecastSkills
	}
	c.HeatmapTopSkills = clampTopSkills(c.HeatmapTopSkills)
	return c
}

// Snapshot bundles one run's forecasts and heatmap. GeneratedAt is the
// only non-deterministic field; everything else is a pure function of the
// posting list.
type Snapshot struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Forecasts   []TrendResult `json:"forecasts"`
	Heatmap     HeatmapResult `json:"heatmap"`
}

// Engine runs the full analytics pass over an immutable posting list. It
// holds only configuration; runs are independent and idempotent.
type Engine struct {
	cfg Config
}

func NewEngine(cfg Config) *Engine {
	return &Engine{cfg: cfg.withDefaults()}
}

// BuildSnapshot forecasts the top skills by total monthly count and
// cross-tabulates cities against skills. Skills with under two months of
// history are dropped from the forecast list, not reported as errors. An
// empty posting list yields a well-formed empty snapshot.
func (e *Engine) BuildSnapshot(postings []models.Posting) Snapshot {
	monthly := CountMonthlySkills(postings)

	totals := make(map[string]int, len(monthly))
	for skill, series := range monthly {
		totals[skill] = series.total()
	}
	topSkills := topByCount(totals, e.cfg.TopForecastSkills)

	forecasts := make([]TrendResult, 0, len(topSkills))
	for _, skill := range topSkills {
		forecast := ForecastSkill(skill, monthly[skill], e.cfg)
		if forecast.Status == StatusSuccess {
			forecasts = append(forecasts, forecast)
		}
	}

	return Snapshot{
		GeneratedAt: time.Now(),
		Forecasts:   forecasts,
		Heatmap:     BuildHeatmap(postings, e.cfg.HeatmapTopSkills),
	}
}

// ForecastOne forecasts a single named skill. The boolean reports whether
// the skill appears in any posting with a valid date.
func (e *Engine) ForecastOne(skill string, postings []models.Posting) (TrendResult, bool) {
	monthly := CountMonthlySkills(postings)
	series, ok := monthly[skill]
	if !ok {
		return TrendResult{}, false
	}
	return ForecastSkill(skill, series, e.cfg), true
}

// TrackedSkills lists every skill with at least one dated posting, most
// frequent first.
func (e *Engine) TrackedSkills(postings []models.Posting) []string {
	monthly := CountMonthlySkills(postings)
	totals := make(map[string]int, len(monthly))
	for skill, series := range monthly {
		totals[skill] = series.total()
	}

	names := make([]string, 0, len(totals))
	for name := range totals {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if totals[names[i]] != totals[names[j]] {
			return totals[names[i]] > totals[names[j]]
		}
		return names[i] < names[j]
	})
	return names
}
