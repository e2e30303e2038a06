package analytics

import "math"

const (
	StatusSuccess          = "success"
	StatusInsufficientData = "insufficient_data"

	TrendGrowing   = "growing"
	TrendDeclining = "declining"
	TrendStable    = "stable"

	StrengthStrong   = "strong"
	StrengthModerate = "moderate"
	StrengthStable   = "stable"
)

// HistoricalData is the observed series behind a forecast, months and
// counts in matching chronological order.
type HistoricalData struct {
	Months []string `json:"months"`
	Counts []int    `json:"counts"`
}

// TrendResult is the forecast for a single skill. It is built once and
// never mutated. A result with status insufficient_data carries only the
// skill name, status, and message.
type TrendResult struct {
	Skill                   string          `json:"skill"`
	Status                  string          `json:"status"`
	Message                 string          `json:"message,omitempty"`
	Trend                   string          `json:"trend,omitempty"`
	TrendStrength           string          `json:"trend_strength,omitempty"`
	Slope                   float64         `json:"slope"`
	CurrentMonthCount       int             `json:"current_month_count"`
	RecentAverage           float64         `json:"recent_average"`
	PredictedNextMonth      int             `json:"predicted_next_month"`
	PredictedChangePct      float64         `json:"predicted_change_pct"`
	MovingAveragePrediction int             `json:"moving_average_prediction"`
	Projections             []int           `json:"projections,omitempty"`
	HistoricalData          *HistoricalData `json:"historical_data,omitempty"`
	Recommendations         []string        `json:"recommendations,omitempty"`
}

// ForecastSkill fits a linear trend to one skill's monthly series and
// projects the next period(s). At least two distinct months of history
// are required; anything less reports insufficient_data.
func ForecastSkill(skill string, series MonthlySeries, cfg Config) TrendResult {
	cfg = cfg.withDefaults()

	if len(series) < 2 {
		return TrendResult{
			Skill:   skill,
			Status:  StatusInsufficientData,
			Message: "need at least 2 months of data",
		}
	}

	months, counts := series.sorted()
	n := len(counts)

	x := make([]float64, n)
	y := make([]float64, n)
	for i, count := range counts {
		x[i] = float64(i)
		y[i] = float64(count)
	}

	slope, intercept := linearRegression(x, y)

	projections := make([]int, cfg.MonthsAhead)
	for step := 0; step < cfg.MonthsAhead; step++ {
		predicted := int(math.Round(slope*float64(n+step) + intercept))
		if predicted < 0 {
			predicted = 0
		}
		projections[step] = predicted
	}
	predictedNext := projections[0]

	trend, strength := classifyTrend(slope)

	// Baseline is the trailing three months regardless of the moving
	// average window; with shorter history the latest month stands in.
	recentAvg := float64(counts[n-1])
	if n >= 3 {
		recentAvg = mean(y[n-3:])
	}

	pctChange := 0.0
	if recentAvg > 0 {
		pctChange = (float64(predictedNext) - recentAvg) / recentAvg * 100
	}

	maPrediction := movingAverage(y, cfg.MovingAverageWindow)

	return TrendResult{
		Skill:                   skill,
		Status:                  StatusSuccess,
		Trend:                   trend,
		TrendStrength:           strength,
		Slope:                   round2(slope),
		CurrentMonthCount:       counts[n-1],
		RecentAverage:           round1(recentAvg),
		PredictedNextMonth:      predictedNext,
		PredictedChangePct:      round1(pctChange),
		MovingAveragePrediction: int(math.Round(maPrediction)),
		Projections:             projections,
		HistoricalData:          &HistoricalData{Months: months, Counts: counts},
		Recommendations:         recommendations(trend, strength, pctChange),
	}
}

// classifyTrend maps a monthly slope to a direction and strength. A slope
// within [-1, 1] is stable; beyond +-5 the move counts as strong.
func classifyTrend(slope float64) (trend, strength string) {
	switch {
	case slope > 1:
		if slope > 5 {
			return TrendGrowing, StrengthStrong
		}
		return TrendGrowing, StrengthModerate
	case slope < -1:
		if slope < -5 {
			return TrendDeclining, StrengthStrong
		}
		return TrendDeclining, StrengthModerate
	default:
		return TrendStable, StrengthStable
	}
}
