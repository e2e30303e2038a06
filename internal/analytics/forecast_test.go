package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecastSkillInsufficientData(t *testing.T) {
	result := ForecastSkill("Python", MonthlySeries{"2024-01": 9}, DefaultConfig())

	assert.Equal(t, StatusInsufficientData, result.Status)
	assert.Equal(t, "Python", result.Skill)
	assert.Empty(t, result.Trend)
	assert.Nil(t, result.HistoricalData)
	assert.Nil(t, result.Recommendations)
}

func TestForecastSkillClassification(t *testing.T) {
	tests := []struct {
		name         string
		series       MonthlySeries
		wantSlope    float64
		wantTrend    string
		wantStrength string
	}{
		{
			name:         "unit slope is stable",
			series:       MonthlySeries{"2024-01": 1, "2024-02": 2, "2024-03": 3},
			wantSlope:    1.0,
			wantTrend:    TrendStable,
			wantStrength: StrengthStable,
		},
		{
			name:         "slope of five is moderate growth",
			series:       MonthlySeries{"2024-01": 1, "2024-02": 6, "2024-03": 11},
			wantSlope:    5.0,
			wantTrend:    TrendGrowing,
			wantStrength: StrengthModerate,
		},
		{
			name:         "slope of six is strong growth",
			series:       MonthlySeries{"2024-01": 1, "2024-02": 7, "2024-03": 13},
			wantSlope:    6.0,
			wantTrend:    TrendGrowing,
			wantStrength: StrengthStrong,
		},
		{
			name:         "slope of minus five is moderate decline",
			series:       MonthlySeries{"2024-01": 11, "2024-02": 6, "2024-03": 1},
			wantSlope:    -5.0,
			wantTrend:    TrendDeclining,
			wantStrength: StrengthModerate,
		},
		{
			name:         "slope of minus six is strong decline",
			series:       MonthlySeries{"2024-01": 13, "2024-02": 7, "2024-03": 1},
			wantSlope:    -6.0,
			wantTrend:    TrendDeclining,
			wantStrength: StrengthStrong,
		},
		{
			name:         "flat series is stable",
			series:       MonthlySeries{"2024-01": 4, "2024-02": 4, "2024-03": 4},
			wantSlope:    0.0,
			wantTrend:    TrendStable,
			wantStrength: StrengthStable,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := ForecastSkill("Python", tc.series, DefaultConfig())

			require.Equal(t, StatusSuccess, result.Status)
			assert.Equal(t, tc.wantSlope, result.Slope)
			assert.Equal(t, tc.wantTrend, result.Trend)
			assert.Equal(t, tc.wantStrength, result.TrendStrength)
		})
	}
}

func TestForecastSkillPrediction(t *testing.T) {
	// counts 1, 6, 11: slope 5, intercept 1, next point 5*3+1 = 16.
	result := ForecastSkill("SQL", MonthlySeries{"2024-01": 1, "2024-02": 6, "2024-03": 11}, DefaultConfig())

	require.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, 16, result.PredictedNextMonth)
	assert.Equal(t, 11, result.CurrentMonthCount)
	assert.Equal(t, 6.0, result.RecentAverage)
	assert.Equal(t, round1((16.0-6.0)/6.0*100), result.PredictedChangePct)
	assert.Equal(t, 6, result.MovingAveragePrediction)

	require.NotNil(t, result.HistoricalData)
	assert.Equal(t, []string{"2024-01", "2024-02", "2024-03"}, result.HistoricalData.Months)
	assert.Equal(t, []int{1, 6, 11}, result.HistoricalData.Counts)
}

func TestForecastSkillPredictionNeverNegative(t *testing.T) {
	// counts 11, 6, 1: next point projects to -4 and clamps to zero.
	result := ForecastSkill("VBA", MonthlySeries{"2024-01": 11, "2024-02": 6, "2024-03": 1}, DefaultConfig())

	require.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, 0, result.PredictedNextMonth)
	assert.GreaterOrEqual(t, result.PredictedNextMonth, 0)
}

func TestForecastSkillShortHistoryBaseline(t *testing.T) {
	// Only two months: the baseline is the latest count, not a mean.
	result := ForecastSkill("Go", MonthlySeries{"2024-01": 5, "2024-02": 3}, DefaultConfig())

	require.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, 3.0, result.RecentAverage)
	assert.Equal(t, 1, result.PredictedNextMonth)
	assert.Equal(t, -66.7, result.PredictedChangePct)
}

func TestForecastSkillZeroBaseline(t *testing.T) {
	// A zero recent average floors the percentage change at 0.
	result := ForecastSkill("Excel", MonthlySeries{"2024-01": 0, "2024-02": 0}, DefaultConfig())

	require.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, 0.0, result.PredictedChangePct)
	assert.Equal(t, 0, result.PredictedNextMonth)
}

func TestForecastSkillProjectionHorizon(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MonthsAhead = 3

	// counts 1, 2, 3: slope 1, intercept 1; projections 4, 5, 6.
	result := ForecastSkill("Python", MonthlySeries{"2024-01": 1, "2024-02": 2, "2024-03": 3}, cfg)

	require.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, []int{4, 5, 6}, result.Projections)
	assert.Equal(t, 4, result.PredictedNextMonth)
}

func TestForecastSkillMovingAverageWindow(t *testing.T) {
	series := MonthlySeries{
		"2024-01": 10,
		"2024-02": 1,
		"2024-03": 2,
		"2024-04": 3,
	}

	cfg := DefaultConfig()
	result := ForecastSkill("Python", series, cfg)
	require.Equal(t, StatusSuccess, result.Status)
	assert.Equal(t, 2, result.MovingAveragePrediction)

	cfg.MovingAverageWindow = 4
	result = ForecastSkill("Python", series, cfg)
	assert.Equal(t, 4, result.MovingAveragePrediction)
}

func TestRecommendations(t *testing.T) {
	tests := []struct {
		name     string
		trend    string
		strength string
		pct      float64
		want     []string
	}{
		{
			name:     "moderate growth",
			trend:    TrendGrowing,
			strength: StrengthModerate,
			pct:      12.3,
			want: []string{
				"High demand - consider learning or improving this skill",
				"Good for career development and job opportunities",
			},
		},
		{
			name:     "strong growth includes the change",
			trend:    TrendGrowing,
			strength: StrengthStrong,
			pct:      171.43,
			want: []string{
				"High demand - consider learning or improving this skill",
				"Strong growth (+171.4%) - hot skill in the market",
				"Good for career development and job opportunities",
			},
		},
		{
			name:     "moderate decline",
			trend:    TrendDeclining,
			strength: StrengthModerate,
			pct:      -20,
			want: []string{
				"Declining demand - may want to focus on other skills",
				"Look for complementary or emerging skills",
			},
		},
		{
			name:     "strong decline includes the change",
			trend:    TrendDeclining,
			strength: StrengthStrong,
			pct:      -83.21,
			want: []string{
				"Declining demand - may want to focus on other skills",
				"Strong decline (-83.2%) - consider pivoting",
				"Look for complementary or emerging skills",
			},
		},
		{
			name:     "stable",
			trend:    TrendStable,
			strength: StrengthStable,
			pct:      0,
			want: []string{
				"Stable demand - consistent opportunities available",
				"Maintain proficiency in this skill",
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, recommendations(tc.trend, tc.strength, tc.pct))
		})
	}
}
