package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLinearRegression(t *testing.T) {
	tests := []struct {
		name          string
		x             []float64
		y             []float64
		wantSlope     float64
		wantIntercept float64
	}{
		{
			name:          "empty input",
			x:             nil,
			y:             nil,
			wantSlope:     0,
			wantIntercept: 0,
		},
		{
			name:          "single point",
			x:             []float64{0},
			y:             []float64{7},
			wantSlope:     0,
			wantIntercept: 0,
		},
		{
			name:          "unit slope",
			x:             []float64{0, 1, 2},
			y:             []float64{1, 2, 3},
			wantSlope:     1.0,
			wantIntercept: 1.0,
		},
		{
			name:          "slope of five",
			x:             []float64{0, 1, 2},
			y:             []float64{1, 6, 11},
			wantSlope:     5.0,
			wantIntercept: 1.0,
		},
		{
			name:          "negative slope",
			x:             []float64{0, 1, 2},
			y:             []float64{11, 6, 1},
			wantSlope:     -5.0,
			wantIntercept: 11.0,
		},
		{
			name:          "flat series",
			x:             []float64{0, 1, 2, 3},
			y:             []float64{4, 4, 4, 4},
			wantSlope:     0,
			wantIntercept: 4.0,
		},
		{
			name:          "zero variance in x falls back to mean",
			x:             []float64{2, 2, 2},
			y:             []float64{1, 5, 9},
			wantSlope:     0,
			wantIntercept: 5.0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			slope, intercept := linearRegression(tc.x, tc.y)
			assert.InDelta(t, tc.wantSlope, slope, 1e-9)
			assert.InDelta(t, tc.wantIntercept, intercept, 1e-9)
		})
	}
}

func TestMovingAverage(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		window int
		want   float64
	}{
		{
			name:   "empty input",
			values: nil,
			window: 3,
			want:   0,
		},
		{
			name:   "fewer values than window uses all",
			values: []float64{2, 4},
			window: 3,
			want:   3,
		},
		{
			name:   "exact window",
			values: []float64{2, 4, 6},
			window: 3,
			want:   4,
		},
		{
			name:   "trailing window ignores older values",
			values: []float64{100, 1, 2, 3},
			window: 3,
			want:   2,
		},
		{
			name:   "window of one tracks the last value",
			values: []float64{5, 9},
			window: 1,
			want:   9,
		},
		{
			name:   "non-positive window averages everything",
			values: []float64{1, 2, 3, 4},
			window: 0,
			want:   2.5,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, movingAverage(tc.values, tc.window), 1e-9)
		})
	}
}

func TestRounding(t *testing.T) {
	assert.Equal(t, 166.7, round1(166.666666))
	assert.Equal(t, -66.7, round1(-66.666666))
	assert.Equal(t, 1.23, round2(1.2345))
	assert.Equal(t, 0.0, round1(0.04))
}
