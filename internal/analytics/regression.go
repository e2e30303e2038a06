package analytics

import "math"

// linearRegression fits y = slope*x + intercept by ordinary least squares.
// Fewer than two points yields (0, 0); a zero denominator yields a flat
// line at the mean of y.
func linearRegression(x, y []float64) (slope, intercept float64) {
	n := len(x)
	if n < 2 {
		return 0, 0
	}

	xMean := mean(x)
	yMean := mean(y)

	var numerator, denominator float64
	for i := 0; i < n; i++ {
		numerator += (x[i] - xMean) * (y[i] - yMean)
		denominator += (x[i] - xMean) * (x[i] - xMean)
	}

	if denominator == 0 {
		return 0, yMean
	}

	slope = numerator / denominator
	intercept = yMean - slope*xMean
	return slope, intercept
}

// movingAverage returns the mean of the trailing window values. Shorter
// inputs use every point; an empty input yields 0.
func movingAverage(values []float64, window int) float64 {
	if len(values) == 0 {
		return 0
	}
	if window <= 0 || len(values) < window {
		return mean(values)
	}
	return mean(values[len(values)-window:])
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
