package hydrogen

import (
	"gonum.org/v1/gonum/stat"
)

// AggregateStats holds the per-hour cross-year mean and population standard deviation
type AggregateStats struct {
	Mean   []float64 `json:"mean"`
	StdDev []float64 `json:"stddev"`
}

// Aggregate computes, for every hour index, the mean and population standard
// deviation (divisor = number of years) of the given equal-length series.
// From liveHours onwards both statistics stay frozen at their last live value.
func Aggregate(series [][]float64, liveHours int) AggregateStats {
	if len(series) == 0 {
		return AggregateStats{}
	}

	n := len(series[0])
	agg := AggregateStats{
		Mean:   make([]float64, n),
		StdDev: make([]float64, n),
	}

	values := make([]float64, len(series))
	for i := 0; i < n; i++ {
		if i > 0 && i >= liveHours {
			agg.Mean[i] = agg.Mean[i-1]
			agg.StdDev[i] = agg.StdDev[i-1]
			continue
		}
		for y := range series {
			values[y] = series[y][i]
		}
		agg.Mean[i], agg.StdDev[i] = stat.PopMeanStdDev(values, nil)
	}

	return agg
}

// Band returns mean - k·σ and mean + k·σ at every hour, the uncertainty band
// drawn around the cross-year trend.
func (a AggregateStats) Band(k float64) (lower, upper []float64) {
	lower = make([]float64, len(a.Mean))
	upper = make([]float64, len(a.Mean))
	for i := range a.Mean {
		lower[i] = a.Mean[i] - k*a.StdDev[i]
		upper[i] = a.Mean[i] + k*a.StdDev[i]
	}
	return lower, upper
}
