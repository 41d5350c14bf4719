package hydrogen

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// SpeedDistribution summarises one year of wind speeds for a violin or box plot
type SpeedDistribution struct {
	Year   int     `json:"year"`
	Min    float64 `json:"min"`
	Q1     float64 `json:"q1"`
	Median float64 `json:"median"`
	Q3     float64 `json:"q3"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
}

// SummarizeDistribution computes the quartiles, extremes and mean of values
func SummarizeDistribution(year int, values []float64) SpeedDistribution {
	d := SpeedDistribution{Year: year}
	if len(values) == 0 {
		return d
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	d.Min = sorted[0]
	d.Max = sorted[len(sorted)-1]
	d.Q1 = stat.Quantile(0.25, stat.Empirical, sorted, nil)
	d.Median = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	d.Q3 = stat.Quantile(0.75, stat.Empirical, sorted, nil)
	d.Mean = stat.Mean(sorted, nil)
	return d
}

// Density is a kernel density estimate sampled on a fixed grid
type Density struct {
	Year      int       `json:"year"`
	Grid      []float64 `json:"grid"`
	Density   []float64 `json:"density"`
	Bandwidth float64   `json:"bandwidth"`
}

// KernelDensity estimates the density of values on an evenly spaced grid
// from lo to hi (inclusive) using a Gaussian kernel with Scott's bandwidth.
func KernelDensity(year int, values []float64, lo, hi float64, points int) Density {
	d := Density{
		Year:    year,
		Grid:    make([]float64, points),
		Density: make([]float64, points),
	}
	if points < 2 || len(values) == 0 {
		return d
	}

	step := (hi - lo) / float64(points-1)
	for j := range d.Grid {
		d.Grid[j] = lo + float64(j)*step
	}

	// Scott's rule on the sample standard deviation
	var sigma float64
	if len(values) > 1 {
		sigma = stat.StdDev(values, nil)
	}
	d.Bandwidth = sigma * math.Pow(float64(len(values)), -0.2)
	if d.Bandwidth == 0 || math.IsNaN(d.Bandwidth) {
		d.Bandwidth = 1
	}

	kernel := distuv.Normal{Mu: 0, Sigma: d.Bandwidth}
	weight := 1 / float64(len(values))
	for j, x := range d.Grid {
		sum := 0.0
		for _, v := range values {
			sum += kernel.Prob(x - v)
		}
		d.Density[j] = sum * weight
	}

	return d
}
