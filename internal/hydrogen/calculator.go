package hydrogen

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/chrissnell/h2calc/internal/weather"
	"github.com/chrissnell/h2calc/pkg/power"
)

// humidityGridPoints samples relative humidity densities at every whole percent
const humidityGridPoints = 101

// SeriesResult is the output shared by wind and solar computations
type SeriesResult struct {
	City           weather.City `json:"city"`
	Years          []int        `json:"years"`
	Energy         [][]float64  `json:"cumulative_energy_mwh"`
	Hydrogen       [][]float64  `json:"cumulative_hydrogen_t"`
	HydrogenMean   []float64    `json:"hydrogen_mean_t"`
	HydrogenStdDev []float64    `json:"hydrogen_stddev_t"`
}

// HydrogenStats returns the mean and standard deviation as an AggregateStats
func (r *SeriesResult) HydrogenStats() AggregateStats {
	return AggregateStats{Mean: r.HydrogenMean, StdDev: r.HydrogenStdDev}
}

// WindResult is the output of ComputeWindSeries
type WindResult struct {
	SeriesResult
	Params WindParams `json:"params"`
}

// SolarResult is the output of ComputeSolarSeries
type SolarResult struct {
	SeriesResult
	Params   SolarParams     `json:"params"`
	Solstice SolsticeProfile `json:"solstice"`
}

// YearSeries is a raw hourly series for one year
type YearSeries struct {
	Year   int       `json:"year"`
	Values []float64 `json:"values"`
}

// Calculator runs generation computations against a loaded dataset. Requests
// are serialized: one computation finishes before the next begins.
type Calculator struct {
	mu        sync.Mutex
	dataset   *weather.Dataset
	logger    *zap.SugaredLogger
	windPower power.WindModel
}

// Option configures a Calculator
type Option func(*Calculator)

// WithWindEnvelope selects the turbine model. When enforce is true, output is
// zero outside the 3-25 m/s hub-height envelope.
func WithWindEnvelope(enforce bool) Option {
	return func(c *Calculator) {
		if enforce {
			c.windPower = power.WindPowerInEnvelope
		} else {
			c.windPower = power.WindPower
		}
	}
}

// NewCalculator validates the dataset and returns a Calculator over it
func NewCalculator(ds *weather.Dataset, logger *zap.SugaredLogger, opts ...Option) (*Calculator, error) {
	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid weather dataset: %w", err)
	}

	c := &Calculator{
		dataset:   ds,
		logger:    logger,
		windPower: power.WindPower,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Cities returns the city table
func (c *Calculator) Cities() []weather.City {
	return c.dataset.Cities
}

// Years returns the calendar years covered by the dataset
func (c *Calculator) Years() []int {
	return c.dataset.YearNumbers()
}

func (c *Calculator) city(cityIndex int) (weather.City, error) {
	if cityIndex < 0 || cityIndex >= len(c.dataset.Cities) {
		return weather.City{}, &CityIndexError{Index: cityIndex, Count: len(c.dataset.Cities)}
	}
	return c.dataset.Cities[cityIndex], nil
}

// ComputeWindSeries accumulates turbine output and hydrogen for every year
// and aggregates the hydrogen series across years.
func (c *Calculator) ComputeWindSeries(cityIndex int, p *WindParams) (*WindResult, error) {
	if p == nil {
		return nil, fmt.Errorf("wind: %w", ErrUninitializedParameters)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	city, err := c.city(cityIndex)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	runID := uuid.NewString()

	series := c.dataset.CitySeries(cityIndex)
	acc := Accumulate(series, WindModel{Params: *p, Power: c.windPower})
	agg := Aggregate(acc.Hydrogen, acc.LiveHours)

	c.logger.Debugw("computed wind series",
		"run", runID, "city", city.Name, "height_m", p.HeightM, "radius_m", p.RadiusM,
		"elapsed", time.Since(start))

	return &WindResult{
		SeriesResult: newSeriesResult(city, acc, agg),
		Params:       *p,
	}, nil
}

// ComputeSolarSeries accumulates weather-derated panel output and hydrogen
// for every year, aggregates across years and samples the solstice profile.
func (c *Calculator) ComputeSolarSeries(cityIndex int, p *SolarParams) (*SolarResult, error) {
	if p == nil {
		return nil, fmt.Errorf("solar: %w", ErrUninitializedParameters)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	city, err := c.city(cityIndex)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	start := time.Now()
	runID := uuid.NewString()

	series := c.dataset.CitySeries(cityIndex)
	acc := Accumulate(series, SolarModel{Params: *p, Latitude: city.Latitude})
	agg := Aggregate(acc.Hydrogen, acc.LiveHours)
	windRef, climateRef := solsticeReferences(series)
	solstice := SampleSolstice(city.Latitude, windRef, climateRef)

	c.logger.Debugw("computed solar series",
		"run", runID, "city", city.Name, "panel_area_m2", p.PanelAreaM2, "efficiency", p.Efficiency,
		"elapsed", time.Since(start))

	return &SolarResult{
		SeriesResult: newSeriesResult(city, acc, agg),
		Params:       *p,
		Solstice:     solstice,
	}, nil
}

// WindSpeedSeries returns the raw hourly wind speed of every year for a city
func (c *Calculator) WindSpeedSeries(cityIndex int) ([]YearSeries, error) {
	if _, err := c.city(cityIndex); err != nil {
		return nil, err
	}

	var out []YearSeries
	for _, s := range c.dataset.CitySeries(cityIndex) {
		out = append(out, YearSeries{Year: s.Year, Values: s.Wind})
	}
	return out, nil
}

// WindSpeedDistributions summarises each year's wind speeds for a city
func (c *Calculator) WindSpeedDistributions(cityIndex int) ([]SpeedDistribution, error) {
	if _, err := c.city(cityIndex); err != nil {
		return nil, err
	}

	var out []SpeedDistribution
	for _, s := range c.dataset.CitySeries(cityIndex) {
		out = append(out, SummarizeDistribution(s.Year, s.Wind))
	}
	return out, nil
}

// HumidityDensities estimates each year's relative humidity density for a city
func (c *Calculator) HumidityDensities(cityIndex int) ([]Density, error) {
	if _, err := c.city(cityIndex); err != nil {
		return nil, err
	}

	var out []Density
	for _, s := range c.dataset.CitySeries(cityIndex) {
		out = append(out, KernelDensity(s.Year, s.Humidity, 0, 100, humidityGridPoints))
	}
	return out, nil
}

func newSeriesResult(city weather.City, acc *Accumulation, agg AggregateStats) SeriesResult {
	return SeriesResult{
		City:           city,
		Years:          acc.Years,
		Energy:         acc.Energy,
		Hydrogen:       acc.Hydrogen,
		HydrogenMean:   agg.Mean,
		HydrogenStdDev: agg.StdDev,
	}
}
