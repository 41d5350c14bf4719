package hydrogen

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrissnell/h2calc/internal/weather"
	"github.com/chrissnell/h2calc/pkg/power"
)

type fixedModel float64

func (m fixedModel) Increment(weather.HourlySeries, int) float64 { return float64(m) }

func seriesOfLength(year, n int) weather.HourlySeries {
	return weather.HourlySeries{
		Year:        year,
		Wind:        make([]float64, n),
		Temperature: make([]float64, n),
		Humidity:    make([]float64, n),
	}
}

func TestAccumulateBaselineAndCarryForward(t *testing.T) {
	series := []weather.HourlySeries{
		seriesOfLength(2015, weather.HoursPerYear),
		seriesOfLength(2016, weather.HoursPerLeapYear),
	}

	acc := Accumulate(series, fixedModel(2))

	require.Len(t, acc.Energy, 2)
	assert.Equal(t, []int{2015, 2016}, acc.Years)
	assert.Equal(t, weather.HoursPerYear, acc.LiveHours)

	for y := range series {
		require.Len(t, acc.Energy[y], weather.HoursPerLeapYear)
		assert.Zero(t, acc.Energy[y][0])
		assert.Zero(t, acc.Hydrogen[y][0])
	}

	last := weather.HoursPerYear - 1
	assert.InDelta(t, 2*float64(last), acc.Energy[0][last], 1e-6)
	for i := weather.HoursPerYear; i < weather.HoursPerLeapYear; i++ {
		assert.Equal(t, acc.Energy[0][last], acc.Energy[0][i], "energy carry-forward at %d", i)
		assert.Equal(t, acc.Hydrogen[0][last], acc.Hydrogen[0][i], "hydrogen carry-forward at %d", i)
	}

	assert.InDelta(t, 2*float64(weather.HoursPerLeapYear-1), acc.Energy[1][weather.HoursPerLeapYear-1], 1e-6)
	assert.InDelta(t, power.HydrogenFromEnergy(acc.Energy[1][weather.HoursPerLeapYear-1]), acc.Hydrogen[1][weather.HoursPerLeapYear-1], 1e-6)
}

func TestAccumulateConstantWind(t *testing.T) {
	series := constantDataset(centerUS, 10, 15, 50).CitySeries(0)
	params := DefaultWindParams()

	acc := Accumulate(series, WindModel{Params: params, Power: power.WindPower})

	perHour := power.WindPower(60, 80, 10) / 1e6
	last := weather.HoursPerYear - 1
	for y := 0; y < 3; y++ {
		expected := float64(last) * perHour
		assert.InDelta(t, expected, acc.Energy[y][last], expected*1e-9, "year %d", acc.Years[y])
		for i := 1; i < weather.HoursPerYear; i += 997 {
			assert.InDelta(t, perHour, acc.Energy[y][i]-acc.Energy[y][i-1], perHour*1e-9)
		}
		assert.Equal(t, acc.Energy[y][last], acc.Energy[y][weather.HoursPerLeapYear-1])
	}

	leapLast := weather.HoursPerLeapYear - 1
	assert.InDelta(t, float64(leapLast)*perHour, acc.Energy[3][leapLast], float64(leapLast)*perHour*1e-9)
}

func TestSolarModelIncrement(t *testing.T) {
	s := seriesOfLength(2015, weather.HoursPerYear)
	noon := weather.HourIndex(172, 12)
	s.Wind[noon] = 2
	s.Temperature[noon] = 25
	s.Humidity[noon] = 40

	m := SolarModel{Params: SolarParams{PanelAreaM2: 10, Efficiency: 0.2}, Latitude: 39.8}

	irradiance := power.SolarIrradiance(39.8, 172, 12)
	derating := power.WeatherDerating(7.2, 25, 40)
	assert.InDelta(t, irradiance*0.2*10/1000*derating, m.Increment(s, noon), 1e-12)

	midnight := weather.HourIndex(172, 0)
	assert.Zero(t, m.Increment(s, midnight))
}

func TestSolarGeometryIsSharedAcrossYears(t *testing.T) {
	series := constantDataset(centerUS, 0, 0, 0).CitySeries(0)
	acc := Accumulate(series, SolarModel{Params: DefaultSolarParams(), Latitude: 39.8})

	last := weather.HoursPerYear - 1
	for y := 1; y < 3; y++ {
		assert.Equal(t, acc.Energy[0][last], acc.Energy[y][last])
	}
	assert.Greater(t, acc.Energy[0][last], 0.0)
}

func TestAccumulateNegativeDeratingPropagates(t *testing.T) {
	// 40 m/s, 40 °C and saturated air push the derating factor below zero
	series := constantDataset(centerUS, 40, 40, 100).CitySeries(0)
	acc := Accumulate(series, SolarModel{Params: DefaultSolarParams(), Latitude: 39.8})

	last := weather.HoursPerYear - 1
	assert.Less(t, acc.Energy[0][last], 0.0)
	assert.Less(t, acc.Hydrogen[0][last], 0.0)
	assert.False(t, math.IsNaN(acc.Energy[0][last]))
}
