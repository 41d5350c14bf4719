package hydrogen

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrissnell/h2calc/internal/weather"
	"github.com/chrissnell/h2calc/pkg/power"
)

func TestNewCalculatorRejectsInvalidDataset(t *testing.T) {
	ds := constantDataset(centerUS, 1, 1, 1)
	ds.Cities = ds.Cities[:1]

	_, err := NewCalculator(ds, nil)
	assert.Error(t, err)
}

func TestComputeWindSeries(t *testing.T) {
	calc := newTestCalculator(t, constantDataset(centerUS, 10, 15, 50))
	params := DefaultWindParams()

	res, err := calc.ComputeWindSeries(0, &params)
	require.NoError(t, err)

	assert.Equal(t, "Lebanon", res.City.Name)
	assert.Equal(t, testYears, res.Years)
	require.Len(t, res.Energy, 4)
	require.Len(t, res.Hydrogen, 4)
	require.Len(t, res.HydrogenMean, weather.HoursPerLeapYear)
	require.Len(t, res.HydrogenStdDev, weather.HoursPerLeapYear)

	perHour := power.WindPower(60, 80, 10) / 1e6
	last := weather.HoursPerYear - 1
	for y := 0; y < 3; y++ {
		assert.InDelta(t, float64(last)*perHour, res.Energy[y][last], float64(last)*perHour*1e-9)
		for i := weather.HoursPerYear; i < weather.HoursPerLeapYear; i++ {
			require.Equal(t, res.Energy[y][last], res.Energy[y][i])
		}
	}

	assert.Zero(t, res.HydrogenMean[0])
	assert.Zero(t, res.HydrogenStdDev[0])
	// Identical years agree up to rounding
	assert.InDelta(t, 0, res.HydrogenStdDev[last], 1e-9)
	assert.InDelta(t, power.HydrogenFromEnergy(res.Energy[0][last]), res.HydrogenMean[last], 1e-6)
	for i := weather.HoursPerYear; i < weather.HoursPerLeapYear; i++ {
		require.Equal(t, res.HydrogenMean[last], res.HydrogenMean[i])
		require.Equal(t, res.HydrogenStdDev[last], res.HydrogenStdDev[i])
	}
}

func TestComputeWindSeriesEnvelope(t *testing.T) {
	// 1 m/s at 10 m is below cut-in at an 80 m hub
	ds := constantDataset(centerUS, 1, 15, 50)

	legacy := newTestCalculator(t, ds)
	params := DefaultWindParams()
	res, err := legacy.ComputeWindSeries(1, &params)
	require.NoError(t, err)
	assert.Greater(t, res.Energy[0][100], 0.0)

	enforced := newTestCalculator(t, ds, WithWindEnvelope(true))
	res, err = enforced.ComputeWindSeries(1, &params)
	require.NoError(t, err)
	assert.Zero(t, res.Energy[3][weather.HoursPerLeapYear-1])
}

func TestComputeSolarSeries(t *testing.T) {
	calc := newTestCalculator(t, constantDataset(centerUS, 2, 20, 50))
	params := SolarParams{PanelAreaM2: 5, Efficiency: 0.18}

	res, err := calc.ComputeSolarSeries(1, &params)
	require.NoError(t, err)

	assert.Equal(t, "Boston", res.City.Name)
	assert.Equal(t, params, res.Params)
	require.Len(t, res.Energy[0], weather.HoursPerLeapYear)

	last := weather.HoursPerYear - 1
	assert.Greater(t, res.Energy[0][last], 0.0)
	assert.Equal(t, res.Energy[0][last], res.Energy[0][weather.HoursPerLeapYear-1])
	// The leap year sees one more day of sun
	assert.Greater(t, res.Energy[3][weather.HoursPerLeapYear-1], res.Energy[0][last])

	assert.Equal(t, 2015, res.Solstice.WindYear)
	assert.Equal(t, 2016, res.Solstice.ClimateYear)
	derating := power.WeatherDerating(7.2, 20, 50)
	assert.InDelta(t, res.Solstice.Raw[12]*derating, res.Solstice.Weathered[12], 1e-9)
}

func TestComputeErrors(t *testing.T) {
	calc := newTestCalculator(t, constantDataset(centerUS, 5, 10, 50))

	_, err := calc.ComputeWindSeries(0, nil)
	assert.True(t, errors.Is(err, ErrUninitializedParameters))

	_, err = calc.ComputeSolarSeries(0, nil)
	assert.True(t, errors.Is(err, ErrUninitializedParameters))

	wind := DefaultWindParams()
	for _, idx := range []int{-1, 2, 30} {
		_, err = calc.ComputeWindSeries(idx, &wind)
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrCityIndexOutOfRange))

		var cityErr *CityIndexError
		require.True(t, errors.As(err, &cityErr))
		assert.Equal(t, idx, cityErr.Index)
		assert.Equal(t, 2, cityErr.Count)
	}

	_, err = calc.ComputeSolarSeries(0, &SolarParams{PanelAreaM2: 1, Efficiency: 1.5})
	assert.Error(t, err)
	assert.False(t, errors.Is(err, ErrUninitializedParameters))

	_, err = calc.ComputeWindSeries(0, &WindParams{HeightM: 0, RadiusM: 60})
	assert.Error(t, err)
}

func TestSupplementarySeries(t *testing.T) {
	ds := constantDataset(centerUS, 6, 10, 55)
	calc := newTestCalculator(t, ds)

	speeds, err := calc.WindSpeedSeries(0)
	require.NoError(t, err)
	require.Len(t, speeds, 4)
	assert.Len(t, speeds[3].Values, weather.HoursPerLeapYear)
	assert.Equal(t, 6.0, speeds[0].Values[42])

	dists, err := calc.WindSpeedDistributions(1)
	require.NoError(t, err)
	require.Len(t, dists, 4)
	assert.Equal(t, 6.0, dists[2].Median)
	assert.Equal(t, 2015, dists[2].Year)

	densities, err := calc.HumidityDensities(0)
	require.NoError(t, err)
	require.Len(t, densities, 4)
	peak := 0
	for j, p := range densities[0].Density {
		if p > densities[0].Density[peak] {
			peak = j
		}
	}
	assert.Equal(t, 55.0, densities[0].Grid[peak])

	_, err = calc.HumidityDensities(9)
	assert.ErrorIs(t, err, ErrCityIndexOutOfRange)
}
