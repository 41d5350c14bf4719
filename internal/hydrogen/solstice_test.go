package hydrogen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrissnell/h2calc/internal/weather"
	"github.com/chrissnell/h2calc/pkg/power"
)

func TestSampleSolsticeProfileShape(t *testing.T) {
	series := constantDataset(centerUS, 0, 0, 0).CitySeries(0)
	profile := SampleSolstice(39.8, series[2], series[3])

	assert.Equal(t, SolsticeDay, profile.DayOfYear)
	assert.Equal(t, 2015, profile.WindYear)
	assert.Equal(t, 2016, profile.ClimateYear)
	assert.Equal(t, 6, profile.Month)
	assert.Equal(t, 20, profile.Day)

	sunrise, sunset := power.SunriseSunset(39.8, SolsticeDay)
	peak := 0
	for h := 0; h < weather.HoursPerDay; h++ {
		if profile.Raw[h] > profile.Raw[peak] {
			peak = h
		}
		if float64(h) <= sunrise || float64(h) >= sunset {
			assert.Zero(t, profile.Raw[h], "hour %d should be dark", h)
		}
		// Zero wind, temperature and humidity leave irradiance untouched
		assert.Equal(t, profile.Raw[h], profile.Weathered[h])
	}
	assert.Equal(t, 12, peak)
}

func TestSampleSolsticeCrossYearReadings(t *testing.T) {
	series := constantDataset(centerUS, 0, 0, 0).CitySeries(0)
	start := weather.HourIndex(SolsticeDay, 0)
	for h := 0; h < weather.HoursPerDay; h++ {
		series[2].Wind[start+h] = 5
		series[2].Temperature[start+h] = 99 // ignored: climate comes from 2016
		series[3].Wind[start+h] = 99        // ignored: wind comes from 2015
		series[3].Temperature[start+h] = 30
		series[3].Humidity[start+h] = 60
	}

	profile := SampleSolstice(39.8, series[2], series[3])
	derating := power.WeatherDerating(18, 30, 60)
	for h := 0; h < weather.HoursPerDay; h++ {
		assert.InDelta(t, profile.Raw[h]*derating, profile.Weathered[h], 1e-9, "hour %d", h)
	}
}

func TestSampleSolsticeDateFollowsClimateYear(t *testing.T) {
	series := constantDataset(centerUS, 0, 0, 0).CitySeries(0)

	profile := SampleSolstice(39.8, series[1], series[2])
	assert.Equal(t, 2015, profile.ClimateYear)
	assert.Equal(t, 6, profile.Month)
	assert.Equal(t, 21, profile.Day)
}

func TestSolsticeReferences(t *testing.T) {
	series := constantDataset(centerUS, 0, 0, 0).CitySeries(0)

	wind, climate := solsticeReferences(series)
	assert.Equal(t, 2015, wind.Year)
	assert.Equal(t, 2016, climate.Year)

	wind, climate = solsticeReferences(series[:1])
	require.Equal(t, 2013, wind.Year)
	assert.Equal(t, 2013, climate.Year)
}
