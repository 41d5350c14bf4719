// Package hydrogen accumulates hourly wind and solar generation into yearly
// cumulative energy and electrolytic hydrogen series, and aggregates those
// series across years.
package hydrogen

import (
	"github.com/chrissnell/h2calc/internal/weather"
	"github.com/chrissnell/h2calc/pkg/power"
)

// Source identifies the generation technology
type Source string

const (
	// SourceWind accumulates turbine output
	SourceWind Source = "wind"

	// SourceSolar accumulates weather-derated panel output
	SourceSolar Source = "solar"
)

// EnergyModel computes the energy produced during one hourly slot of a series.
// Implementations exist for each Source.
type EnergyModel interface {
	// Increment returns the energy produced at the given hour of year
	Increment(s weather.HourlySeries, hourIndex int) float64
}

// WindModel is the EnergyModel of a single turbine. Hourly watts are treated
// as watt-hours and scaled to MWh.
type WindModel struct {
	Params WindParams
	Power  power.WindModel
}

// Increment implements EnergyModel
func (m WindModel) Increment(s weather.HourlySeries, hourIndex int) float64 {
	return m.Power(m.Params.RadiusM, m.Params.HeightM, s.Wind[hourIndex]) / 1e6
}

// SolarModel is the EnergyModel of a single panel at a fixed latitude. The
// sun geometry depends only on the hour index, so every year sees the same
// irradiance; the weather derating uses that year's own readings.
type SolarModel struct {
	Params   SolarParams
	Latitude float64
}

// Increment implements EnergyModel
func (m SolarModel) Increment(s weather.HourlySeries, hourIndex int) float64 {
	irradiance := power.SolarIrradiance(m.Latitude, weather.DayOfYear(hourIndex), weather.HourOfDay(hourIndex))
	derating := power.WeatherDerating(power.MSToKmh(s.Wind[hourIndex]), s.Temperature[hourIndex], s.Humidity[hourIndex])
	return irradiance * m.Params.Efficiency * m.Params.PanelAreaM2 / 1000 * derating
}

// Accumulation holds the running totals of every year, all extended to the
// length of the longest year.
type Accumulation struct {
	Years    []int
	Energy   [][]float64
	Hydrogen [][]float64

	// LiveHours is the length of the shortest input year. Beyond it at least
	// one year is being carried forward.
	LiveHours int
}

// Accumulate walks each year's hourly series and builds cumulative energy
// and hydrogen series. Index 0 is the zero baseline. Years shorter than the
// longest one hold their last value for the remaining hours.
func Accumulate(series []weather.HourlySeries, model EnergyModel) *Accumulation {
	acc := &Accumulation{
		Years:    make([]int, len(series)),
		Energy:   make([][]float64, len(series)),
		Hydrogen: make([][]float64, len(series)),
	}

	maxLen := 0
	for y, s := range series {
		acc.Years[y] = s.Year
		if s.Len() > maxLen {
			maxLen = s.Len()
		}
		if y == 0 || s.Len() < acc.LiveHours {
			acc.LiveHours = s.Len()
		}
	}

	for y := range series {
		acc.Energy[y] = make([]float64, maxLen)
		acc.Hydrogen[y] = make([]float64, maxLen)
	}

	for i := 1; i < maxLen; i++ {
		for y, s := range series {
			energy, h2 := acc.Energy[y], acc.Hydrogen[y]
			if i >= s.Len() {
				// Leap-day carry-forward
				energy[i] = energy[i-1]
				h2[i] = h2[i-1]
				continue
			}
			energy[i] = energy[i-1] + model.Increment(s, i)
			h2[i] = h2[i-1] + power.HydrogenFromEnergy(energy[i]-energy[i-1])
		}
	}

	return acc
}
