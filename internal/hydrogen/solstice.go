package hydrogen

import (
	"github.com/chrissnell/h2calc/internal/weather"
	"github.com/chrissnell/h2calc/pkg/power"
)

// SolsticeDay is the day of year of the northern summer solstice (June 21,
// or June 20 in a leap year)
const SolsticeDay = 172

// SolsticeProfile is one day of hourly irradiance with and without weather derating
type SolsticeProfile struct {
	DayOfYear   int                          `json:"day_of_year"`
	WindYear    int                          `json:"wind_year"`
	ClimateYear int                          `json:"climate_year"`
	Month       int                          `json:"month"`
	Day         int                          `json:"day"`
	Raw         [weather.HoursPerDay]float64 `json:"raw_w_m2"`
	Weathered   [weather.HoursPerDay]float64 `json:"weathered_w_m2"`
}

// SampleSolstice builds the solstice irradiance profile for a latitude. The
// derating reads wind speed from windYear and temperature and humidity from
// climateYear at the same hour index.
func SampleSolstice(latitude float64, windYear, climateYear weather.HourlySeries) SolsticeProfile {
	p := SolsticeProfile{
		DayOfYear:   SolsticeDay,
		WindYear:    windYear.Year,
		ClimateYear: climateYear.Year,
	}
	p.Month, p.Day = weather.CalendarDate(climateYear.Year, SolsticeDay)

	start := weather.HourIndex(SolsticeDay, 0)
	for h := 0; h < weather.HoursPerDay; h++ {
		i := start + h
		raw := power.SolarIrradiance(latitude, SolsticeDay, h)
		p.Raw[h] = raw
		p.Weathered[h] = raw * power.WeatherDerating(power.MSToKmh(windYear.Wind[i]), climateYear.Temperature[i], climateYear.Humidity[i])
	}

	return p
}

// solsticeReferences picks the years feeding the derated profile: wind from
// the second-to-last year and climate from the last year (2015 and 2016 in
// the shipped dataset).
func solsticeReferences(series []weather.HourlySeries) (wind, climate weather.HourlySeries) {
	climate = series[len(series)-1]
	wind = climate
	if len(series) > 1 {
		wind = series[len(series)-2]
	}
	return wind, climate
}
