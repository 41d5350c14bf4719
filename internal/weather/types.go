// Package weather holds the hourly weather dataset consumed by the hydrogen calculator.
package weather

import (
	"errors"
	"fmt"

	"github.com/soniakeys/meeus/v3/julian"
	"gonum.org/v1/gonum/mat"
)

const (
	// HoursPerDay is the number of hourly records in one day
	HoursPerDay = 24
	// HoursPerYear is the length of a non-leap year's hourly series
	HoursPerYear = 365 * HoursPerDay
	// HoursPerLeapYear is the length of a leap year's hourly series
	HoursPerLeapYear = 366 * HoursPerDay
)

// ErrNoYears is returned when a dataset carries no weather years
var ErrNoYears = errors.New("dataset contains no weather years")

// City is one row of the city table
type City struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// YearTable holds one year of hourly readings as hour × city matrices
type YearTable struct {
	Year        int
	WindSpeed   *mat.Dense // m/s at 10 m
	Temperature *mat.Dense // °C
	Humidity    *mat.Dense // relative humidity, %
}

// Hours returns the number of hourly rows in the table
func (t *YearTable) Hours() int {
	r, _ := t.WindSpeed.Dims()
	return r
}

// Series extracts the hourly series for one city column
func (t *YearTable) Series(cityIndex int) HourlySeries {
	return HourlySeries{
		Year:        t.Year,
		Wind:        mat.Col(nil, cityIndex, t.WindSpeed),
		Temperature: mat.Col(nil, cityIndex, t.Temperature),
		Humidity:    mat.Col(nil, cityIndex, t.Humidity),
	}
}

// HourlySeries is the hourly weather for one (year, city) pair, indexed by hour of year
type HourlySeries struct {
	Year        int
	Wind        []float64
	Temperature []float64
	Humidity    []float64
}

// Len returns the number of hours in the series
func (s HourlySeries) Len() int {
	return len(s.Wind)
}

// Dataset is the city table plus one YearTable per year, ordered by year
type Dataset struct {
	Cities []City
	Years  []*YearTable
}

// HoursInYear returns the number of hourly records in a Gregorian calendar year
func HoursInYear(year int) int {
	if julian.LeapYearGregorian(year) {
		return HoursPerLeapYear
	}
	return HoursPerYear
}

// DayOfYear returns the 1-based day of year for an hour-of-year index
func DayOfYear(hourIndex int) int {
	return hourIndex/HoursPerDay + 1
}

// HourOfDay returns the 0-based hour of day for an hour-of-year index
func HourOfDay(hourIndex int) int {
	return hourIndex % HoursPerDay
}

// HourIndex returns the hour-of-year index for a 1-based day of year and 0-based hour
func HourIndex(dayOfYear, hourOfDay int) int {
	return (dayOfYear-1)*HoursPerDay + hourOfDay
}

// CalendarDate converts a day of year into a month and day for the given year
func CalendarDate(year, dayOfYear int) (month, day int) {
	return julian.DayOfYearToCalendar(dayOfYear, julian.LeapYearGregorian(year))
}

// YearNumbers returns the calendar years present in the dataset
func (d *Dataset) YearNumbers() []int {
	years := make([]int, len(d.Years))
	for i, y := range d.Years {
		years[i] = y.Year
	}
	return years
}

// CitySeries returns the hourly series of every year for one city
func (d *Dataset) CitySeries(cityIndex int) []HourlySeries {
	series := make([]HourlySeries, len(d.Years))
	for i, y := range d.Years {
		series[i] = y.Series(cityIndex)
	}
	return series
}

// Validate checks that every table has one row per hour of its year and one
// column per city.
func (d *Dataset) Validate() error {
	if len(d.Years) == 0 {
		return ErrNoYears
	}
	for _, y := range d.Years {
		expected := HoursInYear(y.Year)
		for name, m := range map[string]*mat.Dense{
			"windspeed":   y.WindSpeed,
			"temperature": y.Temperature,
			"humidity":    y.Humidity,
		} {
			if m == nil {
				return fmt.Errorf("year %d: missing %s table", y.Year, name)
			}
			r, c := m.Dims()
			if r != expected {
				return fmt.Errorf("year %d: %s has %d hourly rows, expected %d", y.Year, name, r, expected)
			}
			if c != len(d.Cities) {
				return fmt.Errorf("year %d: %s has %d city columns, city table has %d cities", y.Year, name, c, len(d.Cities))
			}
		}
	}
	return nil
}

// NewYearTable allocates zeroed tables sized for the given year and number of cities
func NewYearTable(year, cityCount int) *YearTable {
	hours := HoursInYear(year)
	return &YearTable{
		Year:        year,
		WindSpeed:   mat.NewDense(hours, cityCount, nil),
		Temperature: mat.NewDense(hours, cityCount, nil),
		Humidity:    mat.NewDense(hours, cityCount, nil),
	}
}

// SetHour stores the readings for one city at one hour of year
func (t *YearTable) SetHour(hourIndex, cityIndex int, wind, temperature, humidity float64) {
	t.WindSpeed.Set(hourIndex, cityIndex, wind)
	t.Temperature.Set(hourIndex, cityIndex, temperature)
	t.Humidity.Set(hourIndex, cityIndex, humidity)
}
