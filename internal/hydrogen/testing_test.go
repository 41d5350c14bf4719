package hydrogen

import (
	"testing"

	"go.uber.org/zap"

	"github.com/chrissnell/h2calc/internal/weather"
)

var testYears = []int{2013, 2014, 2015, 2016}

// constantDataset builds a dataset where every hour of every year carries the
// same readings for every city.
func constantDataset(cities []weather.City, wind, temp, rh float64) *weather.Dataset {
	ds := &weather.Dataset{Cities: cities}
	for _, year := range testYears {
		table := weather.NewYearTable(year, len(cities))
		for i := 0; i < table.Hours(); i++ {
			for c := range cities {
				table.SetHour(i, c, wind, temp, rh)
			}
		}
		ds.Years = append(ds.Years, table)
	}
	return ds
}

func newTestCalculator(t *testing.T, ds *weather.Dataset, opts ...Option) *Calculator {
	t.Helper()
	calc, err := NewCalculator(ds, zap.NewNop().Sugar(), opts...)
	if err != nil {
		t.Fatalf("NewCalculator: %v", err)
	}
	return calc
}

var centerUS = []weather.City{
	{Name: "Lebanon", Latitude: 39.8, Longitude: -98.6},
	{Name: "Boston", Latitude: 42.36, Longitude: -71.06},
}
