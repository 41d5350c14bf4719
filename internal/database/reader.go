package database

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/chrissnell/h2calc/internal/weather"
)

// datetimeColumns precede the city columns in every weather table
var datetimeColumns = []string{"Year", "Month", "Day", "Hour"}

// indexColumns are row-index columns some exporters add; they carry no readings
var indexColumns = []string{"index", "level_0"}

// yearRows holds one table's readings grouped by year, one row per hour,
// columns in city-table order
type yearRows map[int][][]float64

func readDataset(ctx context.Context, src source, logger *zap.SugaredLogger) (*weather.Dataset, error) {
	cities, err := src.cities(ctx)
	if err != nil {
		return nil, err
	}
	if len(cities) == 0 {
		return nil, fmt.Errorf("table %s contains no cities", TableCities)
	}

	tables := make(map[string]yearRows, 3)
	for _, table := range []string{TableWindSpeed, TableTemperature, TableHumidity} {
		rows, err := readWeatherTable(ctx, src, table, cities)
		if err != nil {
			return nil, err
		}
		tables[table] = rows
	}

	var years []int
	for year := range tables[TableWindSpeed] {
		years = append(years, year)
	}
	sort.Ints(years)

	ds := &weather.Dataset{Cities: cities}
	for _, year := range years {
		yt := weather.NewYearTable(year, len(cities))
		for table, target := range map[string]func(hour, city int, v float64){
			TableWindSpeed:   func(h, c int, v float64) { yt.WindSpeed.Set(h, c, v) },
			TableTemperature: func(h, c int, v float64) { yt.Temperature.Set(h, c, v) },
			TableHumidity:    func(h, c int, v float64) { yt.Humidity.Set(h, c, v) },
		} {
			rows, ok := tables[table][year]
			if !ok {
				return nil, fmt.Errorf("table %s has no rows for %d", table, year)
			}
			if len(rows) != yt.Hours() {
				return nil, fmt.Errorf("table %s has %d rows for %d, expected %d", table, len(rows), year, yt.Hours())
			}
			for h, row := range rows {
				for c, v := range row {
					target(h, c, v)
				}
			}
		}
		ds.Years = append(ds.Years, yt)
	}

	if err := ds.Validate(); err != nil {
		return nil, err
	}

	logger.Infow("weather dataset loaded", "cities", len(cities), "years", ds.YearNumbers())
	return ds, nil
}

// readWeatherTable reads one weather table ordered by time and maps its city
// columns onto the city table. Columns named after a city are matched by
// name; otherwise the i-th city column belongs to the i-th city.
func readWeatherTable(ctx context.Context, src source, table string, cities []weather.City) (yearRows, error) {
	quoted := make([]string, len(datetimeColumns))
	for i, c := range datetimeColumns {
		quoted[i] = `"` + c + `"`
	}
	query := fmt.Sprintf(`SELECT * FROM %s ORDER BY %s`, table, strings.Join(quoted, ", "))

	rows, err := src.rows(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s columns: %w", table, err)
	}

	yearCol := -1
	for i, c := range columns {
		if strings.EqualFold(c, "Year") {
			yearCol = i
			break
		}
	}
	if yearCol < 0 {
		return nil, fmt.Errorf("table %s has no Year column", table)
	}

	cityCols, err := mapCityColumns(table, columns, cities)
	if err != nil {
		return nil, err
	}

	// Only the year and city columns are decoded; anything else may hold text.
	values := make([]sql.NullFloat64, len(columns))
	dest := make([]any, len(columns))
	for i := range dest {
		dest[i] = new(any)
	}
	dest[yearCol] = &values[yearCol]
	for _, col := range cityCols {
		dest[col] = &values[col]
	}

	out := make(yearRows)
	for rows.Next() {
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		if !values[yearCol].Valid {
			return nil, fmt.Errorf("table %s has a row without a year", table)
		}
		year := int(values[yearCol].Float64)

		row := make([]float64, len(cities))
		for c, col := range cityCols {
			if !values[col].Valid {
				return nil, fmt.Errorf("table %s: missing %s reading for %s in %d, hour %d",
					table, columns[col], cities[c].Name, year, len(out[year]))
			}
			row[c] = values[col].Float64
		}
		out[year] = append(out[year], row)
	}

	return out, rows.Err()
}

// mapCityColumns returns, for each city, the index of its column in the table
func mapCityColumns(table string, columns []string, cities []weather.City) ([]int, error) {
	var candidates []int
	byName := make(map[string]int)
	for i, c := range columns {
		if isMetaColumn(c) {
			continue
		}
		candidates = append(candidates, i)
		byName[strings.ToLower(c)] = i
	}

	if len(candidates) < len(cities) {
		return nil, fmt.Errorf("table %s has %d city columns, city table has %d cities", table, len(candidates), len(cities))
	}

	cols := make([]int, len(cities))
	matched := true
	for i, city := range cities {
		col, ok := byName[strings.ToLower(city.Name)]
		if !ok {
			matched = false
			break
		}
		cols[i] = col
	}
	if matched {
		return cols, nil
	}

	return candidates[:len(cities)], nil
}

func isMetaColumn(name string) bool {
	for _, c := range append(datetimeColumns, indexColumns...) {
		if strings.EqualFold(name, c) {
			return true
		}
	}
	return false
}
