package app

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/chrissnell/h2calc/pkg/config"
)

// writeDataset creates a one-city SQLite dataset covering 2015 and 2016
func writeDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "weather.sqlite")
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE latlong (City TEXT, Latitude REAL, Longitude REAL)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO latlong VALUES ('Denver', 39.74, -104.99)`)
	require.NoError(t, err)

	tx, err := db.Begin()
	require.NoError(t, err)
	for table, value := range map[string]float64{"windspeed": 6, "temperature": 15, "humidity": 40} {
		_, err = tx.Exec(fmt.Sprintf(`CREATE TABLE %s (Year INTEGER, Month INTEGER, Day INTEGER, Hour INTEGER, Denver REAL)`, table))
		require.NoError(t, err)
		for year, hours := range map[int]int{2015: 8760, 2016: 8784} {
			for h := 0; h < hours; h++ {
				_, err = tx.Exec(fmt.Sprintf(`INSERT INTO %s VALUES (?, 1, ?, ?, ?)`, table), year, h/24, h%24, value)
				require.NoError(t, err)
			}
		}
	}
	require.NoError(t, tx.Commit())
	return path
}

func TestNewCalculatorFromConfig(t *testing.T) {
	cfg := config.Default()
	cfg.Dataset.Path = writeDataset(t)

	calc, err := NewCalculator(context.Background(), cfg, zap.NewNop().Sugar())
	require.NoError(t, err)

	assert.Equal(t, []int{2015, 2016}, calc.Years())
	require.Len(t, calc.Cities(), 1)
	assert.Equal(t, "Denver", calc.Cities()[0].Name)

	result, err := calc.ComputeWindSeries(0, NewSession(cfg).Wind())
	require.NoError(t, err)
	assert.Len(t, result.HydrogenMean, 8784)
}

func TestNewCalculatorMissingDataset(t *testing.T) {
	cfg := config.Default()
	cfg.Dataset.Backend = "oracle"

	_, err := NewCalculator(context.Background(), cfg, zap.NewNop().Sugar())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unsupported dataset backend"))
}

func TestNewSessionUsesConfiguredDefaults(t *testing.T) {
	cfg := config.Default()
	cfg.Defaults.Wind.Height = 100
	cfg.Defaults.Solar.Efficiency = 0.18

	session := NewSession(cfg)

	require.NotNil(t, session.Wind())
	assert.Equal(t, 100.0, session.Wind().HeightM)
	assert.Equal(t, 60.0, session.Wind().RadiusM)
	require.NotNil(t, session.Solar())
	assert.Equal(t, 0.18, session.Solar().Efficiency)
}
