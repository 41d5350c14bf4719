// Package database loads the hourly weather dataset from SQLite or PostgreSQL.
//
// Both backends use the schema of weather.sqlite:
//
//	latlong(City, Latitude, Longitude)
//	windspeed|temperature|humidity(Year, Month, Day, Hour, <one column per city>)
package database

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/chrissnell/h2calc/internal/weather"
	"github.com/chrissnell/h2calc/pkg/config"
)

// Weather tables and the reading each one carries
const (
	TableCities      = "latlong"
	TableWindSpeed   = "windspeed"
	TableTemperature = "temperature"
	TableHumidity    = "humidity"
)

// Provider loads a complete weather dataset
type Provider interface {
	LoadDataset(ctx context.Context) (*weather.Dataset, error)
	Close() error
}

// source is the backend-specific access used by the shared table reader
type source interface {
	cities(ctx context.Context) ([]weather.City, error)
	rows(ctx context.Context, query string) (*sql.Rows, error)
}

// NewProvider opens the dataset backend named in the configuration
func NewProvider(cfg config.DatasetData, logger *zap.SugaredLogger) (Provider, error) {
	switch cfg.Backend {
	case config.BackendSQLite, "":
		return NewSQLiteProvider(cfg.Path, logger)
	case config.BackendPostgres:
		c := NewClient(cfg.ConnectionString, logger)
		if err := c.Connect(); err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unsupported dataset backend: %s. Use 'sqlite' or 'postgres'", cfg.Backend)
	}
}
