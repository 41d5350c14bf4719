package database

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/chrissnell/h2calc/internal/weather"
)

// SQLiteProvider reads the dataset from a weather.sqlite file
type SQLiteProvider struct {
	db     *sql.DB
	dbPath string
	logger *zap.SugaredLogger
}

// NewSQLiteProvider opens the SQLite dataset at dbPath
func NewSQLiteProvider(dbPath string, logger *zap.SugaredLogger) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	return &SQLiteProvider{
		db:     db,
		dbPath: dbPath,
		logger: logger,
	}, nil
}

// LoadDataset reads the city table and all three weather tables
func (s *SQLiteProvider) LoadDataset(ctx context.Context) (*weather.Dataset, error) {
	s.logger.Infof("loading weather dataset from %s", s.dbPath)
	return readDataset(ctx, s, s.logger)
}

// Close closes the database
func (s *SQLiteProvider) Close() error {
	return s.db.Close()
}

func (s *SQLiteProvider) cities(ctx context.Context) ([]weather.City, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT "City", "Latitude", "Longitude" FROM `+TableCities+` ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cities: %w", err)
	}
	defer rows.Close()

	var cities []weather.City
	for rows.Next() {
		var c weather.City
		if err := rows.Scan(&c.Name, &c.Latitude, &c.Longitude); err != nil {
			return nil, fmt.Errorf("failed to scan city row: %w", err)
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}

func (s *SQLiteProvider) rows(ctx context.Context, query string) (*sql.Rows, error) {
	return s.db.QueryContext(ctx, query)
}
