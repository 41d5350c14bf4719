package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/chrissnell/h2calc/internal/log"
	"github.com/chrissnell/h2calc/internal/weather"
)

// cityRow maps the latlong table
type cityRow struct {
	City      string  `gorm:"column:City"`
	Latitude  float64 `gorm:"column:Latitude"`
	Longitude float64 `gorm:"column:Longitude"`
}

// TableName tells gorm which table holds the cities
func (cityRow) TableName() string {
	return TableCities
}

// Client holds the connection to a PostgreSQL copy of the dataset
type Client struct {
	connectionString string
	DB               *gorm.DB // Exported so it can be accessed from other packages
	logger           *zap.SugaredLogger
}

// NewClient creates a new database client
func NewClient(connectionString string, logger *zap.SugaredLogger) *Client {
	return &Client{
		connectionString: connectionString,
		logger:           logger,
	}
}

// Connect connects to the PostgreSQL database
func (c *Client) Connect() error {
	var err error

	// Create a logger for gorm
	dbLogger := logger.New(
		zap.NewStdLog(log.GetZapLogger()),
		logger.Config{
			SlowThreshold:             5 * time.Second, // Full-table reads are expected to be slow
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: false,
			Colorful:                  false,
		},
	)

	c.logger.Info("connecting to PostgreSQL...")
	c.DB, err = gorm.Open(postgres.Open(c.connectionString), &gorm.Config{Logger: dbLogger})
	if err != nil {
		c.logger.Warnf("unable to create a PostgreSQL connection: %v", err)
		return err
	}
	c.logger.Info("PostgreSQL connection successful")

	return nil
}

// LoadDataset reads the city table and all three weather tables
func (c *Client) LoadDataset(ctx context.Context) (*weather.Dataset, error) {
	if c.DB == nil {
		return nil, fmt.Errorf("PostgreSQL client is not connected")
	}
	return readDataset(ctx, c, c.logger)
}

// Close closes the underlying connection pool
func (c *Client) Close() error {
	if c.DB == nil {
		return nil
	}
	sqlDB, err := c.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (c *Client) cities(ctx context.Context) ([]weather.City, error) {
	var rows []cityRow
	if err := c.DB.WithContext(ctx).Order("ctid").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query cities: %w", err)
	}

	cities := make([]weather.City, len(rows))
	for i, r := range rows {
		cities[i] = weather.City{Name: r.City, Latitude: r.Latitude, Longitude: r.Longitude}
	}
	return cities, nil
}

func (c *Client) rows(ctx context.Context, query string) (*sql.Rows, error) {
	return c.DB.WithContext(ctx).Raw(query).Rows()
}
