package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Dataset backends
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

// ConfigProvider defines the interface for configuration data sources
type ConfigProvider interface {
	// Load complete configuration
	LoadConfig() (*ConfigData, error)
}

// ConfigData represents the complete configuration structure
type ConfigData struct {
	Dataset  DatasetData  `yaml:"dataset" json:"dataset"`
	Defaults DefaultsData `yaml:"defaults" json:"defaults"`
	Model    ModelData    `yaml:"model" json:"model"`
	REST     RESTData     `yaml:"rest" json:"rest"`
	Log      LogData      `yaml:"log" json:"log"`
}

// DatasetData locates the hourly weather dataset
type DatasetData struct {
	Backend          string `yaml:"backend" json:"backend" validate:"oneof=sqlite postgres"`
	Path             string `yaml:"path,omitempty" json:"path,omitempty" validate:"required_if=Backend sqlite"`
	ConnectionString string `yaml:"connection_string,omitempty" json:"connection_string,omitempty" validate:"required_if=Backend postgres"`
}

// DefaultsData holds the generation parameters applied once at session start
type DefaultsData struct {
	Wind  WindDefaults  `yaml:"wind" json:"wind"`
	Solar SolarDefaults `yaml:"solar" json:"solar"`
}

// WindDefaults is the default turbine geometry
type WindDefaults struct {
	Height float64 `yaml:"height" json:"height" validate:"gt=0,lte=1000"`
	Radius float64 `yaml:"radius" json:"radius" validate:"gt=0,lte=500"`
}

// SolarDefaults is the default panel
type SolarDefaults struct {
	PanelArea  float64 `yaml:"panel_area" json:"panel_area" validate:"gt=0,lte=100000000"`
	Efficiency float64 `yaml:"efficiency" json:"efficiency" validate:"gt=0,lte=1"`
}

// ModelData tunes the power models
type ModelData struct {
	// EnforceWindEnvelope zeroes turbine output outside 3-25 m/s at hub height
	EnforceWindEnvelope bool `yaml:"enforce_wind_envelope" json:"enforce_wind_envelope"`
}

// RESTData configures the HTTP API
type RESTData struct {
	ListenAddr string `yaml:"listen_addr" json:"listen_addr"`
	HTTPPort   int    `yaml:"http_port" json:"http_port" validate:"gte=0,lte=65535"`
}

// LogData configures logging
type LogData struct {
	Debug     bool   `yaml:"debug" json:"debug"`
	File      string `yaml:"file,omitempty" json:"file,omitempty"`
	MaxSizeMB int    `yaml:"max_size_mb,omitempty" json:"max_size_mb,omitempty" validate:"gte=0"`
}

// Default returns the configuration used for any value a source leaves unset
func Default() *ConfigData {
	return &ConfigData{
		Dataset: DatasetData{
			Backend: BackendSQLite,
			Path:    "Datasets/weather.sqlite",
		},
		Defaults: DefaultsData{
			Wind:  WindDefaults{Height: 80, Radius: 60},
			Solar: SolarDefaults{PanelArea: 1, Efficiency: 0.20},
		},
		REST: RESTData{
			ListenAddr: "0.0.0.0",
			HTTPPort:   8080,
		},
		Log: LogData{
			MaxSizeMB: 50,
		},
	}
}

var validate = validator.New()

// Validate checks the configuration for missing or out-of-range values
func (c *ConfigData) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
