package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// EnvProvider overlays H2CALC_* environment variables on another provider.
// A .env file in the working directory is loaded first when present.
type EnvProvider struct {
	base    ConfigProvider
	envFile string
}

// NewEnvProvider wraps base. envFile may be empty to skip dotenv loading.
func NewEnvProvider(base ConfigProvider, envFile string) *EnvProvider {
	return &EnvProvider{base: base, envFile: envFile}
}

// LoadConfig loads the base configuration and applies environment overrides
func (e *EnvProvider) LoadConfig() (*ConfigData, error) {
	if e.envFile != "" {
		if err := godotenv.Load(e.envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("error loading %s: %w", e.envFile, err)
		}
	}

	cfg, err := e.base.LoadConfig()
	if err != nil {
		return nil, err
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *ConfigData) error {
	if v := os.Getenv("H2CALC_DATASET_BACKEND"); v != "" {
		cfg.Dataset.Backend = v
	}
	if v := os.Getenv("H2CALC_DATASET_PATH"); v != "" {
		cfg.Dataset.Path = v
	}
	if v := os.Getenv("H2CALC_DATASET_DSN"); v != "" {
		cfg.Dataset.ConnectionString = v
	}
	if v := os.Getenv("H2CALC_LISTEN_ADDR"); v != "" {
		cfg.REST.ListenAddr = v
	}
	if v := os.Getenv("H2CALC_HTTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid H2CALC_HTTP_PORT: %w", err)
		}
		cfg.REST.HTTPPort = port
	}
	if v := os.Getenv("H2CALC_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("H2CALC_ENFORCE_WIND_ENVELOPE"); v != "" {
		enforce, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid H2CALC_ENFORCE_WIND_ENVELOPE: %w", err)
		}
		cfg.Model.EnforceWindEnvelope = enforce
	}
	return nil
}
