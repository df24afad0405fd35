package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/couchcryptid/precip-contour-etl/internal/domain"
)

// Config holds all batch settings, populated from environment variables.
type Config struct {
	ForecastDir  string `envconfig:"FORECAST_DIR" default:"forecast_files" validate:"required"`
	BoundaryFile string `envconfig:"BOUNDARY_FILE" default:"PSATCMG_CAMARGOS.bln" validate:"required"`
	OutputDir    string `envconfig:"OUTPUT_DIR" default:"." validate:"required"`

	// Proximity weights for forecast file selection.
	WeightIssued float64 `envconfig:"WEIGHT_ISSUED" default:"0.5" validate:"gte=0"`
	WeightTarget float64 `envconfig:"WEIGHT_TARGET" default:"0.5" validate:"gte=0"`

	Workers         int `envconfig:"WORKERS" default:"1" validate:"min=1,max=64"`
	ReaderCacheSize int `envconfig:"READER_CACHE_SIZE" default:"32" validate:"min=1"`

	LogLevel        string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn warning error"`
	LogFormat       string `envconfig:"LOG_FORMAT" default:"json" validate:"oneof=json text"`
	MetricsTextfile string `envconfig:"METRICS_TEXTFILE"`
}

// Weights returns the selector weights as a domain value.
func (c *Config) Weights() domain.Weights {
	return domain.Weights{Issued: c.WeightIssued, Target: c.WeightTarget}
}

// Load reads configuration from a .env file (if present) and the environment,
// applying defaults where unset.
func Load() (*Config, error) {
	// A missing .env is normal; real environment variables take precedence.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Outputs use the forecast data layout and would be picked up by the next run.
	if sameDir(cfg.ForecastDir, cfg.OutputDir) {
		return nil, errors.New("invalid configuration: OUTPUT_DIR must differ from FORECAST_DIR")
	}

	return &cfg, nil
}

func sameDir(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
