// Package config loads nhlfeat settings from defaults, an optional YAML file
// and NHLFEAT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment override, e.g. NHLFEAT_WORKERS.
const EnvPrefix = "NHLFEAT_"

// EnvConfigFile names a YAML file to load when no path is passed to Load.
const EnvConfigFile = EnvPrefix + "CONFIG"

// ErrInvalidConfig is wrapped by validation failures.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full set of tunables. Keys are flat; the env var for a key
// is its upper-cased name with the NHLFEAT_ prefix.
type Config struct {
	// InputDir holds one play-by-play JSON file per game.
	InputDir string `koanf:"input_dir"`
	// OutputCSV is where build writes the feature table.
	OutputCSV string `koanf:"output_csv"`
	DBPath    string `koanf:"db_path" validate:"required"`

	// Workers bounds concurrent games. 1 processes sequentially.
	Workers int `koanf:"workers" validate:"min=1,max=256"`

	LegacyScoreState bool `koanf:"legacy_score_state"`
	SkaterStrength   bool `koanf:"skater_strength"`

	// MetricsFile, when set, receives a Prometheus textfile after each build.
	MetricsFile string `koanf:"metrics_file"`

	LogLevel  string `koanf:"log_level" validate:"oneof=trace debug info warn warning error"`
	LogFormat string `koanf:"log_format" validate:"oneof=console json"`

	// PostgresDSN enables the Postgres sink.
	PostgresDSN string `koanf:"postgres_dsn"`

	// S3Bucket enables the CSV upload.
	S3Bucket         string `koanf:"s3_bucket"`
	S3Prefix         string `koanf:"s3_prefix"`
	S3Region         string `koanf:"s3_region" validate:"required_with=S3Bucket"`
	S3Endpoint       string `koanf:"s3_endpoint" validate:"omitempty,url"`
	S3AccessKey      string `koanf:"s3_access_key"`
	S3SecretKey      string `koanf:"s3_secret_key" validate:"required_with=S3AccessKey"`
	S3ForcePathStyle bool   `koanf:"s3_force_path_style"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		InputDir:  "data/raw",
		OutputCSV: "data/features.csv",
		DBPath:    filepath.Join(userHome(), ".nhlfeat", "features.db"),
		Workers:   1,
		LogLevel:  "info",
		LogFormat: "console",
		S3Region:  "us-east-1",
	}
}

// Load layers, lowest precedence first: defaults, the YAML file at path (or
// at $NHLFEAT_CONFIG when path is empty), then NHLFEAT_* env vars.
func Load(path string) (*Config, error) {
	base := New()
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file %s: %w", path, err)
		}
	}

	// NHLFEAT_S3_BUCKET -> s3_bucket. Underscores are kept to match the tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("load config env: %w", err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

func userHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
