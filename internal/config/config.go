// Package config loads and validates the application configuration.
package config

import (
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/warrenlab/warren/internal/analysis"
	"github.com/warrenlab/warren/internal/indicator"
	"github.com/warrenlab/warren/pkg/errors"
	"github.com/warrenlab/warren/pkg/marketdata"
)

// polygonAPIKeyEnv overrides an empty provider api_key.
const polygonAPIKeyEnv = "POLYGON_API_KEY"

// Duration wraps time.Duration so YAML values like "1h30m" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}

	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid duration %q", raw)
	}

	*d = Duration(parsed)

	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// CacheConfig controls the per-day report cache.
type CacheConfig struct {
	// TTL is how long a cached report stays fresh. Zero or negative means
	// reports never expire within their trading day.
	TTL Duration `yaml:"ttl" json:"ttl"`
}

// ServerConfig controls the HTTP analysis server.
type ServerConfig struct {
	Address string `yaml:"address" json:"address" validate:"required"`
}

// Config is the top-level application configuration.
type Config struct {
	Provider   marketdata.Config `yaml:"provider" json:"provider"`
	Indicators indicator.Config  `yaml:"indicators" json:"indicators"`
	Weights    analysis.Weights  `yaml:"weights" json:"weights"`
	Cache      CacheConfig       `yaml:"cache" json:"cache"`
	Server     ServerConfig      `yaml:"server" json:"server"`
}

// DefaultConfig returns the configuration used when no file is provided.
func DefaultConfig() Config {
	return Config{
		Provider: marketdata.Config{
			Type:     marketdata.ProviderDuckDB,
			DataPath: "data",
		},
		Indicators: indicator.DefaultConfig(),
		Weights:    analysis.DefaultWeights(),
		Cache: CacheConfig{
			TTL: Duration(24 * time.Hour),
		},
		Server: ServerConfig{
			Address: ":8080",
		},
	}
}

// Parse unmarshals YAML content over the defaults and validates the result.
func Parse(content []byte) (Config, error) {
	config := DefaultConfig()

	if err := yaml.Unmarshal(content, &config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to parse config", err)
	}

	if config.Provider.APIKey == "" {
		config.Provider.APIKey = os.Getenv(polygonAPIKeyEnv)
	}

	if err := validator.New().Struct(config); err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid config", err)
	}

	if err := config.Weights.Validate(); err != nil {
		return Config{}, err
	}

	if err := config.Indicators.Validate(); err != nil {
		return Config{}, err
	}

	return config, nil
}

// Load reads and parses the config file at path. An empty path yields the
// defaults, with the Polygon API key still taken from the environment.
func Load(path string) (Config, error) {
	if path == "" {
		return Parse(nil)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "failed to read config file %s", path)
	}

	return Parse(content)
}
