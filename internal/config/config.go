package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const defaultAPIURL = "https://api.openweathermap.org/data/2.5"

// Config holds client configuration loaded from YAML and env.
type Config struct {
	Env string

	WeatherAPIKey     string
	WeatherAPIURL     string
	WeatherAPITimeout time.Duration
	Units             string // "", "standard", "metric" or "imperial"
	Lang              string
}

type fileConfig struct {
	WeatherAPI struct {
		URL     string `yaml:"url"`
		Timeout string `yaml:"timeout"`
		Units   string `yaml:"units"`
		Lang    string `yaml:"lang"`
	} `yaml:"weather_api"`
}

type secretsFile struct {
	WeatherAPIKey string `yaml:"weather_api_key"`
}

// Load reads configuration relative to the working directory. See LoadFrom.
func Load() (*Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("config: get working directory: %w", err)
	}
	return LoadFrom(cwd)
}

// LoadFrom reads dir/config/{ENV_NAME}.yaml (default dev) and dir/config/secrets.yaml.
// The env file may be absent only when ENV_NAME is unset. API key comes from
// WEATHER_API_KEY env or the secrets file; WEATHER_API_URL, WEATHER_UNITS and
// WEATHER_LANG override the file.
func LoadFrom(dir string) (*Config, error) {
	env := strings.TrimSpace(os.Getenv("ENV_NAME"))
	explicitEnv := env != ""
	if env == "" {
		env = "dev"
	}

	var fc fileConfig
	configPath := filepath.Join(dir, "config", env+".yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if explicitEnv {
			return nil, fmt.Errorf("config file not found: %s", configPath)
		}
	} else if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg := &Config{Env: env}

	cfg.WeatherAPIKey = strings.TrimSpace(os.Getenv("WEATHER_API_KEY"))
	if cfg.WeatherAPIKey == "" {
		secretsPath := filepath.Join(dir, "config", "secrets.yaml")
		secretsData, err := os.ReadFile(secretsPath)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read secrets file: %w", err)
			}
		} else {
			var sec secretsFile
			if err := yaml.Unmarshal(secretsData, &sec); err != nil {
				return nil, fmt.Errorf("parse secrets file: %w", err)
			}
			cfg.WeatherAPIKey = strings.TrimSpace(sec.WeatherAPIKey)
		}
	}
	if cfg.WeatherAPIKey == "" {
		return nil, fmt.Errorf("WEATHER_API_KEY required (set env or config/secrets.yaml weather_api_key)")
	}

	cfg.WeatherAPIURL = firstNonEmpty(os.Getenv("WEATHER_API_URL"), fc.WeatherAPI.URL, defaultAPIURL)
	cfg.WeatherAPITimeout = parseDurationOrZero(fc.WeatherAPI.Timeout, 5*time.Second)
	cfg.Units = strings.ToLower(firstNonEmpty(os.Getenv("WEATHER_UNITS"), fc.WeatherAPI.Units))
	cfg.Lang = firstNonEmpty(os.Getenv("WEATHER_LANG"), fc.WeatherAPI.Lang)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// parseDurationOrZero parses a duration string, returning defaultVal on empty string or parse error.
// Returns zero or negative durations as-is so validate can reject them.
func parseDurationOrZero(s string, defaultVal time.Duration) time.Duration {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultVal
	}
	return d
}

// validate performs post-load validation of configuration values.
func validate(cfg *Config) error {
	if cfg.WeatherAPITimeout <= 0 {
		return fmt.Errorf("weather_api.timeout must be positive")
	}
	switch cfg.Units {
	case "", "standard", "metric", "imperial":
		// valid
	default:
		return fmt.Errorf("weather_api.units must be standard, metric or imperial, got %q", cfg.Units)
	}
	return nil
}
