// This file defines the configuration structure for the application.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	// use Viper for loading the config.yml file.
	"github.com/spf13/viper"
)

// Config holds all configuration settings for the application.
// It maps directly to the structure of config.yml.
type Config struct {
	DryRun  bool          `mapstructure:"dry_run"`
	Library LibraryConfig `mapstructure:"library"`
	Lookup  LookupConfig  `mapstructure:"lookup"`
	Catalog struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"catalog"`
	Filters struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"filters"`
	Journal struct {
		Path string `mapstructure:"path"`
	} `mapstructure:"journal"`
	Log    LogConfig    `mapstructure:"log"`
	Watch  WatchConfig  `mapstructure:"watch"`
	Series SeriesConfig `mapstructure:"series"`
}

// LibraryConfig names the inbox scanned for new files and the root the
// publisher/series tree is built under.
type LibraryConfig struct {
	Input  string `mapstructure:"input"`
	Output string `mapstructure:"output"`
}

type LookupConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	BaseURL        string `mapstructure:"base_url"`
	HintTerm       string `mapstructure:"hint_term"`
	MaxResults     int    `mapstructure:"max_results"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	DelayMS        int    `mapstructure:"delay_ms"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type WatchConfig struct {
	ScanInterval int `mapstructure:"scan_interval"` // minutes, 0 disables the periodic sweep
	DebounceMS   int `mapstructure:"debounce_ms"`
}

type SeriesConfig struct {
	Threshold            float64 `mapstructure:"threshold"`
	ConsolidateThreshold float64 `mapstructure:"consolidate_threshold"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("dry_run", false)
	v.SetDefault("library.input", "./inbox")
	v.SetDefault("library.output", "./library")
	v.SetDefault("lookup.enabled", true)
	v.SetDefault("lookup.base_url", "https://www.googleapis.com/books/v1")
	v.SetDefault("lookup.hint_term", "comic")
	v.SetDefault("lookup.max_results", 5)
	v.SetDefault("lookup.timeout_seconds", 15)
	v.SetDefault("lookup.delay_ms", 1000)
	v.SetDefault("catalog.path", "")
	v.SetDefault("filters.path", "./filters.json")
	v.SetDefault("journal.path", "./comic-sorter.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("watch.scan_interval", 0)
	v.SetDefault("watch.debounce_ms", 2000)
	v.SetDefault("series.threshold", 0.5)
	v.SetDefault("series.consolidate_threshold", 0.65)
}

// Load reads configuration from path, or from a file named "config.yml" in
// the current directory when path is empty, and unmarshals it into a Config
// struct. A missing config.yml is not an error; a missing explicit path is.
// Environment variables prefixed with COMICSORT_ override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config") // name of config file (without extension)
		v.SetConfigType("yml")
		v.AddConfigPath(".")
	}

	// e.g., COMICSORT_LIBRARY_OUTPUT will override the `library.output` key.
	v.SetEnvPrefix("COMICSORT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

// Default returns the built-in configuration without reading any file or
// environment variable.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		panic(err)
	}
	return &config
}

// Validate rejects settings that would make a run misbehave. It runs before
// any file is touched.
func (c *Config) Validate() error {
	var errs []error
	checkThreshold := func(key string, v float64) {
		if v <= 0 || v > 1 {
			errs = append(errs, fmt.Errorf("%s must be in (0, 1], got %v", key, v))
		}
	}
	checkNonNegative := func(key string, v int) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s cannot be negative, got %d", key, v))
		}
	}

	checkThreshold("series.threshold", c.Series.Threshold)
	checkThreshold("series.consolidate_threshold", c.Series.ConsolidateThreshold)
	checkNonNegative("lookup.max_results", c.Lookup.MaxResults)
	checkNonNegative("lookup.timeout_seconds", c.Lookup.TimeoutSeconds)
	checkNonNegative("lookup.delay_ms", c.Lookup.DelayMS)
	checkNonNegative("watch.scan_interval", c.Watch.ScanInterval)
	checkNonNegative("watch.debounce_ms", c.Watch.DebounceMS)

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level must be debug, info, warn or error, got %q", c.Log.Level))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// LookupTimeout is the per-request timeout of the lookup client.
func (c *Config) LookupTimeout() time.Duration {
	return time.Duration(c.Lookup.TimeoutSeconds) * time.Second
}

// LookupDelay is the minimum interval between lookup requests.
func (c *Config) LookupDelay() time.Duration {
	return time.Duration(c.Lookup.DelayMS) * time.Millisecond
}

// DebounceDelay is how long the watcher waits for a file to settle.
func (c *Config) DebounceDelay() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}
