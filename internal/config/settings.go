// Package config provides sufx settings loaded from environment variables.
//
// Settings are created via New() which handles:
// - Environment variable parsing with validation
// - Default value application
// - Conversion into index build options
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/viniciusth/suffixlcp"
)

// Settings holds all CLI configuration.
type Settings struct {
	Index IndexConfig
	Log   LogConfig
}

// IndexConfig holds index build configuration.
type IndexConfig struct {
	Strategy  string
	RangeMin  string
	CacheSize int
	Workers   int
	FoldCase  bool
	Normalize bool
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level string
}

var logLevels = []string{"debug", "info", "warn", "error"}

// New creates settings from environment variables, applying defaults for unset ones.
// Returns an error if a variable holds an invalid value.
func New() (Settings, error) {
	cacheSize, err := getEnvInt("SUFX_CACHE_SIZE", 0)
	if err != nil {
		return Settings{}, err
	}

	workers, err := getEnvInt("SUFX_WORKERS", 0)
	if err != nil {
		return Settings{}, err
	}

	foldCase, err := getEnvBool("SUFX_FOLD_CASE", false)
	if err != nil {
		return Settings{}, err
	}

	normalize, err := getEnvBool("SUFX_NORMALIZE", false)
	if err != nil {
		return Settings{}, err
	}

	settings := Settings{
		Index: IndexConfig{
			Strategy:  getEnvString("SUFX_STRATEGY", suffixlcp.SAIS.String()),
			RangeMin:  getEnvString("SUFX_RMQ", suffixlcp.SparseTableRMQ.String()),
			CacheSize: cacheSize,
			Workers:   workers,
			FoldCase:  foldCase,
			Normalize: normalize,
		},
		Log: LogConfig{
			Level: strings.ToLower(getEnvString("SUFX_LOG_LEVEL", "info")),
		},
	}

	if err := settings.validate(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// Options converts the index settings into build options.
func (s Settings) Options() (suffixlcp.Options, error) {
	strategy, err := suffixlcp.ParseStrategy(s.Index.Strategy)
	if err != nil {
		return suffixlcp.Options{}, err
	}

	rangeMin, err := suffixlcp.ParseRMQKind(s.Index.RangeMin)
	if err != nil {
		return suffixlcp.Options{}, err
	}

	opts := suffixlcp.Options{
		Strategy:  strategy,
		RangeMin:  rangeMin,
		FoldCase:  s.Index.FoldCase,
		Normalize: s.Index.Normalize,
		CacheSize: s.Index.CacheSize,
		Workers:   s.Index.Workers,
	}
	return opts, opts.Validate()
}

func (s Settings) validate() error {
	if _, err := s.Options(); err != nil {
		return err
	}
	for _, level := range logLevels {
		if s.Log.Level == level {
			return nil
		}
	}
	return errors.Errorf("invalid log level: %q", s.Log.Level)
}

// Environment variable helpers with proper error handling

func getEnvString(key string, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid value for %s: %q", key, val)
	}
	return i, nil
}

func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, errors.Wrapf(err, "invalid value for %s: %q", key, val)
	}
	return b, nil
}
