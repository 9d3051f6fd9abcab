package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viniciusth/suffixlcp"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"SUFX_STRATEGY", "SUFX_RMQ", "SUFX_CACHE_SIZE", "SUFX_WORKERS",
		"SUFX_FOLD_CASE", "SUFX_NORMALIZE", "SUFX_LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestNewDefaults(t *testing.T) {
	clearEnv(t)

	settings, err := New()
	require.NoError(t, err)
	assert.Equal(t, "sais", settings.Index.Strategy)
	assert.Equal(t, "sparse", settings.Index.RangeMin)
	assert.Equal(t, "info", settings.Log.Level)

	opts, err := settings.Options()
	require.NoError(t, err)
	assert.Equal(t, suffixlcp.Options{}, opts)
}

func TestNewFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("SUFX_STRATEGY", "doubling")
	t.Setenv("SUFX_RMQ", "HYBRID")
	t.Setenv("SUFX_CACHE_SIZE", "128")
	t.Setenv("SUFX_WORKERS", "4")
	t.Setenv("SUFX_FOLD_CASE", "true")
	t.Setenv("SUFX_NORMALIZE", "1")
	t.Setenv("SUFX_LOG_LEVEL", "DEBUG")

	settings, err := New()
	require.NoError(t, err)
	assert.Equal(t, "debug", settings.Log.Level)

	opts, err := settings.Options()
	require.NoError(t, err)
	assert.Equal(t, suffixlcp.Options{
		Strategy:  suffixlcp.Doubling,
		RangeMin:  suffixlcp.HybridRMQ,
		FoldCase:  true,
		Normalize: true,
		CacheSize: 128,
		Workers:   4,
	}, opts)
}

func TestNewInvalidValues(t *testing.T) {
	tests := map[string]string{
		"SUFX_CACHE_SIZE": "lots",
		"SUFX_WORKERS":    "-1",
		"SUFX_FOLD_CASE":  "maybe",
		"SUFX_NORMALIZE":  "2",
		"SUFX_STRATEGY":   "dc3",
		"SUFX_RMQ":        "fenwick",
		"SUFX_LOG_LEVEL":  "loud",
	}
	for key, val := range tests {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, val)
			_, err := New()
			assert.Error(t, err)
		})
	}
}
