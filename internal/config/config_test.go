package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(orig) })
}

func TestLoad_DefaultsAppliedWithNoConfigFileOrEnv(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 10_000_000, cfg.Parquet.MaxRows)
	assert.Equal(t, 50_000, cfg.Parquet.SmallRowCap)
	assert.Equal(t, 100_000, cfg.Parquet.MediumRowCap)
	assert.Equal(t, int64(500*1024*1024), cfg.Parquet.WorkerMemoryThresholdBytes)
	assert.Equal(t, "15s", cfg.Timeouts.EngineBootstrap)
	assert.Equal(t, "10s", cfg.Timeouts.DynamicLibraries)
	assert.Equal(t, []string{",", ";"}, cfg.CSV.DelimiterCandidates)
	assert.True(t, cfg.Cache.Enabled)
}

func TestLoad_EnvironmentOverridesDefault(t *testing.T) {
	chdirTemp(t)
	t.Setenv("IXDATA_CACHE_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Cache.Enabled)
}
