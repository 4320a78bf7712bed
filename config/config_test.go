// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultValues(t *testing.T) {
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "norm", cfg.Reduce.Mode)
	assert.False(t, cfg.Reduce.UnfoldRefs)
	assert.Equal(t, 0, cfg.Reduce.MaxSteps)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
reduce:
  mode: whnf
  max_steps: 500
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "whnf", cfg.Reduce.Mode)
	assert.Equal(t, 500, cfg.Reduce.MaxSteps)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateRejectsUnknownMode(t *testing.T) {
	cfg := &Config{Reduce: ReduceConfig{Mode: "bogus"}}
	assert.Error(t, cfg.Validate())
}

func TestValidateRequiresDefsFileForUnfoldRefs(t *testing.T) {
	cfg := &Config{Reduce: ReduceConfig{Mode: "norm", UnfoldRefs: true}}
	assert.Error(t, cfg.Validate())

	cfg.Reduce.DefsFile = "defs.txt"
	assert.NoError(t, cfg.Validate())
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	t.Setenv("LAMBDAG_REDUCE_MODE", "whnf")
	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)
	assert.Equal(t, "whnf", cfg.Reduce.Mode)
}
