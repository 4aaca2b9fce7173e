package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-shaderlab/engine/config"
	"github.com/Carmen-Shannon/oxy-shaderlab/samples"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := baseConfig()
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestBaseConfig_ReadsWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shaderlab.yaml"), []byte("sample: coloredrect\nrender:\n  backend: wgpu\n"), 0o644))
	t.Chdir(dir)

	cfg, err := baseConfig()
	require.NoError(t, err)
	assert.Equal(t, "coloredrect", cfg.Sample)
	assert.Equal(t, "wgpu", cfg.Render.Backend)
	assert.Equal(t, 1280, cfg.Window.Width)
}

func TestBaseConfig_RejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "shaderlab.toml"), []byte("smaple = \"pfl\"\n"), 0o644))
	t.Chdir(dir)

	_, err := baseConfig()
	assert.Error(t, err)
}

func TestRun_InvalidLogLevel(t *testing.T) {
	cfg := config.Default()
	cfg.LogLevel = "loud"

	err := run(&cfg)
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestRun_UnknownSample(t *testing.T) {
	cfg := config.Default()
	cfg.Sample = "teapot"

	err := run(&cfg)
	assert.ErrorIs(t, err, samples.ErrUnknownSample)
}

func TestList(t *testing.T) {
	cfg := config.Default()
	assert.NoError(t, list(&cfg))
}
