package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	return dir
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	dir := isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultTickInterval, cfg.TickInterval)
	assert.Equal(t, 8, cfg.StackCapacity)
	assert.Equal(t, 5, cfg.CircularCapacity)
	assert.Equal(t, 2, cfg.DepthLimit)
	assert.Equal(t, filepath.Join(dir, "config", "stepviz", "presets"), cfg.PresetsDir)
	assert.Equal(t, filepath.Join(dir, "data", "stepviz"), cfg.DataDir)
	assert.False(t, cfg.Debug)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "stepviz.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tick_interval: 250ms\nstack_capacity: 4\ndepth_limit: 3\n"), 0644))
	t.Setenv("STEPVIZ_DEPTH_LIMIT", "1")
	t.Setenv("STEPVIZ_DEBUG", "true")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.TickInterval)
	assert.Equal(t, 4, cfg.StackCapacity)
	assert.Equal(t, 1, cfg.DepthLimit)
	assert.True(t, cfg.Debug)
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_RejectsBadRanges(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "fast tick", content: "tick_interval: 1ms\n", errMsg: "tick_interval"},
		{name: "huge stack", content: "stack_capacity: 64\n", errMsg: "stack_capacity"},
		{name: "huge ring", content: "circular_capacity: 13\n", errMsg: "circular_capacity"},
		{name: "negative limit", content: "depth_limit: -1\n", errMsg: "depth_limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolate(t)
			path := filepath.Join(dir, "c.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "presets"), expandHome("~/presets"))
	assert.Equal(t, "/abs", expandHome("/abs"))
}

func TestLoadFlags_OverrideEnv(t *testing.T) {
	isolate(t)
	t.Setenv("STEPVIZ_DEPTH_LIMIT", "1")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("depth-limit", 0, "")
	flags.Duration("tick", 0, "")
	flags.Bool("debug", false, "")
	require.NoError(t, flags.Parse([]string{"--depth-limit=4", "--tick=300ms"}))

	cfg, err := LoadFlags("", flags)
	require.NoError(t, err)

	assert.Equal(t, 4, cfg.DepthLimit)
	assert.Equal(t, 300*time.Millisecond, cfg.TickInterval)
	assert.False(t, cfg.Debug, "unset flags keep the lower layers")
}
