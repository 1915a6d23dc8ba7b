package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memowidget/internal/history"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestMissingFileGivesDefaults(t *testing.T) {
	cfg, unknown, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Empty(t, unknown)
	assert.Equal(t, "info", cfg.Logger.LogLevel)
	assert.Equal(t, history.DefaultLimit, cfg.Editor.HistoryLimit)
	assert.Equal(t, DefaultSizeScale, cfg.Editor.SizeScale)
	assert.True(t, cfg.Store.Compression)
	assert.NotEmpty(t, cfg.Store.Path)
}

func TestLoadOverridesAndValidates(t *testing.T) {
	path := writeConfig(t, `
[logger]
level = "debug"
file = "/tmp/memo.log"

[store]
path = "/tmp/memo.dat"
compression = false
password_env = "MEMO_TEST_PASSWORD"

[editor]
history_limit = -3
size_scale = 2.5
colour = "blue"
`)
	t.Setenv("MEMO_TEST_PASSWORD", "s3cret")

	cfg, unknown, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"editor.colour"}, unknown)
	assert.Equal(t, "debug", cfg.Logger.LogLevel)
	assert.Equal(t, "/tmp/memo.log", cfg.Logger.LogFilePath)
	assert.Equal(t, "/tmp/memo.dat", cfg.Store.Path)
	assert.Equal(t, history.DefaultLimit, cfg.Editor.HistoryLimit, "invalid limit is reset")
	assert.Equal(t, 2.5, cfg.Editor.SizeScale)

	opts := cfg.FileOptions()
	assert.False(t, opts.Compression)
	assert.Equal(t, "s3cret", opts.Password)
}

func TestLoadRejectsBrokenToml(t *testing.T) {
	_, _, err := Load(writeConfig(t, "[logger\nlevel ="))
	assert.Error(t, err)
}

func TestFlagOverrides(t *testing.T) {
	fs := flag.NewFlagSet("memowidget", flag.ContinueOnError)
	var f Flags
	f.Define(fs)
	require.NoError(t, fs.Parse([]string{"-id", "9", "-loglevel", "warn", "-store", "/tmp/x.dat", "show"}))

	cfg := NewDefaultConfig()
	f.ApplyOverrides(cfg)
	assert.Equal(t, 9, f.WidgetID)
	assert.Equal(t, "warn", cfg.Logger.LogLevel)
	assert.Equal(t, "/tmp/x.dat", cfg.Store.Path)
	assert.Equal(t, "", cfg.Logger.LogFilePath, "unset flags leave config alone")
	assert.Equal(t, []string{"show"}, fs.Args())
}
