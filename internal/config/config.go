package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"memowidget/internal/history"
	"memowidget/internal/logger"
	"memowidget/internal/prefs"
)

const (
	AppName               = "memowidget"
	DefaultConfigFileName = "config.toml"
	DefaultStoreFileName  = "prefs.dat"
	DefaultSizeScale      = 1.0
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config `toml:"logger"`
	Store  StoreConfig   `toml:"store"`
	Editor EditorConfig  `toml:"editor"`
}

type StoreConfig struct {
	Path        string `toml:"path"`
	Compression bool   `toml:"compression"`
	// PasswordEnv names the environment variable holding the store password.
	// Encryption is off when it is empty or the variable is unset.
	PasswordEnv string `toml:"password_env"`
}

type EditorConfig struct {
	HistoryLimit int     `toml:"history_limit"`
	SizeScale    float64 `toml:"size_scale"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Store: StoreConfig{
			Path:        defaultStorePath(),
			Compression: true,
		},
		Editor: EditorConfig{
			HistoryLimit: history.DefaultLimit,
			SizeScale:    DefaultSizeScale,
		},
	}
}

// DefaultPath is the config file used when none is given.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppName, DefaultConfigFileName)
}

func defaultStorePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return AppName + "-" + DefaultStoreFileName
	}
	return filepath.Join(dir, AppName, DefaultStoreFileName)
}

// Load reads the TOML file at path over the defaults. A missing file is not
// an error. Keys the file sets that Config does not know are returned so the
// caller can report them once logging is up.
func Load(path string) (*Config, []string, error) {
	cfg := NewDefaultConfig()
	if path == "" {
		cfg.validate()
		return cfg, nil, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		cfg.validate()
		return cfg, nil, nil
	} else if err != nil {
		return cfg, nil, fmt.Errorf("config: stat %s: %w", path, err)
	}

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return NewDefaultConfig(), nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	var unknown []string
	for _, k := range md.Undecoded() {
		unknown = append(unknown, k.String())
	}
	cfg.validate()
	return cfg, unknown, nil
}

// validate resets invalid values to their defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()
	if strings.TrimSpace(c.Logger.LogLevel) == "" {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
	if strings.TrimSpace(c.Store.Path) == "" {
		c.Store.Path = defaults.Store.Path
	}
	if c.Editor.HistoryLimit <= 0 {
		c.Editor.HistoryLimit = defaults.Editor.HistoryLimit
	}
	if c.Editor.SizeScale <= 0 {
		c.Editor.SizeScale = defaults.Editor.SizeScale
	}
}

// FileOptions resolves the store settings into prefs options.
func (c *Config) FileOptions() prefs.FileOptions {
	opts := prefs.FileOptions{Compression: c.Store.Compression}
	if name := strings.TrimSpace(c.Store.PasswordEnv); name != "" {
		opts.Password = os.Getenv(name)
	}
	return opts
}
