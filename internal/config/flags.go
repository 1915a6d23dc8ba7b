package config

import (
	"flag"
	"fmt"
)

// Flags holds values parsed from command-line flags.
type Flags struct {
	ConfigFilePath string
	WidgetID       int
	LogLevel       string
	LogFilePath    string
	StorePath      string

	fs *flag.FlagSet
}

// Define registers the flags on fs.
func (f *Flags) Define(fs *flag.FlagSet) {
	f.fs = fs
	fs.StringVar(&f.ConfigFilePath, "config", "", fmt.Sprintf("Path to TOML configuration file (default <user config dir>/%s/%s)", AppName, DefaultConfigFileName))
	fs.IntVar(&f.WidgetID, "id", 1, "Widget identifier to open")
	fs.StringVar(&f.LogLevel, "loglevel", "", "Log level (debug, info, warn, error) - overrides config file")
	fs.StringVar(&f.LogFilePath, "logfile", "", "Log file path ('-' for stderr) - overrides config file")
	fs.StringVar(&f.StorePath, "store", "", "Preference store file - overrides config file")
}

// ApplyOverrides copies every flag that was set on the command line into cfg.
func (f *Flags) ApplyOverrides(cfg *Config) {
	if f.fs == nil {
		return
	}
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "loglevel":
			if f.LogLevel != "" {
				cfg.Logger.LogLevel = f.LogLevel
			}
		case "logfile":
			cfg.Logger.LogFilePath = f.LogFilePath
		case "store":
			if f.StorePath != "" {
				cfg.Store.Path = f.StorePath
			}
		}
	})
}
