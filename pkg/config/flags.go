// Library settings live in command line flags owned by the packages they configure. A program embedding the
// library may also keep them in a single config file; InitFlags loads that file on top of the parsed flags.

package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
)

var configFilePath = flag.String("config_file", "config.txtpb", "Path to the configuration file.")

// LoadConfigFile reads the txtpb config at `path` and sets the flags it mentions.
func LoadConfigFile(path string) error {
	configBytes, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	conf, err := parseConfig(configBytes)
	if err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := setConfigFlags(conf); err != nil {
		return fmt.Errorf("failed to set flags from config file: %w", err)
	}
	return nil
}

// InitFlags initializes the flags from the config file specified by the -config_file flag.
// It should be called after defining all flags and before using them. A missing or broken config file is logged
// and the flag values are kept.
func InitFlags() {
	flag.Parse()

	if *configFilePath == "" {
		slog.Info("Config file not specified. Skipping config initialization.")
		return
	}

	err := LoadConfigFile(*configFilePath)
	if errors.Is(err, os.ErrNotExist) {
		slog.Warn("Config file does not exist.", "path", *configFilePath, "error", err)
		return
	}
	if err != nil { // If the config file cannot be applied, we skip loading and use default flag values.
		slog.Error("Failed to load config file.", "path", *configFilePath, "error", err)
		return
	}
	slog.Debug("Loaded config file.", "path", *configFilePath)
}
