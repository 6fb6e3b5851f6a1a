package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

// Config represents the application configuration
type Config struct {
	DefaultSheet string `toml:"default_sheet" env:"BINGOMANCER_DEFAULT_SHEET"`
	Title        string `toml:"title" env:"BINGOMANCER_TITLE"`
	Seed         int64  `toml:"seed" env:"BINGOMANCER_SEED"` // 0 draws a fresh seed per run
	BatchSize    int    `toml:"batch_size" env:"BINGOMANCER_BATCH_SIZE"`
	Workers      int    `toml:"workers" env:"BINGOMANCER_WORKERS"`
	Attempts     int    `toml:"attempts" env:"BINGOMANCER_ATTEMPTS"`
	Passes       int    `toml:"passes" env:"BINGOMANCER_PASSES"`
	Retries      int    `toml:"retries" env:"BINGOMANCER_RETRIES"`
}

// Default returns the configuration written on first use
func Default() *Config {
	return &Config{
		DefaultSheet: "",
		Title:        "Bingo",
		Seed:         0,
		BatchSize:    1000,
		Workers:      1,
		Attempts:     1000,
		Passes:       100,
		Retries:      10000,
	}
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetSheetLibraryPath returns the path to the sheet library
func GetSheetLibraryPath() string {
	return filepath.Join(GetXDGDataHome(), "bingomancer", "sheets")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "bingomancer", "config.toml")
}

// LoadConfig loads the config file, creating it with defaults if missing,
// and applies environment overrides on top.
func LoadConfig() (*Config, error) {
	config, err := loadFile()
	if err != nil {
		return nil, err
	}

	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("error parsing environment: %w", err)
	}

	return config, nil
}

func loadFile() (*Config, error) {
	configPath := GetConfigFilePath()

	// Create default config if it doesn't exist
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return createDefaultConfig()
	}

	// Missing keys keep their defaults
	config := Default()
	if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	return config, nil
}

// createDefaultConfig creates a default config file
func createDefaultConfig() (*Config, error) {
	config := Default()
	if err := writeConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func writeConfig(config *Config) error {
	configPath := GetConfigFilePath()

	// Ensure the config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}

	return nil
}

// GetSheetPath resolves a sheet name to a file, either in the sheet library
// or as a path
func GetSheetPath(sheetName string) (string, error) {
	// First, try to find the sheet in the sheet library
	libraryPath := filepath.Join(GetSheetLibraryPath(), sheetName+".toml")
	if _, err := os.Stat(libraryPath); err == nil {
		return libraryPath, nil
	}

	// If not found in the library, treat as a path
	if info, err := os.Stat(sheetName); err == nil && !info.IsDir() {
		return sheetName, nil
	}

	return "", fmt.Errorf("sheet not found: %s", sheetName)
}

// GetDefaultSheet returns the default sheet name from config
func GetDefaultSheet() (string, error) {
	config, err := LoadConfig()
	if err != nil {
		return "", err
	}

	return config.DefaultSheet, nil
}

// SetDefaultSheet sets the default sheet in the config file. Environment
// overrides are not written back.
func SetDefaultSheet(sheetName string) error {
	config, err := loadFile()
	if err != nil {
		return err
	}

	config.DefaultSheet = sheetName

	return writeConfig(config)
}
