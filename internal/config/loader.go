package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Environment variable prefix for bundlekit configuration.
const envPrefix = "BUNDLEKIT"

// Loader handles loading and merging configuration from multiple sources.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	v := viper.New()

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Bind specific environment variables
	_ = v.BindEnv("cache", "BUNDLEKIT_CACHE")
	_ = v.BindEnv("cssproc", "BUNDLEKIT_CSSPROC")
	_ = v.BindEnv("filter", "BUNDLEKIT_FILTER")
	_ = v.BindEnv("buildDirName", "BUNDLEKIT_BUILDDIRNAME")

	return &Loader{v: v}
}

// Load loads configuration from the given file path. If configFile is
// empty, the default config file path is used. Environment variables
// take precedence over file values; a missing file is not an error.
func (l *Loader) Load(configFile string) (*Config, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return nil, fmt.Errorf("getting config file path: %w", err)
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return nil, fmt.Errorf("expanding config path: %w", err)
	}

	l.v.SetConfigFile(expandedPath)
	l.v.SetConfigType("yaml")

	if err := l.v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
		// Config file not found is OK, defaults + env vars apply.
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// LoadWithDefaults loads configuration and applies defaults.
func (l *Loader) LoadWithDefaults(configFile string) (*Config, error) {
	cfg, err := l.Load(configFile)
	if err != nil {
		return nil, err
	}
	return cfg.WithDefaults(), nil
}

// ConfigFileExists checks if the config file exists.
func ConfigFileExists(configFile string) (bool, error) {
	if configFile == "" {
		var err error
		configFile, err = GetConfigFile()
		if err != nil {
			return false, err
		}
	}

	expandedPath, err := ExpandPath(configFile)
	if err != nil {
		return false, err
	}

	if _, err := os.Stat(expandedPath); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
