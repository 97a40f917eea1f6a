package config

import (
	"os"
	"path/filepath"
)

// Paths contains standard filesystem paths for bundlekit.
type Paths struct {
	// ConfigFile is the path to the config file (~/.bundlekit/config.yaml).
	ConfigFile string

	// HomeDir is the bundlekit home directory (~/.bundlekit).
	HomeDir string
}

// DefaultPaths returns the default paths for bundlekit.
func DefaultPaths() (*Paths, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	home := filepath.Join(homeDir, ".bundlekit")

	return &Paths{
		ConfigFile: filepath.Join(home, "config.yaml"),
		HomeDir:    home,
	}, nil
}

// GetConfigFile returns the config file path.
// If BUNDLEKIT_CONFIG is set, it takes precedence.
func GetConfigFile() (string, error) {
	if envPath := os.Getenv("BUNDLEKIT_CONFIG"); envPath != "" {
		return envPath, nil
	}

	paths, err := DefaultPaths()
	if err != nil {
		return "", err
	}
	return paths.ConfigFile, nil
}

// EnsureHomeDir creates the bundlekit home directory if it doesn't exist.
func EnsureHomeDir() error {
	paths, err := DefaultPaths()
	if err != nil {
		return err
	}
	return os.MkdirAll(paths.HomeDir, 0o755)
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) == 0 {
		return path, nil
	}

	if path[0] != '~' {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	if len(path) == 1 {
		return homeDir, nil
	}

	// Handle ~/path/to/something
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:]), nil
	}

	// ~username expansion is not supported, return as-is.
	return path, nil
}
