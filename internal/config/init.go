package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configHeader is prepended to generated config files.
const configHeader = `# bundlekit configuration.
# Values here are overridden by BUNDLEKIT_* environment variables and
# command-line flags.
`

// RenderDefault renders the default configuration as YAML, suitable for
// writing as an initial config file.
func RenderDefault() (string, error) {
	encoded, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return "", fmt.Errorf("encoding default config: %w", err)
	}
	return configHeader + string(encoded), nil
}

// WriteDefault writes the default configuration to path. It refuses to
// overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	content, err := RenderDefault()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
