// Package config provides configuration loading and management.
package config

// WatchConfig contains watch-mode settings.
type WatchConfig struct {
	// DebounceMs is the debounce window for coalescing filesystem
	// events, in milliseconds.
	// Env: BUNDLEKIT_WATCH_DEBOUNCEMS, Default: 500
	DebounceMs int `json:"debounceMs,omitempty" yaml:"debounceMs" mapstructure:"debounceMs"`
}

// Config represents the bundlekit CLI configuration.
// Loaded from ~/.bundlekit/config.yaml; environment variables with the
// BUNDLEKIT_ prefix take precedence over file values.
type Config struct {
	// Cache enables the module builder's build cache.
	// Env: BUNDLEKIT_CACHE, Default: true
	Cache *bool `json:"cache,omitempty" yaml:"cache" mapstructure:"cache"`

	// Args are extra arguments forwarded to the module builder.
	Args []string `json:"args,omitempty" yaml:"args,omitempty" mapstructure:"args"`

	// CSSProc is the base URL for per-bundle CSS url(...) rewriting.
	// Empty disables rewriting. Env: BUNDLEKIT_CSSPROC
	CSSProc string `json:"cssproc,omitempty" yaml:"cssproc,omitempty" mapstructure:"cssproc"`

	// Filter is a doublestar glob applied to modified files before they
	// reach the pipeline. Empty means no filtering.
	// Env: BUNDLEKIT_FILTER
	Filter string `json:"filter,omitempty" yaml:"filter,omitempty" mapstructure:"filter"`

	// BuildDirName is the name of the build output directory inside a
	// bundle. Env: BUNDLEKIT_BUILDDIRNAME, Default: "build"
	BuildDirName string `json:"buildDirName,omitempty" yaml:"buildDirName" mapstructure:"buildDirName"`

	// Lint forwards a "--lint" argument to the module builder.
	Lint bool `json:"lint,omitempty" yaml:"lint" mapstructure:"lint"`

	// Coverage forwards a "--coverage" argument to the module builder.
	Coverage bool `json:"coverage,omitempty" yaml:"coverage" mapstructure:"coverage"`

	// Quiet limits log output to warnings and errors.
	Quiet bool `json:"quiet,omitempty" yaml:"quiet" mapstructure:"quiet"`

	// Silent suppresses all log output.
	Silent bool `json:"silent,omitempty" yaml:"silent" mapstructure:"silent"`

	// Watch contains watch-mode settings.
	Watch WatchConfig `json:"watch,omitempty" yaml:"watch" mapstructure:"watch"`
}

// DefaultConfig returns a Config with all default values populated.
// Used by `bundlekit config init` to generate the initial config file.
func DefaultConfig() *Config {
	cache := true
	return &Config{
		Cache:        &cache,
		BuildDirName: "build",
		Watch:        WatchConfig{DebounceMs: 500},
	}
}

// WithDefaults fills unset fields with their defaults.
func (c *Config) WithDefaults() *Config {
	if c.Cache == nil {
		cache := true
		c.Cache = &cache
	}
	if c.BuildDirName == "" {
		c.BuildDirName = "build"
	}
	if c.Watch.DebounceMs <= 0 {
		c.Watch.DebounceMs = 500
	}
	return c
}

// CacheEnabled resolves the cache flag.
func (c *Config) CacheEnabled() bool {
	return c.Cache == nil || *c.Cache
}

// BuilderArgs assembles the full argument list forwarded to the module
// builder, translating the lint and coverage toggles.
func (c *Config) BuilderArgs() []string {
	args := make([]string, len(c.Args))
	copy(args, c.Args)
	if c.Lint {
		args = append(args, "--lint")
	}
	if c.Coverage {
		args = append(args, "--coverage")
	}
	return args
}
