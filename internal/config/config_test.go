package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithDefaults(t *testing.T) {
	c := (&Config{}).WithDefaults()

	assert.True(t, c.CacheEnabled())
	assert.Equal(t, "build", c.BuildDirName)
	assert.Equal(t, 500, c.Watch.DebounceMs)
}

func TestWithDefaults_KeepsExplicitValues(t *testing.T) {
	cache := false
	c := (&Config{
		Cache:        &cache,
		BuildDirName: "out",
		Watch:        WatchConfig{DebounceMs: 100},
	}).WithDefaults()

	assert.False(t, c.CacheEnabled())
	assert.Equal(t, "out", c.BuildDirName)
	assert.Equal(t, 100, c.Watch.DebounceMs)
}

func TestBuilderArgs(t *testing.T) {
	c := &Config{Args: []string{"--strict"}, Lint: true, Coverage: true}
	assert.Equal(t, []string{"--strict", "--lint", "--coverage"}, c.BuilderArgs())

	c = &Config{}
	assert.Empty(t, c.BuilderArgs())
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, DefaultConfig().Validate())
}

func TestValidate_InvalidFilterPattern(t *testing.T) {
	c := DefaultConfig()
	c.Filter = "[unclosed"

	err := c.Validate()
	require.Error(t, err)

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	require.Len(t, errs, 1)
	assert.Equal(t, "filter", errs[0].Field)
}

func TestValidate_BuildDirNameMustBePlain(t *testing.T) {
	c := DefaultConfig()
	c.BuildDirName = "out/build"
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "buildDirName")
}

func TestValidate_NegativeDebounce(t *testing.T) {
	c := DefaultConfig()
	c.Watch.DebounceMs = -1
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "watch.debounceMs")
}

func TestValidate_QuietAndSilentExclusive(t *testing.T) {
	c := DefaultConfig()
	c.Quiet = true
	c.Silent = true
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	c := &Config{
		Filter:       "[unclosed",
		BuildDirName: "a/b",
		Watch:        WatchConfig{DebounceMs: -5},
	}
	err := c.Validate()
	require.Error(t, err)

	var errs ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Len(t, errs, 3)
}
