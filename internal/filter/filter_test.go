package filter

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bundlekit/cli/internal/core"
)

func photosBundle() *core.Bundle {
	return &core.Bundle{Name: "photos", Dir: filepath.FromSlash("/bundles/photos")}
}

func TestFromPattern_Empty_AcceptsEverything(t *testing.T) {
	pred, err := FromPattern("")
	require.NoError(t, err)
	assert.True(t, pred(photosBundle(), "anything/at/all.txt"))
}

func TestFromPattern_Invalid(t *testing.T) {
	_, err := FromPattern("[unclosed")
	assert.Error(t, err)
}

func TestFromPattern_Glob(t *testing.T) {
	pred, err := FromPattern("lib/**/*.js")
	require.NoError(t, err)

	b := photosBundle()
	assert.True(t, pred(b, filepath.FromSlash("lib/grid.js")))
	assert.True(t, pred(b, filepath.FromSlash("lib/nested/zoom.js")))
	assert.False(t, pred(b, filepath.FromSlash("assets/grid.js")))
	assert.False(t, pred(b, filepath.FromSlash("lib/grid.css")))
}

func TestApply_FiltersRelativeToBundle(t *testing.T) {
	pred, err := FromPattern("lib/*.js")
	require.NoError(t, err)
	b := photosBundle()

	keep := filepath.FromSlash("/bundles/photos/lib/grid.js")
	drop := filepath.FromSlash("/bundles/photos/other/x.js")

	kept := Apply(pred, b, []string{keep, drop})
	assert.Equal(t, []string{keep}, kept)
}

func TestApply_NilPredicate_PassThrough(t *testing.T) {
	in := []string{"a", "b"}
	assert.Equal(t, in, Apply(nil, photosBundle(), in))
}
