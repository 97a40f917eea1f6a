package builder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bundlekit/cli/internal/core"
	"github.com/bundlekit/cli/internal/testutil"
)

func TestCheckBuildDescriptor_Valid(t *testing.T) {
	dir := t.TempDir()
	path := testutil.WriteFile(t, dir, "build.json", `{
  "name": "gallery",
  "builds": {
    "gallery": {
      "jsfiles": ["lib/grid.js", "lib/zoom.js"],
      "requires": ["node"]
    },
    "gallery-admin": {
      "jsfiles": ["admin/tools.js"],
      "affinity": "server",
      "group": "admin"
    }
  }
}`)

	record, err := NewFSBuilder().CheckBuildDescriptor(path)
	require.NoError(t, err)
	require.NotNil(t, record)

	assert.Equal(t, "gallery", record.Name)
	assert.Equal(t, path, record.Buildfile)
	require.Len(t, record.Builds, 2)

	base := record.Builds["gallery"]
	assert.Equal(t, core.AffinityCommon, base.Affinity)
	assert.Equal(t, []string{"lib/grid.js", "lib/zoom.js"}, base.Files)
	assert.Equal(t, []string{"node"}, base.Requires)

	admin := record.Builds["gallery-admin"]
	assert.Equal(t, core.AffinityServer, admin.Affinity)
	assert.Equal(t, "admin", admin.Group)
}

func TestCheckBuildDescriptor_InvalidIsSkip(t *testing.T) {
	cases := map[string]string{
		"malformed-json":   `{ "name": "x", `,
		"missing-name":     `{ "builds": { "x": { "jsfiles": ["a.js"] } } }`,
		"no-builds":        `{ "name": "x", "builds": {} }`,
		"empty-jsfiles":    `{ "name": "x", "builds": { "x": { "jsfiles": [] } } }`,
		"unknown-affinity": `{ "name": "x", "builds": { "x": { "jsfiles": ["a.js"], "affinity": "edge" } } }`,
	}

	b := NewFSBuilder()
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := testutil.WriteFile(t, t.TempDir(), "build.json", content)
			record, err := b.CheckBuildDescriptor(path)
			assert.NoError(t, err)
			assert.Nil(t, record)
		})
	}
}

func TestCheckBuildDescriptor_MissingFileIsSkip(t *testing.T) {
	record, err := NewFSBuilder().CheckBuildDescriptor(t.TempDir() + "/build.json")
	assert.NoError(t, err)
	assert.Nil(t, record)
}

func TestVariantKeys_Sorted(t *testing.T) {
	d := &descriptor{
		Name: "x",
		Builds: map[string]descriptorBuild{
			"c": {Files: []string{"c.js"}},
			"a": {Files: []string{"a.js"}},
			"b": {Files: []string{"b.js"}},
		},
	}
	assert.Equal(t, []string{"a", "b", "c"}, d.variantKeys())
}
