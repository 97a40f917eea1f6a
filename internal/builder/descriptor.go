package builder

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/bundlekit/cli/internal/core"
)

// descriptor is the on-disk shape of a build.json file.
type descriptor struct {
	// Name identifies the descriptor's module group.
	Name string `json:"name"`

	// Builds maps variant keys to their configuration.
	Builds map[string]descriptorBuild `json:"builds"`
}

// descriptorBuild is one build variant inside a descriptor.
type descriptorBuild struct {
	Files    []string      `json:"jsfiles"`
	Affinity core.Affinity `json:"affinity,omitempty"`
	Group    string        `json:"group,omitempty"`
	Requires []string      `json:"requires,omitempty"`
}

// variantKeys returns the descriptor's build keys in sorted order so
// multi-variant builds run deterministically.
func (d *descriptor) variantKeys() []string {
	keys := make([]string, 0, len(d.Builds))
	for k := range d.Builds {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// validate checks the descriptor's shape: a name, at least one build,
// and at least one source file plus a known affinity per build.
func (d *descriptor) validate() error {
	if d.Name == "" {
		return fmt.Errorf("descriptor has no name")
	}
	if len(d.Builds) == 0 {
		return fmt.Errorf("descriptor %q declares no builds", d.Name)
	}
	for key, b := range d.Builds {
		if len(b.Files) == 0 {
			return fmt.Errorf("build %q has no jsfiles", key)
		}
		if !b.Affinity.IsValid() {
			return fmt.Errorf("build %q has unknown affinity %q", key, b.Affinity)
		}
	}
	return nil
}

// parseDescriptor reads and validates a build.json file.
func parseDescriptor(path string) (*descriptor, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading descriptor: %w", err)
	}
	var d descriptor
	if err := json.Unmarshal(content, &d); err != nil {
		return nil, fmt.Errorf("parsing descriptor: %w", err)
	}
	if err := d.validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// CheckBuildDescriptor parses a build.json file and produces its
// metadata record. Returns nil for descriptors that do not parse or
// fail shape validation — such files are skipped, not fatal.
func (b *FSBuilder) CheckBuildDescriptor(path string) (*core.Metadata, error) {
	desc, err := parseDescriptor(path)
	if err != nil {
		return nil, nil //nolint:nilerr // invalid descriptors are a skip condition, not an error
	}

	builds := make(map[string]core.BuildConfig, len(desc.Builds))
	for key, v := range desc.Builds {
		builds[key] = core.BuildConfig{
			Affinity: v.Affinity,
			Group:    v.Group,
			Files:    v.Files,
			Requires: v.Requires,
		}
	}

	return &core.Metadata{
		Name:      desc.Name,
		Buildfile: path,
		Builds:    builds,
	}, nil
}
