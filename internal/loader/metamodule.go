package loader

import (
	"encoding/json"
	"fmt"

	"github.com/bundlekit/cli/internal/core"
)

// metaModuleTemplate is the shape of the generated meta-module. The
// embedded manifest configures a loader group named after the bundle so
// a browser-side loader can resolve every compiled module.
const metaModuleTemplate = `YUI.add(%q, function (Y, NAME) {
    Y.applyConfig({
        groups: {
            %q: {
                combine: false,
                modules: %s
            }
        }
    });
}, "", { requires: ["loader-base"] });
`

// GenerateMetaModule renders the textual meta-module artifact embedding
// the manifest as loader configuration.
//
// Output is byte-for-byte deterministic for equal manifests: the
// manifest is serialized with encoding/json, which orders map keys
// lexicographically.
func GenerateMetaModule(bundle *core.Bundle, manifest map[string]*core.Metadata) (string, error) {
	encoded, err := json.MarshalIndent(manifest, "                ", "    ")
	if err != nil {
		return "", fmt.Errorf("encoding loader manifest for %q: %w", bundle.Name, err)
	}
	return fmt.Sprintf(metaModuleTemplate, bundle.MetaModule(), bundle.Name, encoded), nil
}
