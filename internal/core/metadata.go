// Package core provides the shared domain types for bundlekit:
// bundles, module metadata records, and build affinity.
package core

// Affinity tags a build variant with its intended runtime.
// The empty value means the variant is shared between client and server.
type Affinity string

const (
	// AffinityCommon marks a variant usable on both client and server.
	AffinityCommon Affinity = ""

	// AffinityClient marks a browser-only variant.
	AffinityClient Affinity = "client"

	// AffinityServer marks a server-only variant.
	AffinityServer Affinity = "server"
)

// IsValid checks if the affinity is one of the known values.
func (a Affinity) IsValid() bool {
	switch a {
	case AffinityCommon, AffinityClient, AffinityServer:
		return true
	default:
		return false
	}
}

// BuildConfig describes one build variant of a module.
type BuildConfig struct {
	// Affinity restricts the variant to client or server.
	// Empty means shared.
	Affinity Affinity `json:"affinity,omitempty"`

	// Group is the loader group the variant belongs to.
	Group string `json:"group,omitempty"`

	// Files lists the source files combined into this variant.
	// Populated from build descriptors; single-module variants leave it empty.
	Files []string `json:"jsfiles,omitempty"`

	// Requires lists loader dependencies declared by the module.
	Requires []string `json:"requires,omitempty"`
}

// Metadata is the build metadata record for one module file or one
// build descriptor, as produced by the module builder. Records are
// immutable once produced; re-registration replaces them wholesale.
type Metadata struct {
	// Name is the module identifier.
	Name string `json:"name"`

	// Buildfile is the source path the record was produced from.
	Buildfile string `json:"buildfile"`

	// Builds maps build-variant keys to their configurations.
	Builds map[string]BuildConfig `json:"builds"`
}
