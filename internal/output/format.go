package output

import "strings"

// Format specifies the manifest output format.
type Format string

const (
	// FormatTable outputs a styled summary table.
	FormatTable Format = "table"

	// FormatJSON outputs the loader manifest as JSON.
	FormatJSON Format = "json"

	// FormatYAML outputs the loader manifest as YAML.
	FormatYAML Format = "yaml"
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// ParseFormat parses a string into a Format. The second return value
// reports whether the input was recognized.
func ParseFormat(s string) (Format, bool) {
	switch strings.ToLower(s) {
	case "table", "":
		return FormatTable, true
	case "json":
		return FormatJSON, true
	case "yaml", "yml":
		return FormatYAML, true
	default:
		return FormatTable, false
	}
}

// ValidFormats returns the valid format strings for help text.
func ValidFormats() []string {
	return []string{"table", "json", "yaml"}
}
