package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"sigs.k8s.io/yaml"
)

// Format specifies the output format.
type Format string

const (
	// FormatTable outputs in table format.
	FormatTable Format = "table"

	// FormatYAML outputs in YAML format.
	FormatYAML Format = "yaml"

	// FormatJSON outputs in JSON format.
	FormatJSON Format = "json"
)

// String returns the string representation of the output format.
func (f Format) String() string {
	return string(f)
}

// IsValid checks if the output format is valid.
func (f Format) IsValid() bool {
	switch f {
	case FormatTable, FormatYAML, FormatJSON:
		return true
	default:
		return false
	}
}

// ParseFormat parses a string into a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "table":
		return FormatTable, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported output format %q (valid: %s)", s, strings.Join(ValidFormats(), ", "))
	}
}

// ValidFormats returns a slice of valid output format strings.
func ValidFormats() []string {
	return []string{"table", "yaml", "json"}
}

// Encode writes v to w as YAML or JSON. Struct json tags drive both encodings.
func Encode(w io.Writer, f Format, v any) error {
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("marshaling yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("format %q is not an encoding", f)
	}
}
