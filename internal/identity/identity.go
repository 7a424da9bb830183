// Package identity describes docmatch's own application identity:
// binary name, vendor, and the naming conventions derived from them
// (env var prefix, telemetry namespace). There is no multi-binary
// registry to discover or cache — docmatch is the one identity here,
// not a multi-app registry with schema-validated discovery, a
// process-lifetime cache, and context-scoped test overrides (see
// DESIGN.md).
package identity

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Identity is docmatch's application identity metadata.
type Identity struct {
	BinaryName  string `yaml:"binary_name"`
	Vendor      string `yaml:"vendor"`
	Description string `yaml:"description,omitempty"`
}

// Default is docmatch's built-in identity, which Load returns when it is
// given no path or a path that does not exist.
func Default() Identity {
	return Identity{
		BinaryName:  "docmatch",
		Vendor:      "fulmenhq",
		Description: "Bulletproof chunk re-anchoring engine for cleaned document pipelines",
	}
}

// Load reads an identity override file (YAML), falling back to Default()
// when path is empty or does not exist.
func Load(path string) (Identity, error) {
	id := Default()
	if path == "" {
		return id, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return id, nil
		}
		return Identity{}, fmt.Errorf("identity: reading %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &id); err != nil {
		return Identity{}, fmt.Errorf("identity: parsing %s: %w", path, err)
	}
	return id, id.Validate()
}

// Validate reports whether BinaryName and Vendor are non-empty and
// entirely lowercase. It does not restrict which separator characters
// they contain.
func (i Identity) Validate() error {
	if i.BinaryName == "" || strings.ToLower(i.BinaryName) != i.BinaryName {
		return fmt.Errorf("identity: binary_name must be a non-empty lowercase string, got %q", i.BinaryName)
	}
	if i.Vendor == "" || strings.ToLower(i.Vendor) != i.Vendor {
		return fmt.Errorf("identity: vendor must be a non-empty lowercase string, got %q", i.Vendor)
	}
	return nil
}

// EnvPrefix returns the uppercase, underscore-terminated environment
// variable prefix for this identity, e.g. "DOCMATCH_".
func (i Identity) EnvPrefix() string {
	return strings.ToUpper(i.BinaryName) + "_"
}

// EnvVar returns the fully-qualified environment variable name for key,
// e.g. EnvVar("LOG_LEVEL") -> "DOCMATCH_LOG_LEVEL".
func (i Identity) EnvVar(key string) string {
	return i.EnvPrefix() + strings.ToUpper(key)
}

// TelemetryNamespace returns the metric namespace prefix for this
// identity, e.g. "docmatch".
func (i Identity) TelemetryNamespace() string {
	return i.BinaryName
}
