// Package docschema validates docmatch's own JSON output documents
// (review reports, vault manifests) against schemas embedded in the
// binary as a fixed, compile-time set — docmatch has no need to discover
// schemas from an on-disk catalog directory, since every schema it
// validates against is one it authored itself.
package docschema

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed schemas/*.schema.json
var embeddedSchemas embed.FS

// Known schema IDs.
const (
	ReviewReport  = "review_report"
	VaultManifest = "vault_manifest"
)

// Diagnostic describes one schema validation failure. There are no
// severity/source columns here — docmatch only ever reports its own hard
// validation failures, never advisory severity levels.
type Diagnostic struct {
	Pointer string
	Message string
}

var (
	mu         sync.Mutex
	compiled   = map[string]*jsonschema.Schema{}
	schemaFile = map[string]string{
		ReviewReport:  "schemas/review_report.schema.json",
		VaultManifest: "schemas/vault_manifest.schema.json",
	}
)

func schemaFor(id string) (*jsonschema.Schema, error) {
	mu.Lock()
	defer mu.Unlock()
	if s, ok := compiled[id]; ok {
		return s, nil
	}
	file, ok := schemaFile[id]
	if !ok {
		return nil, fmt.Errorf("docschema: unknown schema id %q", id)
	}
	data, err := embeddedSchemas.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("docschema: reading embedded schema %q: %w", id, err)
	}
	compiler := jsonschema.NewCompiler()
	url := "mem://" + file
	if err := compiler.AddResource(url, strings.NewReader(string(data))); err != nil {
		return nil, fmt.Errorf("docschema: adding schema resource %q: %w", id, err)
	}
	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("docschema: compiling schema %q: %w", id, err)
	}
	compiled[id] = schema
	return schema, nil
}

// ValidateJSON validates raw JSON bytes against the named embedded schema.
func ValidateJSON(id string, data []byte) ([]Diagnostic, error) {
	var payload any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("docschema: invalid JSON: %w", err)
	}
	return ValidateValue(id, payload)
}

// ValidateValue validates an already-decoded value against the named
// embedded schema.
func ValidateValue(id string, payload any) ([]Diagnostic, error) {
	schema, err := schemaFor(id)
	if err != nil {
		return nil, err
	}
	err = schema.Validate(payload)
	if err == nil {
		return nil, nil
	}
	valErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return nil, err
	}
	return flattenValidationError(valErr), nil
}

func flattenValidationError(root *jsonschema.ValidationError) []Diagnostic {
	var out []Diagnostic
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) == 0 {
			out = append(out, Diagnostic{
				Pointer: e.InstanceLocation,
				Message: e.Message,
			})
			return
		}
		for _, cause := range e.Causes {
			walk(cause)
		}
	}
	walk(root)
	return out
}
