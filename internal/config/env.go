package config

import (
	"fmt"
	"os"
	"strconv"
)

// EnvVarType names the Go type an EnvVarSpec parses its raw string value as.
type EnvVarType string

const (
	EnvString EnvVarType = "string"
	EnvInt    EnvVarType = "int"
	EnvFloat  EnvVarType = "float"
	EnvBool   EnvVarType = "bool"
)

// EnvVarSpec binds one environment variable to a dotted path inside the
// merged config map, e.g. {"DOCMATCH_MAX_WINDOWS", []string{"matcher",
// "max_windows"}, EnvInt}.
type EnvVarSpec struct {
	Name string
	Path []string
	Type EnvVarType
}

// LoadEnvOverrides reads every spec's environment variable, parses it per
// its declared type, and returns a nested map keyed by each Path. Specs
// whose variable is unset are skipped entirely rather than written as a
// zero value, so they never shadow a lower layer's setting.
func LoadEnvOverrides(specs []EnvVarSpec) (map[string]any, error) {
	out := map[string]any{}
	for _, spec := range specs {
		raw, ok := os.LookupEnv(spec.Name)
		if !ok || raw == "" {
			continue
		}
		value, err := parseEnvValue(raw, spec.Type)
		if err != nil {
			return nil, fmt.Errorf("config: env var %s: %w", spec.Name, err)
		}
		setPath(out, spec.Path, value)
	}
	return out, nil
}

func parseEnvValue(raw string, t EnvVarType) (any, error) {
	switch t {
	case EnvInt:
		return strconv.Atoi(raw)
	case EnvFloat:
		return strconv.ParseFloat(raw, 64)
	case EnvBool:
		return strconv.ParseBool(raw)
	case EnvString, "":
		return raw, nil
	default:
		return nil, fmt.Errorf("unknown env var type %q", t)
	}
}

func setPath(m map[string]any, path []string, value any) {
	if len(path) == 0 {
		return
	}
	cur := m
	for _, key := range path[:len(path)-1] {
		next, ok := cur[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[key] = next
		}
		cur = next
	}
	cur[path[len(path)-1]] = value
}
