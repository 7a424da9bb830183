package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LayeredOptions describes where to find each layer of a merged config.
// Layers are applied defaults -> user file -> env overrides, each one
// overwriting keys the previous layer set.
type LayeredOptions struct {
	// DefaultsFile is an embedded or on-disk YAML/JSON file always loaded
	// first. May be empty if the caller has no baked-in defaults.
	DefaultsFile string
	// UserPaths are candidate on-disk override files, tried in order; the
	// first one that exists is loaded. Typically AppConfigDir()/config.yaml.
	UserPaths []string
	// EnvSpecs describes which environment variables can override config
	// values and where each lands in the merged map.
	EnvSpecs []EnvVarSpec
}

// LoadLayered merges defaults, the first existing user override file, and
// environment variable overrides into a single map, deep-merging nested
// maps at every layer boundary.
func LoadLayered(opts LayeredOptions) (map[string]any, error) {
	merged := map[string]any{}

	if opts.DefaultsFile != "" {
		defaults, err := loadConfigFile(opts.DefaultsFile)
		if err != nil {
			return nil, fmt.Errorf("config: loading defaults: %w", err)
		}
		merged = mergeMaps(merged, defaults)
	}

	for _, path := range opts.UserPaths {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); err != nil {
			continue
		}
		user, err := loadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: loading %s: %w", path, err)
		}
		merged = mergeMaps(merged, user)
		break
	}

	if len(opts.EnvSpecs) > 0 {
		envOverrides, err := LoadEnvOverrides(opts.EnvSpecs)
		if err != nil {
			return nil, err
		}
		merged = mergeMaps(merged, envOverrides)
	}

	return merged, nil
}

func loadConfigFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	out := map[string]any{}
	switch ext := filepath.Ext(path); ext {
	case ".json":
		if err := json.Unmarshal(data, &out); err != nil {
			return nil, err
		}
	default:
		if err := yaml.Unmarshal(data, &out); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// mergeMaps deep-merges override into base, returning a new map. Nested
// maps are merged recursively; any other value type in override replaces
// the corresponding base value outright.
func mergeMaps(base, override map[string]any) map[string]any {
	out := make(map[string]any, len(base)+len(override))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range override {
		if overrideMap, ok := v.(map[string]any); ok {
			if baseMap, ok := out[k].(map[string]any); ok {
				out[k] = mergeMaps(baseMap, overrideMap)
				continue
			}
		}
		out[k] = v
	}
	return out
}
