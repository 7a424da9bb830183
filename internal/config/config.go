// Package config resolves docmatch's layered configuration: built-in
// defaults, an optional XDG-located user config file, and environment
// variable overrides, merged in that order. There is no external schema
// validation step here — docmatch validates the narrower shape it
// actually needs with plain Go zero-value checks in Validate.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Config is docmatch's complete runtime configuration.
type Config struct {
	Matcher  MatcherConfig  `yaml:"matcher"`
	Adapters AdaptersConfig `yaml:"adapters"`
	Logging  LoggingConfig  `yaml:"logging"`
	Vault    VaultConfig    `yaml:"vault"`
}

type MatcherConfig struct {
	MaxWindows     int `yaml:"max_windows"`
	LLMWindowChars int `yaml:"llm_window_chars"`
}

type AdaptersConfig struct {
	EmbedderURL    string        `yaml:"embedder_url"`
	LLMURL         string        `yaml:"llm_url"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
}

type LoggingConfig struct {
	Level   string `yaml:"level"`
	FileDir string `yaml:"file_dir"`
}

type VaultConfig struct {
	OutputDir string `yaml:"output_dir"`
}

// Defaults returns the built-in configuration used when no file or
// environment override supplies a value.
func Defaults() Config {
	return Config{
		Matcher: MatcherConfig{
			MaxWindows:     1000,
			LLMWindowChars: 5000,
		},
		Adapters: AdaptersConfig{
			RequestTimeout: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Vault: VaultConfig{
			OutputDir: "./vault",
		},
	}
}

// EnvSpecs is the set of environment variables docmatch recognizes as
// config overrides.
func EnvSpecs() []EnvVarSpec {
	return []EnvVarSpec{
		{Name: "DOCMATCH_MAX_WINDOWS", Path: []string{"matcher", "max_windows"}, Type: EnvInt},
		{Name: "DOCMATCH_LLM_WINDOW_CHARS", Path: []string{"matcher", "llm_window_chars"}, Type: EnvInt},
		{Name: "DOCMATCH_EMBEDDER_URL", Path: []string{"adapters", "embedder_url"}, Type: EnvString},
		{Name: "DOCMATCH_LLM_URL", Path: []string{"adapters", "llm_url"}, Type: EnvString},
		{Name: "DOCMATCH_LOG_LEVEL", Path: []string{"logging", "level"}, Type: EnvString},
		{Name: "DOCMATCH_VAULT_DIR", Path: []string{"vault", "output_dir"}, Type: EnvString},
	}
}

// Load resolves the layered configuration into a Config, starting from
// Defaults(), applying the first existing path in UserPaths (defaulting
// to AppConfigDir()/config.yaml when UserPaths is empty), then environment
// overrides.
func Load(userPaths ...string) (Config, error) {
	if len(userPaths) == 0 {
		userPaths = []string{filepath.Join(AppConfigDir(), "config.yaml")}
	}

	defaultsYAML, err := yaml.Marshal(Defaults())
	if err != nil {
		return Config{}, fmt.Errorf("config: marshaling defaults: %w", err)
	}
	defaultsMap := map[string]any{}
	if err := yaml.Unmarshal(defaultsYAML, &defaultsMap); err != nil {
		return Config{}, fmt.Errorf("config: unmarshaling defaults: %w", err)
	}

	merged, err := LoadLayered(LayeredOptions{
		UserPaths: userPaths,
		EnvSpecs:  EnvSpecs(),
	})
	if err != nil {
		return Config{}, err
	}
	merged = mergeMaps(defaultsMap, merged)

	mergedYAML, err := yaml.Marshal(merged)
	if err != nil {
		return Config{}, fmt.Errorf("config: marshaling merged config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(mergedYAML, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: unmarshaling merged config: %w", err)
	}
	return cfg, nil
}

// Validate reports every structurally invalid field found, combined via
// multierr so a caller sees the whole problem in one error rather than
// fixing one field at a time. docmatch's config shape is small and fixed,
// so a handful of zero-value/range checks cover it without pulling in a
// schema dependency here (docschema validates only docmatch's JSON
// outputs: the review report and the vault manifest).
func (c Config) Validate() error {
	var err error
	if c.Matcher.MaxWindows <= 0 {
		err = multierr.Append(err, fmt.Errorf("config: matcher.max_windows must be positive, got %d", c.Matcher.MaxWindows))
	}
	if c.Matcher.LLMWindowChars <= 0 {
		err = multierr.Append(err, fmt.Errorf("config: matcher.llm_window_chars must be positive, got %d", c.Matcher.LLMWindowChars))
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error", "fatal", "":
	default:
		err = multierr.Append(err, fmt.Errorf("config: logging.level %q is not a recognized severity", c.Logging.Level))
	}
	return err
}
