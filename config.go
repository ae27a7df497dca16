package arsenic

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds operator-tunable job defaults. The orchestrator never reads
// a Config: a Job carries its own fields, fixed once submitted. The CLI in
// cmd/arsenic does not load a Config either; its defaults come from its
// flags.
type Config struct {
	Preset   string `yaml:"preset"`    // one of "interactive", "moderate", "sensitive"
	Armor    bool   `yaml:"armor"`     // default armor setting for new jobs
	KeepOrig bool   `yaml:"keep"`      // default delete_original_on_success setting (inverted)
	ChunkLog bool   `yaml:"chunk_log"` // per-file progress logging flag; parsed but not read by any code in this module
}

// Default returns the package's baseline configuration.
func Default() *Config {
	return &Config{
		Preset:   PresetInteractive.String(),
		Armor:    false,
		KeepOrig: true,
		ChunkLog: false,
	}
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse parses configuration from YAML bytes, expanding ${VAR}-style
// environment references before unmarshalling and validating the result.
func Parse(data []byte) (*Config, error) {
	expanded := expandEnvVars(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// envVarRegex matches ${VAR} or $VAR patterns, with an optional
// ${VAR:-default} fallback.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

func expandEnvVars(s string) string {
	return envVarRegex.ReplaceAllStringFunc(s, func(match string) string {
		var name string
		if strings.HasPrefix(match, "${") {
			name = match[2 : len(match)-1]
		} else {
			name = match[1:]
		}

		if idx := strings.Index(name, ":-"); idx != -1 {
			varName := name[:idx]
			defaultVal := name[idx+2:]
			if val, ok := os.LookupEnv(varName); ok {
				return val
			}
			return defaultVal
		}

		if val, ok := os.LookupEnv(name); ok {
			return val
		}
		return match
	})
}

// Validate checks the configuration for errors, accumulating every problem
// found rather than stopping at the first.
func (c *Config) Validate() error {
	var errs []string

	if _, ok := ParsePreset(c.Preset); !ok {
		errs = append(errs, fmt.Sprintf("preset: invalid value %q (must be interactive, moderate, or sensitive)", c.Preset))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// KDFPreset resolves the configured preset name, falling back to
// PresetInteractive if the value somehow escaped Validate.
func (c *Config) KDFPreset() KDFPreset {
	preset, ok := ParsePreset(c.Preset)
	if !ok {
		return PresetInteractive
	}
	return preset
}
