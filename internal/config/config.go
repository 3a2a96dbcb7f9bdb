package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging        LoggingConfig            `yaml:"logging" envconfig:"LOGGING"`
	Fixtures       FixturesConfig           `yaml:"fixtures" envconfig:"FIXTURES"`
	EntityManagers map[string]EntityManager `yaml:"entity_managers"`
}

// LoggingConfig contains logging configuration. No envconfig defaults here:
// unset env vars must leave file-configured values alone, so defaults are
// applied afterwards in applyDefaults.
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL"`
	Format   string `yaml:"format" envconfig:"FORMAT"`
	Output   string `yaml:"output" envconfig:"OUTPUT"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH"`
}

// FixturesConfig contains fixture discovery configuration
type FixturesConfig struct {
	// DefaultPaths is searched when no --fixtures flag is given.
	DefaultPaths []string `yaml:"default_paths" envconfig:"DEFAULT_PATHS"`
}

// EntityManager describes one named database connection.
// A manager with a non-empty Shards map supports shard binding.
type EntityManager struct {
	Driver string            `yaml:"driver" validate:"required,oneof=sqlite postgres mysql"`
	DSN    string            `yaml:"dsn" validate:"required"`
	Shards map[string]string `yaml:"shards"`
}

// DefaultManagerName is the entity manager used when --em is not given.
const DefaultManagerName = "default"

// EnvPrefix is the prefix for environment variable overrides.
const EnvPrefix = "SEEDCLI"

// Load loads configuration from the YAML config file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	var cfg Config

	configFile := configFilePath()
	if _, err := os.Stat(configFile); err == nil {
		fileCfg, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file %s: %w", configFile, err)
		}
		cfg = *fileCfg
	}

	// Env vars override file values; unset vars leave them untouched.
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadFromFile loads configuration from a specific YAML file, applying
// defaults and validation. Used by tests and the --config flag.
func LoadFromFile(path string) (*Config, error) {
	cfg, err := loadFromFile(path)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func loadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse yaml: %w", err)
	}

	return &cfg, nil
}

// configFilePath resolves the config file location: SEEDCLI_CONFIG if set,
// otherwise seedcli.yaml next to the executable, falling back to the
// working directory.
func configFilePath() string {
	if path := os.Getenv(EnvPrefix + "_CONFIG"); path != "" {
		return path
	}

	if exe, err := os.Executable(); err == nil {
		candidate := filepath.Join(filepath.Dir(exe), "seedcli.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return "seedcli.yaml"
}

func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "json"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "console"
	}
	if c.Logging.FilePath == "" {
		c.Logging.FilePath = filepath.Join("logs", "seedcli.log")
	}
	if len(c.Fixtures.DefaultPaths) == 0 {
		c.Fixtures.DefaultPaths = []string{"fixtures"}
	}
	if c.EntityManagers == nil {
		c.EntityManagers = map[string]EntityManager{}
	}
}

// Validate checks the configuration for consistency
func (c *Config) Validate() error {
	switch c.Logging.Output {
	case "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output %q (expected console, file or both)", c.Logging.Output)
	}

	validate := validator.New()
	for name, em := range c.EntityManagers {
		if err := validate.Struct(em); err != nil {
			return fmt.Errorf("entity manager %q: %w", name, err)
		}
	}

	return nil
}

// Manager returns the named entity manager, or the default one when name is
// empty. The boolean reports whether the manager exists.
func (c *Config) Manager(name string) (EntityManager, bool) {
	if name == "" {
		name = DefaultManagerName
	}
	em, ok := c.EntityManagers[name]
	return em, ok
}
