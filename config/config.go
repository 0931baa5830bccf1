package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/clodeb/logoexport"
	"github.com/goccy/go-yaml"
)

var (
	homePath       string
	configHomePath string
)

// Config holds the optional overrides of the default export run. Zero
// values keep the defaults.
type Config struct {
	// Directory sources and outputs are resolved against
	Root string `yaml:"root,omitempty" json:"root,omitempty"`
	// Output table name (v1 or v2)
	Variant string  `yaml:"variant,omitempty" json:"variant,omitempty"`
	Sources Sources `yaml:"sources,omitempty" json:"sources,omitempty"`
	// Resampling filter (lanczos, catmullrom, linear, box)
	Filter string `yaml:"filter,omitempty" json:"filter,omitempty"`
	// JSON log file written in addition to the progress output
	LogFile string `yaml:"logFile,omitempty" json:"logFile,omitempty"`

	path string
}

type Sources struct {
	Full string `yaml:"full,omitempty" json:"full,omitempty"`
	Icon string `yaml:"icon,omitempty" json:"icon,omitempty"`
}

func init() {
	var err error
	homePath, err = os.UserHomeDir()
	if err != nil {
		homePath = os.TempDir()
	}
}

// Load reads the configuration file.
// If path is set it must exist. Otherwise it searches in order:
// 1. {root}/.logoexport.yml, {root}/.logoexport.yaml
// 2. $XDG_CONFIG_HOME/logoexport/config.yml, config.yaml
// If no config file is found, it returns an empty Config struct.
func Load(path, root string) (*Config, error) {
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		return parse(b, path)
	}

	if root == "" {
		root = "."
	}
	candidates := []string{
		filepath.Join(root, ".logoexport.yml"),
		filepath.Join(root, ".logoexport.yaml"),
		filepath.Join(configPath(), "config.yml"),
		filepath.Join(configPath(), "config.yaml"),
	}
	for _, p := range candidates {
		b, err := os.ReadFile(p)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		return parse(b, p)
	}
	return &Config{}, nil
}

func parse(b []byte, path string) (*Config, error) {
	cfg := &Config{path: path}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the named variant and filter exist.
func (c *Config) Validate() error {
	if c.Variant != "" {
		if _, err := logoexport.LookupVariant(c.Variant); err != nil {
			return fmt.Errorf("variant: %w", err)
		}
	}
	if _, err := logoexport.ParseFilter(c.Filter); err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	return nil
}

// Path returns the file the config was loaded from, if any.
func (c *Config) Path() string {
	return c.path
}

// Options converts the config into exporter options.
func (c *Config) Options() []logoexport.Option {
	return []logoexport.Option{
		logoexport.WithRoot(c.Root),
		logoexport.WithVariant(c.Variant),
		logoexport.WithSources(c.Sources.Full, c.Sources.Icon),
		logoexport.WithFilter(c.Filter),
	}
}

// configPath returns the path to the configuration directory.
func configPath() string {
	if configHomePath != "" {
		return configHomePath
	}
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		configHomePath = filepath.Join(v, "logoexport")
	} else {
		configHomePath = filepath.Join(homePath, ".config", "logoexport")
	}
	return configHomePath
}
