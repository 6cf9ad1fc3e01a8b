// Package config holds the run configuration of the generators: where the
// inputs are and where the artifacts go.
//
// Values come from, lowest precedence first: the defaults in SetDefaults,
// an optional bindgen.toml, BINDGEN_* environment variables and command-line
// flags bound by the caller.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/teranos/bindgen/errors"
)

// DefaultConfigFile is read from the working directory when no config file
// is given explicitly.
const DefaultConfigFile = "bindgen.toml"

// EnvPrefix prefixes environment overrides: BINDGEN_OUTPUT_DIR sets output.dir.
const EnvPrefix = "BINDGEN"

// Config is the run configuration.
type Config struct {
	Docs    DocsConfig    `mapstructure:"docs"`
	Methods MethodsConfig `mapstructure:"methods"`
	Output  OutputConfig  `mapstructure:"output"`
	Tables  TablesConfig  `mapstructure:"tables"`
	Watch   WatchConfig   `mapstructure:"watch"`
}

// DocsConfig locates the Doxygen XML inputs of the docstring pipeline.
type DocsConfig struct {
	Index     string `mapstructure:"index"`      // Doxygen index.xml
	Header    string `mapstructure:"header"`     // header compound that defines the public set
	Group     string `mapstructure:"group"`      // group document holding the documented functions
	IgnoreCSV string `mapstructure:"ignore_csv"` // extra names to ignore, first column
	Template  string `mapstructure:"template"`   // method docstring template; empty = <output.dir>/pyobj_methods_docstring.i.in
}

// MethodsConfig locates the AST dump of the method miner.
type MethodsConfig struct {
	AST string `mapstructure:"ast"`
}

// OutputConfig says where artifacts are written.
type OutputConfig struct {
	Dir string `mapstructure:"dir"`
}

// TablesConfig optionally replaces the embedded tables.
type TablesConfig struct {
	Path string `mapstructure:"path"`
}

// WatchConfig tunes watch mode.
type WatchConfig struct {
	DebounceMS int `mapstructure:"debounce_ms"`
}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("docs.index", "")
	v.SetDefault("docs.header", "reshop.h")
	v.SetDefault("docs.group", "group__publicAPI.xml")
	v.SetDefault("docs.ignore_csv", "")
	v.SetDefault("docs.template", "")

	v.SetDefault("methods.ast", "")

	v.SetDefault("output.dir", "generated")

	v.SetDefault("tables.path", "")

	v.SetDefault("watch.debounce_ms", 300)
}

// NewViper returns a viper instance with defaults, environment binding and,
// when present, the config file. An explicit configPath must exist; the
// default file is optional.
func NewViper(configPath string) (*viper.Viper, error) {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	SetDefaults(v)

	if configPath == "" {
		if _, err := os.Stat(DefaultConfigFile); err != nil {
			return v, nil
		}
		configPath = DefaultConfigFile
	}

	v.SetConfigFile(configPath)
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.WrapMissingInput(err, configPath)
	}
	return v, nil
}

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would make every run fail.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Output.Dir) == "" {
		return errors.WithHint(errors.New("output.dir is empty"), "set output.dir or BINDGEN_OUTPUT_DIR")
	}
	if c.Watch.DebounceMS < 0 {
		return errors.Newf("watch.debounce_ms must not be negative, got %d", c.Watch.DebounceMS)
	}
	return nil
}

// TemplatePath is the method docstring template to read.
func (c *Config) TemplatePath() string {
	if c.Docs.Template != "" {
		return c.Docs.Template
	}
	return filepath.Join(c.Output.Dir, "pyobj_methods_docstring.i.in")
}

// Debounce is the watch-mode quiet period.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.Watch.DebounceMS) * time.Millisecond
}

// RequireDocs reports a usage error when the docstring pipeline has no index.
func (c *Config) RequireDocs() error {
	if c.Docs.Index == "" {
		return errors.WithHint(errors.New("no Doxygen index configured"),
			"pass --index, set docs.index in bindgen.toml or BINDGEN_DOCS_INDEX")
	}
	return nil
}

// RequireMethods reports a usage error when the miner has no AST dump.
func (c *Config) RequireMethods() error {
	if c.Methods.AST == "" {
		return errors.WithHint(errors.New("no AST dump configured"),
			"pass --ast, set methods.ast in bindgen.toml or BINDGEN_METHODS_AST")
	}
	return nil
}
