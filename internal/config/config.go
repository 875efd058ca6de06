// Package config loads project settings for the approutes command from
// approutes.yaml, APPROUTES_* environment variables and defaults, in
// decreasing order of precedence: environment, file, defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/rafbgarcia/approutes"
	"github.com/rafbgarcia/approutes/internal/codegen"
)

// FileName is the config file looked up in the working directory.
const FileName = "approutes.yaml"

// EnvPrefix prefixes every environment override, e.g. APPROUTES_OUTPUT_FORMAT.
const EnvPrefix = "APPROUTES"

// Config is the project configuration as read from approutes.yaml.
type Config struct {
	Source     string       `mapstructure:"source" yaml:"source"`
	Type       string       `mapstructure:"type" yaml:"type"`
	Extensions []string     `mapstructure:"extensions" yaml:"extensions,omitempty"`
	Ignore     []string     `mapstructure:"ignore" yaml:"ignore,omitempty"`
	I18n       *I18nConfig  `mapstructure:"i18n" yaml:"i18n,omitempty"`
	Output     OutputConfig `mapstructure:"output" yaml:"output"`
	Serve      ServeConfig  `mapstructure:"serve" yaml:"serve"`

	// File is the config file that was read, empty when none was found.
	File string `mapstructure:"-" yaml:"-"`
}

// I18nConfig is the i18n section; see approutes.I18n.
type I18nConfig struct {
	Locales       []string `mapstructure:"locales" yaml:"locales"`
	DefaultLocale string   `mapstructure:"default_locale" yaml:"default_locale,omitempty"`
	Strategy      string   `mapstructure:"strategy" yaml:"strategy,omitempty"`
}

// OutputConfig controls where and in which format routes are written.
type OutputConfig struct {
	Path         string `mapstructure:"path" yaml:"path"`
	Format       string `mapstructure:"format" yaml:"format"`
	ImportPrefix string `mapstructure:"import_prefix" yaml:"import_prefix,omitempty"`
}

// ServeConfig configures the inspect server.
type ServeConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

var defaults = map[string]any{
	"source":        approutes.DefaultSource,
	"type":          string(approutes.SourceFolder),
	"output.path":   "src/router/routes.gen.ts",
	"output.format": string(codegen.FormatTS),
	"serve.addr":    "127.0.0.1:7420",
}

// Keys without a default that can still be set from the environment.
var envOnly = []string{
	"extensions",
	"ignore",
	"i18n.locales",
	"i18n.default_locale",
	"i18n.strategy",
	"output.import_prefix",
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	return &Config{
		Source: defaults["source"].(string),
		Type:   defaults["type"].(string),
		Output: OutputConfig{
			Path:   defaults["output.path"].(string),
			Format: defaults["output.format"].(string),
		},
		Serve: ServeConfig{Addr: defaults["serve.addr"].(string)},
	}
}

// Load reads the configuration. path names the config file explicitly; when
// empty, APPROUTES_CONFIG_FILE is consulted and then approutes.yaml in the
// working directory. A missing default file is not an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG_FILE")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(strings.TrimSuffix(FileName, ".yaml"))
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for _, key := range envOnly {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the settings the compiler does not check itself.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Source) == "" {
		return fmt.Errorf("source must not be empty")
	}
	if _, err := codegen.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("output.format: %w", err)
	}
	if strings.TrimSpace(c.Output.Path) == "" {
		return fmt.Errorf("output.path must not be empty")
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("extensions: %q must start with a dot", ext)
		}
	}
	return nil
}

// Format returns the validated output format.
func (c *Config) Format() codegen.Format {
	f, _ := codegen.ParseFormat(c.Output.Format)
	return f
}

// Compiler returns the compiler configuration, listing files from disk.
func (c *Config) Compiler(logger *approutes.Logger) approutes.Config {
	cfg := approutes.Config{
		Source:     c.Source,
		Type:       approutes.SourceKind(c.Type),
		Extensions: c.Extensions,
		Files:      approutes.Dir(c.Source, c.Ignore...),
		Logger:     logger,
	}
	if c.I18n != nil {
		cfg.I18n = &approutes.I18n{
			Locales:       c.I18n.Locales,
			DefaultLocale: c.I18n.DefaultLocale,
			Strategy:      approutes.Strategy(c.I18n.Strategy),
		}
	}
	return cfg
}

// WriteYAML writes c to path. An existing file is never overwritten.
func (c *Config) WriteYAML(path string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	enc := yaml.NewEncoder(f)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
