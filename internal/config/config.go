package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	ferrors "git.home.luguber.info/inful/sitebuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/sitebuilder/internal/logfields"
)

// File names tried, in order, when loading a site.
const (
	TOMLFileName = "Config.toml"
	YAMLFileName = "config.yaml"
)

// Config is the site configuration, resolved once per build invocation.
type Config struct {
	Title   string `toml:"title" yaml:"title"`
	Tagline string `toml:"tagline" yaml:"tagline"`
	Domain  string `toml:"domain" yaml:"domain"`

	OutputDir   string `toml:"output_dir" yaml:"output_dir"`
	ContentDir  string `toml:"content_dir" yaml:"content_dir"`
	TemplateDir string `toml:"template_dir" yaml:"template_dir"`

	// Strict aborts the pass on the first malformed page. Nil means the default (true).
	Strict *bool `toml:"strict" yaml:"strict"`

	Serve ServeConfig `toml:"serve" yaml:"serve"`

	// Root is the directory the configuration file was loaded from. Relative
	// directories above are resolved against it.
	Root string `toml:"-" yaml:"-"`
}

// ServeConfig controls the serve command.
type ServeConfig struct {
	Host       string   `toml:"host" yaml:"host"`
	Port       int      `toml:"port" yaml:"port"`
	Debounce   Duration `toml:"debounce" yaml:"debounce"`
	LiveReload *bool    `toml:"live_reload" yaml:"live_reload"`
}

// Duration decodes Go duration strings ("2s", "500ms") from TOML and YAML.
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// IsStrict reports whether malformed pages abort the build.
func (c *Config) IsStrict() bool {
	return c.Strict == nil || *c.Strict
}

// LiveReloadEnabled reports whether serve exposes the reload socket.
func (s ServeConfig) LiveReloadEnabled() bool {
	return s.LiveReload == nil || *s.LiveReload
}

// OutputPath returns the output root resolved against the site root.
func (c *Config) OutputPath() string { return c.resolve(c.OutputDir) }

// ContentPath returns the content root resolved against the site root.
func (c *Config) ContentPath() string { return c.resolve(c.ContentDir) }

// TemplatePath returns the template root resolved against the site root.
func (c *Config) TemplatePath() string { return c.resolve(c.TemplateDir) }

// ServeAddr returns host:port for the serve command.
func (c *Config) ServeAddr() string {
	return fmt.Sprintf("%s:%d", c.Serve.Host, c.Serve.Port)
}

func (c *Config) resolve(dir string) string {
	if filepath.IsAbs(dir) || c.Root == "" {
		return dir
	}
	return filepath.Join(c.Root, dir)
}

// Load reads the site configuration from siteDir. Config.toml is preferred;
// config.yaml is accepted when no TOML file exists.
func Load(siteDir string) (*Config, error) {
	if siteDir == "" {
		siteDir = "."
	}
	if err := loadEnvFiles(siteDir); err != nil {
		slog.Debug("No .env file loaded", logfields.Error(err))
	}

	path, err := locate(siteDir)
	if err != nil {
		return nil, err
	}
	return LoadFile(path)
}

// LoadFile decodes a single configuration file, choosing the decoder by extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to read site configuration").
			Fatal().WithPath(path).Build()
	}

	var cfg Config
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	default:
		_, err = toml.Decode(string(data), &cfg)
	}
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "failed to parse site configuration").
			Fatal().WithPath(path).Build()
	}

	cfg.Root = filepath.Dir(path)
	applyEnvOverrides(&cfg)
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryConfig, "invalid site configuration").
			Fatal().WithPath(path).Build()
	}
	return &cfg, nil
}

func locate(siteDir string) (string, error) {
	for _, name := range []string{TOMLFileName, YAMLFileName} {
		candidate := filepath.Join(siteDir, name)
		_, err := os.Stat(candidate)
		if err == nil {
			return candidate, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", ferrors.WrapError(err, ferrors.CategoryConfig, "failed to stat site configuration").
				Fatal().WithPath(candidate).Build()
		}
	}
	return "", ferrors.ConfigError("site configuration not found").
		WithPath(filepath.Join(siteDir, TOMLFileName)).Build()
}
