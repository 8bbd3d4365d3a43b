// Package config loads rsb settings from defaults, a YAML file, a .env file
// and RSB_* environment variables, in increasing order of precedence.
// Command-line flags are applied last by the caller through Overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apperrors "github.com/FocuswithJustin/rsb-cli/core/errors"
	"github.com/FocuswithJustin/rsb-cli/internal/logging"
	"github.com/FocuswithJustin/rsb-cli/internal/validation"
)

// MinWidth is the narrowest wrap width accepted.
const MinWidth = 20

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds every setting of the command-line tool.
type Config struct {
	CorpusDir string `yaml:"corpus_dir"`
	OSISFile  string `yaml:"osis_file"` // read this OSIS export instead of CorpusDir
	CachePath string `yaml:"cache_path"`
	NoCache   bool   `yaml:"no_cache"`
	Width     int    `yaml:"width"`
	Color     string `yaml:"color"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		CorpusDir: "data",
		CachePath: defaultCachePath(),
		Width:     80,
		Color:     ColorAuto,
		LogLevel:  "warn",
		LogFormat: "text",
	}
}

func defaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "rsb", "corpus.db")
}

// DefaultPath returns $XDG_CONFIG_HOME/rsb/config.yaml or the platform
// equivalent. It returns "" when no config directory can be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "rsb", "config.yaml")
}

// Load builds a Config. An explicit path must exist; with path == "" the
// default location is tried and silently skipped when absent. A .env file in
// the working directory is loaded first without overriding variables that
// are already set.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, &apperrors.ParseError{Format: "config", Path: path, Message: "invalid YAML", Err: err}
			}
			logging.Debug("config file loaded", "path", path)
		case explicit || !errors.Is(err, fs.ErrNotExist):
			return Config{}, apperrors.NewIO("read", path, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ApplyEnv overlays RSB_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	str("RSB_CORPUS_DIR", &c.CorpusDir)
	str("RSB_OSIS_FILE", &c.OSISFile)
	str("RSB_CACHE_PATH", &c.CachePath)
	str("RSB_COLOR", &c.Color)
	str("RSB_LOG_LEVEL", &c.LogLevel)
	str("RSB_LOG_FORMAT", &c.LogFormat)

	if v, ok := lookup("RSB_WIDTH"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return &apperrors.ValidationError{Field: "RSB_WIDTH", Value: v, Message: "not an integer", Err: err}
		}
		c.Width = n
	}
	if v, ok := lookup("RSB_NO_CACHE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return &apperrors.ValidationError{Field: "RSB_NO_CACHE", Value: v, Message: "not a boolean", Err: err}
		}
		c.NoCache = b
	}
	return nil
}

// Overrides carries command-line flag values. Zero values leave the
// setting untouched.
type Overrides struct {
	CorpusDir string
	OSISFile  string
	CachePath string
	NoCache   bool
	Width     int
	Color     string
	LogLevel  string
	LogFormat string
}

// Apply overlays the non-zero fields of o.
func (c *Config) Apply(o Overrides) {
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&c.CorpusDir, o.CorpusDir)
	set(&c.OSISFile, o.OSISFile)
	set(&c.CachePath, o.CachePath)
	set(&c.Color, o.Color)
	set(&c.LogLevel, o.LogLevel)
	set(&c.LogFormat, o.LogFormat)
	if o.Width != 0 {
		c.Width = o.Width
	}
	if o.NoCache {
		c.NoCache = true
	}
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.CorpusDir == "" && c.OSISFile == "" {
		return apperrors.NewValidation("corpus_dir", "no corpus configured")
	}
	for _, p := range []struct{ field, path string }{
		{"corpus_dir", c.CorpusDir},
		{"osis_file", c.OSISFile},
	} {
		if p.path == "" {
			continue
		}
		if err := validation.ValidatePath(p.field, p.path); err != nil {
			return err
		}
	}
	if c.Width < MinWidth {
		return &apperrors.ValidationError{
			Field:   "width",
			Value:   strconv.Itoa(c.Width),
			Message: fmt.Sprintf("must be at least %d", MinWidth),
		}
	}
	switch strings.ToLower(c.Color) {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return &apperrors.ValidationError{Field: "color", Value: c.Color, Message: "must be auto, always or never"}
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return &apperrors.ValidationError{Field: "log_level", Value: c.LogLevel, Message: err.Error()}
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		return &apperrors.ValidationError{Field: "log_format", Value: c.LogFormat, Message: err.Error()}
	}
	if !c.NoCache {
		if c.CachePath == "" {
			return apperrors.NewValidation("cache_path", "empty cache path with caching enabled")
		}
		if err := validation.ValidatePath("cache_path", c.CachePath); err != nil {
			return err
		}
	}
	return nil
}
