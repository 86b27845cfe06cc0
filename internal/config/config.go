// Package config loads and validates mdprep configuration files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/alnah/go-mdprep/internal/fileutil"
	"github.com/alnah/go-mdprep/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppDir is the directory under the user config dir searched for named configs.
const AppDir = "go-mdprep"

// Field limits.
const (
	MaxTitleLength    = 200
	MaxLanguageLength = 35 // BCP 47 tags are short; this leaves room for extensions
	MaxWorkers        = 32
)

// Accepted values for enumerated fields. Empty means "use the default".
var (
	Formats      = []string{"markdown", "html", "pdf"}
	IndexMatches = []string{"substring", "exact"}
	IndexSorts   = []string{"bytes", "fold", "locale"}
)

// Config holds all configuration for document preparation.
type Config struct {
	Input  InputConfig  `yaml:"input"`
	Output OutputConfig `yaml:"output"`
	Index  IndexConfig  `yaml:"index"`
	Render RenderConfig `yaml:"render"`
	Batch  BatchConfig  `yaml:"batch"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = next to source)
	Format     string `yaml:"format"`     // markdown, html or pdf
}

// IndexConfig controls the Index section builder.
type IndexConfig struct {
	Match    string `yaml:"match"`    // substring or exact
	Sort     string `yaml:"sort"`     // bytes, fold or locale
	Language string `yaml:"language"` // collation language for locale sort
}

// RenderConfig controls HTML and PDF rendering.
type RenderConfig struct {
	Title   string `yaml:"title"`   // HTML <title>; empty uses the file name
	Timeout string `yaml:"timeout"` // Go duration, e.g. "45s"
}

// BatchConfig controls directory conversion.
type BatchConfig struct {
	Workers int `yaml:"workers"` // 0 = auto
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{Format: "markdown"},
		Index:  IndexConfig{Match: "substring", Sort: "bytes"},
	}
}

// Validate checks enumerated fields, lengths and parseable values.
func (c *Config) Validate() error {
	if err := validateChoice("output.format", c.Output.Format, Formats); err != nil {
		return err
	}
	if err := validateChoice("index.match", c.Index.Match, IndexMatches); err != nil {
		return err
	}
	if err := validateChoice("index.sort", c.Index.Sort, IndexSorts); err != nil {
		return err
	}

	if err := validateFieldLength("index.language", c.Index.Language, MaxLanguageLength); err != nil {
		return err
	}
	if c.Index.Language != "" {
		if _, err := language.Parse(c.Index.Language); err != nil {
			return fmt.Errorf("%w: index.language %q: %v", ErrInvalidValue, c.Index.Language, err)
		}
	}

	if err := validateFieldLength("render.title", c.Render.Title, MaxTitleLength); err != nil {
		return err
	}
	if _, err := c.Timeout(); err != nil {
		return err
	}

	if c.Batch.Workers < 0 || c.Batch.Workers > MaxWorkers {
		return fmt.Errorf("%w: batch.workers %d (0 to %d)", ErrInvalidValue, c.Batch.Workers, MaxWorkers)
	}
	return nil
}

// Timeout parses Render.Timeout. An empty value returns zero.
func (c *Config) Timeout() (time.Duration, error) {
	if c.Render.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Render.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: render.timeout %q: %v", ErrInvalidValue, c.Render.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: render.timeout %q must be positive", ErrInvalidValue, c.Render.Timeout)
	}
	return d, nil
}

func validateChoice(field, value string, valid []string) error {
	if value == "" || slices.Contains(valid, value) {
		return nil
	}
	return fmt.Errorf("%w: %s %q (want one of %s)", ErrInvalidValue, field, value, strings.Join(valid, ", "))
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise it's searched as <name>.yaml or <name>.yml in the current
// directory, then in the user config directory under AppDir.
// Fields missing from the file keep their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.DecodeStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// fillDefaults sets empty enumerated fields to their DefaultConfig values.
func (c *Config) fillDefaults() {
	def := DefaultConfig()
	if c.Output.Format == "" {
		c.Output.Format = def.Output.Format
	}
	if c.Index.Match == "" {
		c.Index.Match = def.Index.Match
	}
	if c.Index.Sort == "" {
		c.Index.Sort = def.Index.Sort
	}
}

// SearchPaths returns the candidate files for a config name, in search order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, AppDir, name+ext))
		}
	}
	return paths
}

func resolveConfigPath(name string) (string, error) {
	paths := SearchPaths(name)
	for _, p := range paths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(paths, ", "))
}
