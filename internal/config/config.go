package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-docs2pdf/internal/fileutil"
	"github.com/alnah/go-docs2pdf/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// AppName names the per-user config directory.
const AppName = "docs2pdf"

// Field length limits.
const (
	MaxPathLength     = 4096
	MaxURLLength      = 2048 // Browser limit
	MaxFormatLength   = 10   // "letter", "a4", "tabloid"
	MaxMarginLength   = 16   // "1cm", "0.5in"
	MaxExcludeLength  = 200
	MaxExcludeEntries = 100
)

// Scale bounds, as accepted by the browser print API.
const (
	minScale = 0.1
	maxScale = 2.0
)

// Built-in defaults.
const (
	DefaultFileName     = "output.pdf"
	DefaultDir          = "output"
	DefaultCombinedName = "combined.pdf"

	SvelteIndexURL        = "https://svelte.dev/docs/svelte/overview"
	SvelteDir             = "svelte-docs"
	SvelteCombinedName    = "svelte-documentation.pdf"
	SvelteKitIndexURL     = "https://svelte.dev/docs/kit/introduction"
	SvelteKitDir          = "sveltekit-docs"
	SvelteKitCombinedName = "sveltekit-documentation.pdf"
)

// Config holds all settings that can come from a config file.
// Zero values mean "not set": flags and built-in defaults apply.
type Config struct {
	Engine  string        `yaml:"engine"`  // "rod" or "chromedp"
	Timeout string        `yaml:"timeout"` // Go duration, e.g. "90s"
	PDF     PDFConfig     `yaml:"pdf"`
	Output  OutputConfig  `yaml:"output"`
	Assets  AssetsConfig  `yaml:"assets"`
	Sources SourcesConfig `yaml:"sources"`
}

// PDFConfig mirrors the browser print options.
type PDFConfig struct {
	Format          string       `yaml:"format"`          // "a4", "letter", ...
	Landscape       bool         `yaml:"landscape"`       // default: portrait
	Scale           float64      `yaml:"scale"`           // 0.1 to 2.0
	Margin          MarginConfig `yaml:"margin"`          // CSS lengths
	PrintBackground *bool        `yaml:"printBackground"` // nil = default (true)
}

// MarginConfig holds page margins as CSS lengths ("1cm", "0.5in", "10mm").
type MarginConfig struct {
	Top    string `yaml:"top"`
	Right  string `yaml:"right"`
	Bottom string `yaml:"bottom"`
	Left   string `yaml:"left"`
}

// OutputConfig defines output naming.
type OutputConfig struct {
	DefaultFileName string `yaml:"defaultFileName"` // convert output
	DefaultDir      string `yaml:"defaultDir"`      // bulk/urls output directory
	CombinedName    string `yaml:"combinedName"`    // merged PDF name
}

// AssetsConfig defines where link lists and styles are looked up on disk.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = current directory, then embedded
}

// SourcesConfig groups the curated documentation sources.
type SourcesConfig struct {
	Svelte    SourceConfig `yaml:"svelte"`
	SvelteKit SourceConfig `yaml:"sveltekit"`
}

// SourceConfig describes one curated documentation source.
type SourceConfig struct {
	IndexURL     string   `yaml:"indexURL"`     // page whose navigation lists the docs
	Dir          string   `yaml:"dir"`          // output directory
	CombinedName string   `yaml:"combinedName"` // merged PDF name
	Exclude      []string `yaml:"exclude"`      // substrings filtered out of the list
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			DefaultFileName: DefaultFileName,
			DefaultDir:      DefaultDir,
			CombinedName:    DefaultCombinedName,
		},
		Sources: SourcesConfig{
			Svelte: SourceConfig{
				IndexURL:     SvelteIndexURL,
				Dir:          SvelteDir,
				CombinedName: SvelteCombinedName,
			},
			SvelteKit: SourceConfig{
				IndexURL:     SvelteKitIndexURL,
				Dir:          SvelteKitDir,
				CombinedName: SvelteKitCombinedName,
			},
		},
	}
}

// applyDefaults fills every unset field from DefaultConfig.
func (c *Config) applyDefaults() {
	d := DefaultConfig()
	setDefault(&c.Output.DefaultFileName, d.Output.DefaultFileName)
	setDefault(&c.Output.DefaultDir, d.Output.DefaultDir)
	setDefault(&c.Output.CombinedName, d.Output.CombinedName)
	c.Sources.Svelte.applyDefaults(d.Sources.Svelte)
	c.Sources.SvelteKit.applyDefaults(d.Sources.SvelteKit)
}

func (s *SourceConfig) applyDefaults(d SourceConfig) {
	setDefault(&s.IndexURL, d.IndexURL)
	setDefault(&s.Dir, d.Dir)
	setDefault(&s.CombinedName, d.CombinedName)
}

func setDefault(field *string, value string) {
	if strings.TrimSpace(*field) == "" {
		*field = value
	}
}

// TimeoutDuration parses Timeout. Returns 0 when unset.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout: %v", ErrInvalidValue, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: timeout: must be positive, got %s", ErrInvalidValue, c.Timeout)
	}
	return d, nil
}

// Validate checks values that can be verified without the renderer.
// Paper formats and margin units are checked when PDF options are built.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Engine) {
	case "", "rod", "chromedp":
	default:
		return fmt.Errorf("%w: engine: %q (must be rod or chromedp)", ErrInvalidValue, c.Engine)
	}

	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	if c.PDF.Scale != 0 && (math.IsNaN(c.PDF.Scale) || c.PDF.Scale < minScale || c.PDF.Scale > maxScale) {
		return fmt.Errorf("%w: pdf.scale: must be between %.1f and %.1f, got %.2f", ErrInvalidValue, minScale, maxScale, c.PDF.Scale)
	}

	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"pdf.format", c.PDF.Format, MaxFormatLength},
		{"pdf.margin.top", c.PDF.Margin.Top, MaxMarginLength},
		{"pdf.margin.right", c.PDF.Margin.Right, MaxMarginLength},
		{"pdf.margin.bottom", c.PDF.Margin.Bottom, MaxMarginLength},
		{"pdf.margin.left", c.PDF.Margin.Left, MaxMarginLength},
		{"output.defaultFileName", c.Output.DefaultFileName, MaxPathLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
		{"output.combinedName", c.Output.CombinedName, MaxPathLength},
		{"assets.basePath", c.Assets.BasePath, MaxPathLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if err := c.Sources.Svelte.validate("sources.svelte"); err != nil {
		return err
	}
	return c.Sources.SvelteKit.validate("sources.sveltekit")
}

func (s *SourceConfig) validate(prefix string) error {
	if err := validateFieldLength(prefix+".indexURL", s.IndexURL, MaxURLLength); err != nil {
		return err
	}
	if s.IndexURL != "" && !fileutil.IsURL(s.IndexURL) {
		return fmt.Errorf("%w: %s.indexURL: must start with http:// or https://", ErrInvalidValue, prefix)
	}
	if err := validateFieldLength(prefix+".dir", s.Dir, MaxPathLength); err != nil {
		return err
	}
	if err := validateFieldLength(prefix+".combinedName", s.CombinedName, MaxPathLength); err != nil {
		return err
	}
	if len(s.Exclude) > MaxExcludeEntries {
		return fmt.Errorf("%w: %s.exclude: %d entries (max %d)", ErrInvalidValue, prefix, len(s.Exclude), MaxExcludeEntries)
	}
	for i, e := range s.Exclude {
		name := fmt.Sprintf("%s.exclude[%d]", prefix, i)
		if strings.TrimSpace(e) == "" {
			return fmt.Errorf("%w: %s: empty pattern", ErrInvalidValue, name)
		}
		if err := validateFieldLength(name, e, MaxExcludeLength); err != nil {
			return err
		}
	}
	return nil
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
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
// Unset fields are filled from DefaultConfig.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
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
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

// SearchPaths lists where a config name is looked up, in order.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, AppName, name+ext))
		}
	}
	return paths
}

// resolveConfigPath searches for a config file by name in standard locations:
// the current directory, then the user config directory (e.g. ~/.config/docs2pdf/).
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
