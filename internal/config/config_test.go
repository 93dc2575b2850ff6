package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Output.DefaultFileName != "output.pdf" {
		t.Errorf("Output.DefaultFileName = %q, want %q", cfg.Output.DefaultFileName, "output.pdf")
	}
	if cfg.Output.DefaultDir != "output" {
		t.Errorf("Output.DefaultDir = %q, want %q", cfg.Output.DefaultDir, "output")
	}
	if cfg.Output.CombinedName != "combined.pdf" {
		t.Errorf("Output.CombinedName = %q, want %q", cfg.Output.CombinedName, "combined.pdf")
	}
	if cfg.Sources.Svelte.Dir != "svelte-docs" {
		t.Errorf("Sources.Svelte.Dir = %q, want %q", cfg.Sources.Svelte.Dir, "svelte-docs")
	}
	if cfg.Sources.SvelteKit.CombinedName != "sveltekit-documentation.pdf" {
		t.Errorf("Sources.SvelteKit.CombinedName = %q", cfg.Sources.SvelteKit.CombinedName)
	}
	if cfg.Engine != "" {
		t.Errorf("Engine = %q, want empty (flag default applies)", cfg.Engine)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{"empty value is valid", "", 10, false},
		{"value at limit is valid", "1234567890", 10, false},
		{"value over limit", "12345678901", 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength("field", tt.value, tt.maxLength)
			if tt.wantErr && !errors.Is(err, ErrFieldTooLong) {
				t.Errorf("validateFieldLength() error = %v, want ErrFieldTooLong", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("validateFieldLength() unexpected error: %v", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
		wantMsg string
	}{
		{
			name:   "chromedp engine",
			mutate: func(c *Config) { c.Engine = "chromedp" },
		},
		{
			name:    "unknown engine",
			mutate:  func(c *Config) { c.Engine = "webkit" },
			wantErr: ErrInvalidValue,
			wantMsg: "engine",
		},
		{
			name:   "valid timeout",
			mutate: func(c *Config) { c.Timeout = "90s" },
		},
		{
			name:    "unparsable timeout",
			mutate:  func(c *Config) { c.Timeout = "soon" },
			wantErr: ErrInvalidValue,
			wantMsg: "timeout",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Timeout = "-1s" },
			wantErr: ErrInvalidValue,
			wantMsg: "timeout",
		},
		{
			name:    "scale too small",
			mutate:  func(c *Config) { c.PDF.Scale = 0.05 },
			wantErr: ErrInvalidValue,
			wantMsg: "pdf.scale",
		},
		{
			name:    "scale too large",
			mutate:  func(c *Config) { c.PDF.Scale = 2.5 },
			wantErr: ErrInvalidValue,
			wantMsg: "pdf.scale",
		},
		{
			name:    "scale NaN",
			mutate:  func(c *Config) { c.PDF.Scale = math.NaN() },
			wantErr: ErrInvalidValue,
			wantMsg: "pdf.scale",
		},
		{
			name:   "scale in range",
			mutate: func(c *Config) { c.PDF.Scale = 0.7 },
		},
		{
			name:    "format too long",
			mutate:  func(c *Config) { c.PDF.Format = strings.Repeat("a", MaxFormatLength+1) },
			wantErr: ErrFieldTooLong,
			wantMsg: "pdf.format",
		},
		{
			name:    "margin too long",
			mutate:  func(c *Config) { c.PDF.Margin.Left = strings.Repeat("1", MaxMarginLength+1) },
			wantErr: ErrFieldTooLong,
			wantMsg: "pdf.margin.left",
		},
		{
			name:    "index URL without scheme",
			mutate:  func(c *Config) { c.Sources.Svelte.IndexURL = "svelte.dev/docs" },
			wantErr: ErrInvalidValue,
			wantMsg: "sources.svelte.indexURL",
		},
		{
			name:    "empty exclude pattern",
			mutate:  func(c *Config) { c.Sources.SvelteKit.Exclude = []string{"migrat", " "} },
			wantErr: ErrInvalidValue,
			wantMsg: "sources.sveltekit.exclude[1]",
		},
		{
			name: "too many exclude patterns",
			mutate: func(c *Config) {
				c.Sources.Svelte.Exclude = make([]string, MaxExcludeEntries+1)
			},
			wantErr: ErrInvalidValue,
			wantMsg: "sources.svelte.exclude",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Validate() error = %q, should mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestConfig_TimeoutDuration(t *testing.T) {
	cfg := &Config{}
	d, err := cfg.TimeoutDuration()
	if err != nil || d != 0 {
		t.Errorf("unset TimeoutDuration() = %v, %v; want 0, nil", d, err)
	}

	cfg.Timeout = "2m"
	d, err = cfg.TimeoutDuration()
	if err != nil {
		t.Fatalf("TimeoutDuration() error = %v", err)
	}
	if d != 2*time.Minute {
		t.Errorf("TimeoutDuration() = %v, want 2m", d)
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("valid file path loads config", func(t *testing.T) {
		configPath := writeConfig(t, `engine: chromedp
timeout: 90s
pdf:
  format: letter
  landscape: true
  scale: 0.8
  margin:
    top: 2cm
  printBackground: false
sources:
  svelte:
    exclude:
      - legacy
`)

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Engine != "chromedp" {
			t.Errorf("Engine = %q, want chromedp", cfg.Engine)
		}
		if cfg.PDF.Format != "letter" || !cfg.PDF.Landscape || cfg.PDF.Scale != 0.8 {
			t.Errorf("PDF = %+v", cfg.PDF)
		}
		if cfg.PDF.Margin.Top != "2cm" || cfg.PDF.Margin.Left != "" {
			t.Errorf("PDF.Margin = %+v", cfg.PDF.Margin)
		}
		if cfg.PDF.PrintBackground == nil || *cfg.PDF.PrintBackground {
			t.Error("PDF.PrintBackground should be explicitly false")
		}
		if len(cfg.Sources.Svelte.Exclude) != 1 || cfg.Sources.Svelte.Exclude[0] != "legacy" {
			t.Errorf("Sources.Svelte.Exclude = %v", cfg.Sources.Svelte.Exclude)
		}
	})

	t.Run("unset fields take defaults", func(t *testing.T) {
		configPath := writeConfig(t, "output:\n  defaultDir: pdfs\n")

		cfg, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Output.DefaultDir != "pdfs" {
			t.Errorf("Output.DefaultDir = %q, want pdfs", cfg.Output.DefaultDir)
		}
		if cfg.Output.CombinedName != DefaultCombinedName {
			t.Errorf("Output.CombinedName = %q, want default", cfg.Output.CombinedName)
		}
		if cfg.Sources.SvelteKit.IndexURL != SvelteKitIndexURL {
			t.Errorf("Sources.SvelteKit.IndexURL = %q, want default", cfg.Sources.SvelteKit.IndexURL)
		}
		if cfg.PDF.PrintBackground != nil {
			t.Error("PDF.PrintBackground should stay unset")
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "engine: [unclosed"))
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "engin: rod\n"))
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid value fails validation", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "engine: webkit\n"))
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})
}

func TestLoadConfig_ByName(t *testing.T) {
	// Not parallel: changes the working directory.
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "team.yml"), []byte("engine: rod\n"), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	t.Chdir(dir)

	cfg, err := LoadConfig("team")
	if err != nil {
		t.Fatalf("LoadConfig(team) error = %v", err)
	}
	if cfg.Engine != "rod" {
		t.Errorf("Engine = %q, want rod", cfg.Engine)
	}

	_, err = LoadConfig("missing")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("LoadConfig(missing) error = %v, want ErrConfigNotFound", err)
	}
	if !strings.Contains(err.Error(), "missing.yaml") {
		t.Errorf("error should list tried paths, got %v", err)
	}
}

func TestSearchPaths(t *testing.T) {
	paths := SearchPaths("docs2pdf")
	if len(paths) < 2 {
		t.Fatalf("SearchPaths() = %v, want at least the local candidates", paths)
	}
	if paths[0] != "docs2pdf.yaml" || paths[1] != "docs2pdf.yml" {
		t.Errorf("local candidates = %v, want docs2pdf.yaml then docs2pdf.yml", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, AppName) {
			t.Errorf("user path %q should be under %s", p, AppName)
		}
	}
}

// writeConfig writes content to a temporary YAML file and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "docs2pdf.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return path
}
