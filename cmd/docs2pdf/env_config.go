package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-docs2pdf/internal/config"
)

// envPrefix marks the variables read by docs2pdf.
const envPrefix = "DOCS2PDF_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string        // DOCS2PDF_CONFIG: config file name or path
	Engine     string        // DOCS2PDF_ENGINE: rod or chromedp
	Timeout    time.Duration // DOCS2PDF_TIMEOUT: page load timeout
	OutputDir  string        // DOCS2PDF_OUTPUT_DIR: bulk/urls output directory
	AssetPath  string        // DOCS2PDF_ASSET_PATH: directory holding links/ and styles/
	Format     string        // DOCS2PDF_FORMAT: paper format
	Scale      float64       // DOCS2PDF_SCALE: print scale
}

// knownEnvVars lists valid DOCS2PDF_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"DOCS2PDF_CONFIG":     true,
	"DOCS2PDF_ENGINE":     true,
	"DOCS2PDF_TIMEOUT":    true,
	"DOCS2PDF_OUTPUT_DIR": true,
	"DOCS2PDF_ASSET_PATH": true,
	"DOCS2PDF_FORMAT":     true,
	"DOCS2PDF_SCALE":      true,
	// Read by the doctor command.
	"DOCS2PDF_CONTAINER": true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparsable durations and numbers are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath: getenv("DOCS2PDF_CONFIG"),
		Engine:     getenv("DOCS2PDF_ENGINE"),
		OutputDir:  getenv("DOCS2PDF_OUTPUT_DIR"),
		AssetPath:  getenv("DOCS2PDF_ASSET_PATH"),
		Format:     getenv("DOCS2PDF_FORMAT"),
	}

	if timeout := getenv("DOCS2PDF_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if scale := getenv("DOCS2PDF_SCALE"); scale != "" {
		if s, err := strconv.ParseFloat(scale, 64); err == nil && s > 0 {
			cfg.Scale = s
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized DOCS2PDF_* variables.
// Helps catch typos like DOCS2PDF_TIMOUT.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name := strings.SplitN(kv, "=", 2)[0]
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config file values with environment values.
// This ensures: CLI flags > env vars > config file > defaults
// (CLI flags are applied later).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Engine != "" {
		cfg.Engine = env.Engine
	}
	if env.Timeout > 0 {
		cfg.Timeout = env.Timeout.String()
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.Format != "" {
		cfg.PDF.Format = env.Format
	}
	if env.Scale > 0 {
		cfg.PDF.Scale = env.Scale
	}
}
