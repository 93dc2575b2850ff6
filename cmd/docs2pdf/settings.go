package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	docs2pdf "github.com/alnah/go-docs2pdf"
	"github.com/alnah/go-docs2pdf/internal/assets"
	"github.com/alnah/go-docs2pdf/internal/config"
	"github.com/alnah/go-docs2pdf/internal/fileutil"
	"github.com/alnah/go-docs2pdf/internal/hints"
)

// defaultAssetDir is searched for links/ and styles/ before the embedded copies.
const defaultAssetDir = "."

// loadConfig builds the configuration of one run: defaults, then the config
// file (--config or DOCS2PDF_CONFIG), then DOCS2PDF_* overrides.
// Flags are applied by each command afterwards.
func loadConfig(flagConfig string, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(env.Stderr, env.Environ())

	name := flagConfig
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// buildPDFOptions layers config values and flags over DefaultPDFOptions.
func buildPDFOptions(cfg *config.Config, f pdfFlags) (*docs2pdf.PDFOptions, error) {
	opts := docs2pdf.DefaultPDFOptions()

	if cfg.PDF.Format != "" {
		opts.Format = cfg.PDF.Format
	}
	if cfg.PDF.Landscape {
		opts.Landscape = true
	}
	if cfg.PDF.Scale != 0 {
		opts.Scale = cfg.PDF.Scale
	}
	setIfNotEmpty(&opts.Margin.Top, cfg.PDF.Margin.Top)
	setIfNotEmpty(&opts.Margin.Right, cfg.PDF.Margin.Right)
	setIfNotEmpty(&opts.Margin.Bottom, cfg.PDF.Margin.Bottom)
	setIfNotEmpty(&opts.Margin.Left, cfg.PDF.Margin.Left)
	if cfg.PDF.PrintBackground != nil {
		opts.PrintBackground = *cfg.PDF.PrintBackground
	}

	if f.format != "" {
		opts.Format = f.format
	}
	if f.landscape {
		opts.Landscape = true
	}
	if f.scale != 0 {
		opts.Scale = f.scale
	}
	if f.margin != "" {
		opts.Margin = docs2pdf.UniformMargin(f.margin)
	}
	if f.noBackground {
		opts.PrintBackground = false
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

func setIfNotEmpty(field *string, value string) {
	if strings.TrimSpace(value) != "" {
		*field = value
	}
}

// newAssetResolver returns the resolver for link lists and styles.
// The configured directory (default: current directory) wins over the
// embedded assets.
func newAssetResolver(cfg *config.Config) (*assets.AssetResolver, error) {
	return assets.NewAssetResolver(assetDir(cfg))
}

func assetDir(cfg *config.Config) string {
	if cfg.Assets.BasePath != "" {
		return cfg.Assets.BasePath
	}
	return defaultAssetDir
}

// resolveTimeout returns the page load timeout: flag, then config.
// Zero means the converter default.
func resolveTimeout(flagValue string, cfg *config.Config) (time.Duration, error) {
	if flagValue != "" {
		d, err := time.ParseDuration(flagValue)
		if err != nil {
			return 0, fmt.Errorf("%w: %q: %v", ErrInvalidTimeout, flagValue, err)
		}
		if d <= 0 {
			return 0, fmt.Errorf("%w: %q: must be positive", ErrInvalidTimeout, flagValue)
		}
		return d, nil
	}
	return cfg.TimeoutDuration()
}

// resolveRendererOptions picks engine, timeout and print style.
func resolveRendererOptions(cfg *config.Config, f browserFlags, loader assets.AssetLoader) (rendererOptions, error) {
	engine := f.engine
	if engine == "" {
		engine = cfg.Engine
	}
	if engine == "" {
		engine = docs2pdf.EngineRod
	}
	if !docs2pdf.IsValidEngine(engine) {
		return rendererOptions{}, fmt.Errorf("%w: %q (must be %s or %s)", docs2pdf.ErrUnknownEngine, engine, docs2pdf.EngineRod, docs2pdf.EngineChromedp)
	}

	timeout, err := resolveTimeout(f.timeout, cfg)
	if err != nil {
		return rendererOptions{}, err
	}

	style, err := loader.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return rendererOptions{}, fmt.Errorf("loading print style: %w", err)
	}

	return rendererOptions{Engine: engine, Timeout: timeout, Style: style}, nil
}

// session is what a page-printing command prepares before its first page.
type session struct {
	cfg      *config.Config
	pdf      *docs2pdf.PDFOptions
	assets   *assets.AssetResolver
	renderer Renderer
}

// openSession loads configuration, resolves print options and creates the
// renderer. The caller must Close the renderer.
func openSession(f renderFlags, env *Environment) (*session, error) {
	cfg, err := loadConfig(f.common.config, env)
	if err != nil {
		return nil, err
	}

	pdf, err := buildPDFOptions(cfg, f.pdf)
	if err != nil {
		return nil, err
	}

	resolver, err := newAssetResolver(cfg)
	if err != nil {
		return nil, err
	}

	ropts, err := resolveRendererOptions(cfg, f.browser, resolver)
	if err != nil {
		return nil, err
	}

	r, err := env.NewRenderer(ropts)
	if err != nil {
		return nil, err
	}

	return &session{cfg: cfg, pdf: pdf, assets: resolver, renderer: r}, nil
}
