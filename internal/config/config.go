// Package config holds the nestex project configuration: directory roots,
// the selectable document list, external tool names, and watch settings.
// Configuration is loaded from an optional YAML file with environment
// variable overrides; every field has a working default.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is the config file looked up in the project root when no
// --config flag is given.
const DefaultFileName = "nestex.yaml"

// Config holds all nestex configuration.
type Config struct {
	// ProjectRoot anchors every relative path below. Resolved to an
	// absolute path during Load.
	ProjectRoot string `yaml:"project_root"`

	// SrcDir contains the .tex sources (and the subdirectory structure
	// mirrored into each document's scratch tree).
	SrcDir string `yaml:"src_dir"`

	// TempDir holds one scratch subtree per document.
	TempDir string `yaml:"temp_dir"`

	// OutDir receives the finished artifacts, flat.
	OutDir string `yaml:"out_dir"`

	// Prefix is joined with the document name as <prefix>_<doc>.pdf.
	// May be empty, which still yields the underscore.
	Prefix string `yaml:"prefix"`

	// Documents is the ordered list of selectable document names,
	// extension-less, relative to SrcDir.
	Documents []string `yaml:"documents"`

	Tools ToolsConfig `yaml:"tools"`
	Watch WatchConfig `yaml:"watch"`
}

// ToolsConfig names the external binaries nestex shells out to.
type ToolsConfig struct {
	Latexmk string `yaml:"latexmk"`
	Rsync   string `yaml:"rsync"`
	Biber   string `yaml:"biber"`
}

// Watch engine selection.
const (
	WatchEngineLatexmk  = "latexmk"  // latexmk -pvc, preview-continuous
	WatchEngineInternal = "internal" // fsnotify loop driving full recompiles
)

// WatchConfig configures the watch routine.
type WatchConfig struct {
	// Engine is "latexmk" (preview-continuous mode) or "internal"
	// (fsnotify-driven recompile loop).
	Engine string `yaml:"engine"`

	// DebounceMs coalesces bursts of filesystem events before the
	// internal engine triggers a rebuild.
	DebounceMs int `yaml:"debounce_ms"`
}

// Debounce returns the internal watch debounce as a duration.
func (w WatchConfig) Debounce() time.Duration {
	if w.DebounceMs <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(w.DebounceMs) * time.Millisecond
}

// DefaultConfig returns the built-in defaults, mirroring the conventional
// project layout: src/ sources, .temp/ scratch, out/ artifacts.
func DefaultConfig() *Config {
	return &Config{
		ProjectRoot: ".",
		SrcDir:      "src",
		TempDir:     ".temp",
		OutDir:      "out",
		Prefix:      "",
		Documents:   []string{"main"},
		Tools: ToolsConfig{
			Latexmk: "latexmk",
			Rsync:   "rsync",
			Biber:   "biber",
		},
		Watch: WatchConfig{
			Engine:     WatchEngineLatexmk,
			DebounceMs: 500,
		},
	}
}

// Load loads configuration from a YAML file. A missing file is not an
// error: defaults (plus environment overrides) are returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, cfg.finalize()
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, cfg.finalize()
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("NESTEX_SRC_DIR"); v != "" {
		c.SrcDir = v
	}
	if v := os.Getenv("NESTEX_TEMP_DIR"); v != "" {
		c.TempDir = v
	}
	if v := os.Getenv("NESTEX_OUT_DIR"); v != "" {
		c.OutDir = v
	}
	if v := os.Getenv("NESTEX_PREFIX"); v != "" {
		c.Prefix = v
	}
	if v := os.Getenv("NESTEX_WATCH_ENGINE"); v != "" {
		c.Watch.Engine = v
	}
	if v := os.Getenv("NESTEX_WATCH_DEBOUNCE_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			c.Watch.DebounceMs = ms
		}
	}
}

// finalize resolves paths against the project root and validates fields.
func (c *Config) finalize() error {
	root, err := filepath.Abs(c.ProjectRoot)
	if err != nil {
		return fmt.Errorf("failed to resolve project root: %w", err)
	}
	c.ProjectRoot = root

	c.SrcDir = c.resolve(c.SrcDir)
	c.TempDir = c.resolve(c.TempDir)
	c.OutDir = c.resolve(c.OutDir)

	return c.Validate()
}

// resolve anchors a relative path at the project root.
func (c *Config) resolve(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.ProjectRoot, p)
}

// Validate checks that the configuration is internally usable.
func (c *Config) Validate() error {
	if c.SrcDir == "" {
		return fmt.Errorf("src_dir must not be empty")
	}
	if c.TempDir == "" {
		return fmt.Errorf("temp_dir must not be empty")
	}
	if c.OutDir == "" {
		return fmt.Errorf("out_dir must not be empty")
	}
	if len(c.Documents) == 0 {
		return fmt.Errorf("documents list must not be empty")
	}
	for _, d := range c.Documents {
		if d == "" {
			return fmt.Errorf("documents list contains an empty name")
		}
	}
	switch c.Watch.Engine {
	case WatchEngineLatexmk, WatchEngineInternal:
	default:
		return fmt.Errorf("unknown watch engine %q (want %q or %q)",
			c.Watch.Engine, WatchEngineLatexmk, WatchEngineInternal)
	}
	if c.Tools.Latexmk == "" || c.Tools.Rsync == "" || c.Tools.Biber == "" {
		return fmt.Errorf("tool names must not be empty")
	}
	return nil
}

// SourceFile returns the absolute path of a document's .tex source.
func (c *Config) SourceFile(doc string) string {
	return filepath.Join(c.SrcDir, doc+".tex")
}

// ScratchDir returns the per-document scratch directory.
func (c *Config) ScratchDir(doc string) string {
	return filepath.Join(c.TempDir, doc)
}

// ArtifactPath returns the flat output location for a document's PDF,
// <out>/<prefix>_<doc>.pdf. The underscore is kept even for an empty
// prefix, matching the historical naming.
func (c *Config) ArtifactPath(doc string) string {
	return filepath.Join(c.OutDir, c.Prefix+"_"+doc+".pdf")
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
