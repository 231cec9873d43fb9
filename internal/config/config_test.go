package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.SrcDir != "src" {
		t.Errorf("expected SrcDir=src, got %s", cfg.SrcDir)
	}
	if cfg.TempDir != ".temp" {
		t.Errorf("expected TempDir=.temp, got %s", cfg.TempDir)
	}
	if cfg.OutDir != "out" {
		t.Errorf("expected OutDir=out, got %s", cfg.OutDir)
	}
	if cfg.Prefix != "" {
		t.Errorf("expected empty prefix, got %q", cfg.Prefix)
	}
	if len(cfg.Documents) != 1 || cfg.Documents[0] != "main" {
		t.Errorf("expected Documents=[main], got %v", cfg.Documents)
	}
	if cfg.Tools.Latexmk != "latexmk" || cfg.Tools.Rsync != "rsync" || cfg.Tools.Biber != "biber" {
		t.Errorf("unexpected tool defaults: %+v", cfg.Tools)
	}
	if cfg.Watch.Engine != WatchEngineLatexmk {
		t.Errorf("expected watch engine latexmk, got %s", cfg.Watch.Engine)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !filepath.IsAbs(cfg.SrcDir) {
		t.Errorf("expected SrcDir resolved to absolute, got %s", cfg.SrcDir)
	}
	if filepath.Base(cfg.SrcDir) != "src" {
		t.Errorf("expected default src dir, got %s", cfg.SrcDir)
	}
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)

	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "nestex.yaml")

	cfg := DefaultConfig()
	cfg.ProjectRoot = tmpDir
	cfg.Prefix = "thesis"
	cfg.Documents = []string{"main", "appendix"}

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Prefix != "thesis" {
		t.Errorf("expected Prefix=thesis, got %s", loaded.Prefix)
	}
	if len(loaded.Documents) != 2 || loaded.Documents[1] != "appendix" {
		t.Errorf("expected Documents=[main appendix], got %v", loaded.Documents)
	}
	if loaded.SrcDir != filepath.Join(tmpDir, "src") {
		t.Errorf("expected SrcDir anchored at project root, got %s", loaded.SrcDir)
	}
}

func TestConfig_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("NESTEX_PREFIX", "draft")
	t.Setenv("NESTEX_OUT_DIR", "build/pdf")
	t.Setenv("NESTEX_WATCH_ENGINE", "internal")
	t.Setenv("NESTEX_WATCH_DEBOUNCE_MS", "250")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Prefix != "draft" {
		t.Errorf("expected Prefix=draft, got %s", cfg.Prefix)
	}
	if filepath.Base(cfg.OutDir) != "pdf" {
		t.Errorf("expected out dir override, got %s", cfg.OutDir)
	}
	if cfg.Watch.Engine != WatchEngineInternal {
		t.Errorf("expected watch engine internal, got %s", cfg.Watch.Engine)
	}
	if cfg.Watch.DebounceMs != 250 {
		t.Errorf("expected debounce 250, got %d", cfg.Watch.DebounceMs)
	}
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults ok", func(c *Config) {}, false},
		{"empty documents", func(c *Config) { c.Documents = nil }, true},
		{"blank document name", func(c *Config) { c.Documents = []string{"main", ""} }, true},
		{"empty src", func(c *Config) { c.SrcDir = "" }, true},
		{"bad watch engine", func(c *Config) { c.Watch.Engine = "polling" }, true},
		{"missing tool", func(c *Config) { c.Tools.Rsync = "" }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr && err == nil {
				t.Errorf("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestPathHelpers(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ProjectRoot = "/proj"
	cfg.SrcDir = "/proj/src"
	cfg.TempDir = "/proj/.temp"
	cfg.OutDir = "/proj/out"

	if got := cfg.SourceFile("main"); got != "/proj/src/main.tex" {
		t.Errorf("SourceFile: got %s", got)
	}
	if got := cfg.ScratchDir("main"); got != "/proj/.temp/main" {
		t.Errorf("ScratchDir: got %s", got)
	}
	// Empty prefix still yields the leading underscore.
	if got := cfg.ArtifactPath("main"); got != "/proj/out/_main.pdf" {
		t.Errorf("ArtifactPath: got %s", got)
	}

	cfg.Prefix = "thesis"
	if got := cfg.ArtifactPath("main"); got != "/proj/out/thesis_main.pdf" {
		t.Errorf("ArtifactPath with prefix: got %s", got)
	}
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"NESTEX_SRC_DIR", "NESTEX_TEMP_DIR", "NESTEX_OUT_DIR",
		"NESTEX_PREFIX", "NESTEX_WATCH_ENGINE", "NESTEX_WATCH_DEBOUNCE_MS",
	} {
		if os.Getenv(k) != "" {
			t.Setenv(k, "")
		}
	}
}
