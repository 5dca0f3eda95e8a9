package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/1broseidon/wininfo/internal/filter"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.Mode() != filter.ModeWindow {
		t.Fatalf("expected window mode by default, got %v", cfg.Mode())
	}
	if !reflect.DeepEqual(cfg.Blacklist, filter.DefaultBlacklist()) {
		t.Fatalf("expected builtin blacklist, got %v", cfg.Blacklist)
	}
	if w := cfg.validationWarnings(); len(w) != 0 {
		t.Fatalf("expected no warnings for defaults, got %v", w)
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !reflect.DeepEqual(res.Config, DefaultConfig()) {
		t.Fatalf("expected defaults, got %+v", res.Config)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no files, got %v", res.Files)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.CaptureMode != "window" || res.Config.Output != OutputAuto {
		t.Fatalf("expected defaults, got %+v", res.Config)
	}
}

func TestLoadFromPath_ValuesAndExplain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, strings.Join([]string{
		"capture_mode: Game",
		"include_minimized: true",
		"self_executables: [obs64.exe, streamlabs.exe]",
		"blacklist_extra:",
		"  - mygame",
		"output: json",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.Mode() != filter.ModeGame {
		t.Fatalf("expected game mode, got %q", cfg.CaptureMode)
	}
	if !cfg.IncludeMinimized || !cfg.EnumOptions().IncludeMinimized {
		t.Fatalf("expected include_minimized")
	}
	bl := cfg.EffectiveBlacklist()
	if bl[len(bl)-1] != "mygame" || len(bl) != len(filter.DefaultBlacklist())+1 {
		t.Fatalf("expected builtin blacklist plus mygame, got %v", bl)
	}

	f := filter.New(cfg.FilterOptions())
	if v := f.Evaluate("MyGame.exe", cfg.Mode()); v != filter.ExcludedBlacklist {
		t.Fatalf("expected mygame blacklisted, got %v", v)
	}
	if v := f.Evaluate("streamlabs.exe", cfg.Mode()); v != filter.ExcludedSelf {
		t.Fatalf("expected streamlabs self, got %v", v)
	}

	val, src, err := Explain(res, "output")
	if err != nil {
		t.Fatalf("explain output: %v", err)
	}
	if val != "json" || src.Kind != SourceFile || src.Line != 6 || src.File == "" {
		t.Fatalf("unexpected explain output: %v %+v", val, src)
	}

	val, src, err = Explain(res, "log_level")
	if err != nil {
		t.Fatalf("explain log_level: %v", err)
	}
	if val != "info" || src.Kind != SourceDefault {
		t.Fatalf("unexpected explain log_level: %v %+v", val, src)
	}

	if _, _, err := Explain(res, "layouts.grid"); err == nil {
		t.Fatalf("expected unknown path error")
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "unknown_key: 1\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown_key") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to include file path, got %v", err)
	}
}

func TestLoadFromPath_ValidationErrorHasSourceContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "log_level: info\ncapture_mode: monitor\n")

	_, err := LoadFromPath(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if verr.Path != "capture_mode" || verr.Source.Line != 2 {
		t.Fatalf("unexpected validation error: %+v", verr)
	}
	if !strings.Contains(err.Error(), ":2:") {
		t.Fatalf("expected file:line:col prefix, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"bad output", func(c *Config) { c.Output = "xml" }, "output"},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, "log_level"},
		{"empty self entry", func(c *Config) { c.SelfExecutables = []string{" "} }, "self_executables"},
		{"path in system list", func(c *Config) { c.SystemExecutables = []string{`C:\Windows\explorer.exe`} }, "system_executables"},
		{"path in blacklist_extra", func(c *Config) { c.BlacklistExtra = []string{"games/x.exe"} }, "blacklist_extra"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			var verr *ValidationError
			if err := cfg.Validate(); !errors.As(err, &verr) || verr.Path != tt.path {
				t.Fatalf("expected validation error at %s, got %v", tt.path, err)
			}
		})
	}
}

func TestLoadFromPath_IncludeDirectoryOrderAndMainOverrides(t *testing.T) {
	dir := t.TempDir()

	configD := filepath.Join(dir, "config.d")
	if err := os.MkdirAll(configD, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(configD, "10-base.yaml"), "output: table\nblacklist_extra: [one]\n")
	writeFile(t, filepath.Join(configD, "20-override.yaml"), "output: json\nblacklist_extra: [two]\n")
	writeFile(t, filepath.Join(configD, "notes.txt"), "not yaml: [\n")

	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, strings.Join([]string{
		"include:",
		"  - config.d",
		"capture_mode: game",
		"blacklist_extra: [three]",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Output != OutputJSON {
		t.Fatalf("expected later include to win, got %q", res.Config.Output)
	}
	if want := []string{"one", "two", "three"}; !reflect.DeepEqual(res.Config.BlacklistExtra, want) {
		t.Fatalf("expected blacklist_extra %v, got %v", want, res.Config.BlacklistExtra)
	}
	if len(res.Files) != 3 || res.Files[2] != mustCanonical(t, path) {
		t.Fatalf("expected 3 files with main last, got %v", res.Files)
	}
}

func mustCanonical(t *testing.T, path string) string {
	t.Helper()
	c, err := canonicalPath(path)
	if err != nil {
		t.Fatalf("canonical: %v", err)
	}
	return c
}

func TestLoadFromPath_IncludeMissingPathHasContext(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "include:\n  - missing.yaml\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "include") || !strings.Contains(err.Error(), "missing.yaml") {
		t.Fatalf("expected include error, got %v", err)
	}
	if !strings.Contains(err.Error(), ":2:") {
		t.Fatalf("expected error to include file:line:col, got %v", err)
	}
}

func TestLoadFromPath_IncludeCycleDetection(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.yaml")
	b := filepath.Join(dir, "b.yaml")
	writeFile(t, a, "include: b.yaml\n")
	writeFile(t, b, "include: a.yaml\n")

	_, err := LoadFromPath(a)
	if err == nil {
		t.Fatalf("expected cycle error")
	}
	if !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected cycle error, got %v", err)
	}
}

func TestLoadFromPath_Warnings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeFile(t, path, "blacklist_extra: [Firefox, lockapp.exe]\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	joined := strings.Join(res.Warnings, "\n")
	for _, want := range []string{`"Firefox" is already in blacklist`, `"lockapp.exe" is also a system executable`, "no effect when capture_mode is window"} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected warning %q, got:\n%s", want, joined)
		}
	}
}

func TestLoadFromPath_SystemExecutablesExtendBuiltins(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		excluded []string
	}{
		{"empty list keeps builtins", "system_executables: []\n", []string{"lockapp.exe"}},
		{"extra entry", "system_executables: [Widgets]\n", []string{"lockapp.exe", "widgets.exe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			writeFile(t, path, tt.yaml)

			res, err := LoadFromPath(path)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			f := filter.New(res.Config.FilterOptions())
			for _, exe := range tt.excluded {
				if got := f.Evaluate(exe, filter.ModeWindow); got != filter.ExcludedSystem {
					t.Errorf("%s = %v, want %v", exe, got, filter.ExcludedSystem)
				}
			}
		})
	}
}

func TestLoadFromPath_ExplainReportsIncludedFile(t *testing.T) {
	dir := t.TempDir()
	shared := filepath.Join(dir, "shared.yaml")
	writeFile(t, shared, "log_level: debug\noutput: table\n")
	path := filepath.Join(dir, "config.yaml")
	writeFile(t, path, "include: shared.yaml\noutput: json\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	tests := []struct {
		key  string
		val  any
		file string
		line int
	}{
		{"log_level", "debug", mustCanonical(t, shared), 1},
		{"output", "json", mustCanonical(t, path), 2},
	}
	for _, tt := range tests {
		val, src, err := Explain(res, tt.key)
		if err != nil {
			t.Fatalf("explain %s: %v", tt.key, err)
		}
		if val != tt.val || src.File != tt.file || src.Line != tt.line {
			t.Errorf("explain %s = %v from %s, want %v from %s:%d", tt.key, val, src, tt.val, tt.file, tt.line)
		}
	}
}
