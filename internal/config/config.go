package config

import (
	"fmt"
	"strings"

	"github.com/1broseidon/wininfo/internal/filter"
	"github.com/1broseidon/wininfo/internal/platform"
)

// Output formats accepted by the output key.
const (
	OutputAuto  = "auto"
	OutputTable = "table"
	OutputJSON  = "json"
)

// Config is the effective configuration after defaults, includes and the
// main file have been merged.
type Config struct {
	CaptureMode       string   `yaml:"capture_mode"`
	IncludeMinimized  bool     `yaml:"include_minimized"`
	SelfExecutables   []string `yaml:"self_executables"`
	// SystemExecutables extends the built-in system list.
	SystemExecutables []string `yaml:"system_executables"`
	Blacklist         []string `yaml:"blacklist"`
	BlacklistExtra    []string `yaml:"blacklist_extra,omitempty"`
	Output            string   `yaml:"output"`
	LogLevel          string   `yaml:"log_level"`
}

func DefaultConfig() *Config {
	return &Config{
		CaptureMode:       "window",
		IncludeMinimized:  false,
		SelfExecutables:   []string{"obs64.exe"},
		SystemExecutables: []string{},
		Blacklist:         filter.DefaultBlacklist(),
		Output:            OutputAuto,
		LogLevel:          "info",
	}
}

// Mode returns the parsed capture mode. Validate guarantees it parses.
func (c *Config) Mode() filter.CaptureMode {
	mode, err := filter.ParseCaptureMode(c.CaptureMode)
	if err != nil {
		return filter.ModeWindow
	}
	return mode
}

// EffectiveBlacklist is blacklist followed by blacklist_extra.
func (c *Config) EffectiveBlacklist() []string {
	out := make([]string, 0, len(c.Blacklist)+len(c.BlacklistExtra))
	out = append(out, c.Blacklist...)
	return append(out, c.BlacklistExtra...)
}

// FilterOptions converts the executable lists for filter.New.
func (c *Config) FilterOptions() filter.Options {
	return filter.Options{
		SelfExecutables:   append([]string{}, c.SelfExecutables...),
		SystemExecutables: append([]string{}, c.SystemExecutables...),
		Blacklist:         c.EffectiveBlacklist(),
	}
}

func (c *Config) EnumOptions() platform.EnumOptions {
	return platform.EnumOptions{IncludeMinimized: c.IncludeMinimized}
}

func (c *Config) Validate() error {
	if _, err := filter.ParseCaptureMode(c.CaptureMode); err != nil {
		return &ValidationError{Path: "capture_mode", Err: fmt.Errorf("capture_mode must be one of: window, game")}
	}
	switch c.Output {
	case OutputAuto, OutputTable, OutputJSON:
	default:
		return &ValidationError{Path: "output", Err: fmt.Errorf("output must be one of: auto, table, json")}
	}
	if c.LogLevel != "debug" && c.LogLevel != "info" && c.LogLevel != "warning" && c.LogLevel != "error" {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}

	lists := []struct {
		path  string
		names []string
	}{
		{"self_executables", c.SelfExecutables},
		{"system_executables", c.SystemExecutables},
		{"blacklist", c.Blacklist},
		{"blacklist_extra", c.BlacklistExtra},
	}
	for _, l := range lists {
		for i, name := range l.names {
			if err := validateExecutableName(name); err != nil {
				return &ValidationError{Path: l.path, Err: fmt.Errorf("entry %d: %w", i, err)}
			}
		}
	}
	return nil
}

// validateExecutableName rejects entries the filter could never match,
// since it compares base names only.
func validateExecutableName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("executable name must not be empty")
	}
	if strings.ContainsAny(name, `\/`) {
		return fmt.Errorf("%q must be a file name, not a path", name)
	}
	return nil
}

func (c *Config) validationWarnings() []string {
	if c == nil {
		return nil
	}

	var warnings []string

	system := make(map[string]bool)
	for _, name := range append(filter.DefaultSystemExecutables(), c.SystemExecutables...) {
		system[normalizeName(name)] = true
	}
	for _, name := range c.BlacklistExtra {
		if system[normalizeName(name)] {
			warnings = append(warnings, fmt.Sprintf("blacklist entry %q is also a system executable; it is always excluded", name))
		}
	}

	seen := make(map[string]bool, len(c.Blacklist))
	for _, name := range c.Blacklist {
		seen[normalizeName(name)] = true
	}
	for _, name := range c.BlacklistExtra {
		if seen[normalizeName(name)] {
			warnings = append(warnings, fmt.Sprintf("blacklist_extra entry %q is already in blacklist", name))
		}
	}

	if c.Mode() == filter.ModeWindow && len(c.BlacklistExtra) > 0 {
		warnings = append(warnings, "blacklist_extra has no effect when capture_mode is window")
	}

	return warnings
}

func normalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.TrimSuffix(name, ".exe")
}
