package config

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// BuildEffectiveConfig layers raw over DefaultConfig. It does not validate.
func BuildEffectiveConfig(raw RawConfig) *Config {
	cfg := DefaultConfig()

	if raw.CaptureMode != nil {
		cfg.CaptureMode = strings.ToLower(strings.TrimSpace(*raw.CaptureMode))
	}
	if raw.IncludeMinimized != nil {
		cfg.IncludeMinimized = *raw.IncludeMinimized
	}
	if raw.SelfExecutables != nil {
		cfg.SelfExecutables = raw.SelfExecutables
	}
	if raw.SystemExecutables != nil {
		cfg.SystemExecutables = raw.SystemExecutables
	}
	if raw.Blacklist != nil {
		cfg.Blacklist = raw.Blacklist
	}
	if raw.BlacklistExtra != nil {
		cfg.BlacklistExtra = raw.BlacklistExtra
	}
	if raw.Output != nil {
		cfg.Output = strings.ToLower(strings.TrimSpace(*raw.Output))
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(*raw.LogLevel))
	}

	return cfg
}
