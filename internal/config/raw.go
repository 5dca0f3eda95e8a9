package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "blacklist.yaml"
//
// or:
//
//	include:
//	  - "blacklist.yaml"
//	  - "config.d"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

// RawConfig is one file's contents before defaults are applied. Nil means
// the key was absent.
type RawConfig struct {
	Include           IncludeList `yaml:"include"`
	CaptureMode       *string     `yaml:"capture_mode"`
	IncludeMinimized  *bool       `yaml:"include_minimized"`
	SelfExecutables   []string    `yaml:"self_executables"`
	SystemExecutables []string    `yaml:"system_executables"`
	Blacklist         []string    `yaml:"blacklist"`
	BlacklistExtra    []string    `yaml:"blacklist_extra"`
	Output            *string     `yaml:"output"`
	LogLevel          *string     `yaml:"log_level"`
}

// merge applies overlay on top of c. Scalars and lists are replaced, except
// blacklist_extra which accumulates across files.
func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.CaptureMode != nil {
		out.CaptureMode = overlay.CaptureMode
	}
	if overlay.IncludeMinimized != nil {
		out.IncludeMinimized = overlay.IncludeMinimized
	}
	if overlay.SelfExecutables != nil {
		out.SelfExecutables = overlay.SelfExecutables
	}
	if overlay.SystemExecutables != nil {
		out.SystemExecutables = overlay.SystemExecutables
	}
	if overlay.Blacklist != nil {
		out.Blacklist = overlay.Blacklist
	}
	if overlay.BlacklistExtra != nil {
		extra := make([]string, 0, len(out.BlacklistExtra)+len(overlay.BlacklistExtra))
		extra = append(extra, out.BlacklistExtra...)
		out.BlacklistExtra = append(extra, overlay.BlacklistExtra...)
	}
	if overlay.Output != nil {
		out.Output = overlay.Output
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}

	return out
}
