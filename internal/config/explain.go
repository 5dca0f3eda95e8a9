package config

import (
	"fmt"
)

// Explain returns the effective value at the given key and where it came
// from.
//
// Supported paths:
//
//	capture_mode
//	include_minimized
//	self_executables
//	system_executables
//	blacklist
//	blacklist_extra
//	output
//	log_level
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}
	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

func lookupValue(cfg *Config, path string) (any, error) {
	switch path {
	case "capture_mode":
		return cfg.CaptureMode, nil
	case "include_minimized":
		return cfg.IncludeMinimized, nil
	case "self_executables":
		return cfg.SelfExecutables, nil
	case "system_executables":
		return cfg.SystemExecutables, nil
	case "blacklist":
		return cfg.Blacklist, nil
	case "blacklist_extra":
		return cfg.BlacklistExtra, nil
	case "output":
		return cfg.Output, nil
	case "log_level":
		return cfg.LogLevel, nil
	default:
		return nil, fmt.Errorf("unknown path: %s", path)
	}
}
