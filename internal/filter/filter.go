// Package filter decides whether a window's owning executable may be
// offered for capture.
package filter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// CaptureMode selects which exclusion rules apply.
type CaptureMode int

const (
	// ModeWindow captures a single window; the blacklist does not apply.
	ModeWindow CaptureMode = iota
	// ModeGame hooks the process; known unhookable applications are refused.
	ModeGame
)

func (m CaptureMode) String() string {
	switch m {
	case ModeWindow:
		return "window"
	case ModeGame:
		return "game"
	default:
		return fmt.Sprintf("CaptureMode(%d)", int(m))
	}
}

// ParseCaptureMode accepts "window" or "game" in any case.
func ParseCaptureMode(s string) (CaptureMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "window":
		return ModeWindow, nil
	case "game":
		return ModeGame, nil
	default:
		return ModeWindow, fmt.Errorf("unknown capture mode %q (want window or game)", s)
	}
}

// Verdict is the outcome of evaluating an executable.
type Verdict int

const (
	Eligible Verdict = iota
	ExcludedSystem
	ExcludedSelf
	ExcludedBlacklist
)

func (v Verdict) String() string {
	switch v {
	case Eligible:
		return "eligible"
	case ExcludedSystem:
		return "excluded-system"
	case ExcludedSelf:
		return "excluded-self"
	case ExcludedBlacklist:
		return "excluded-blacklist"
	default:
		return fmt.Sprintf("Verdict(%d)", int(v))
	}
}

// Options configures a Filter. A nil Blacklist falls back to the built-in
// list; an empty non-nil one disables the blacklist rule. The built-in
// system list always applies.
type Options struct {
	// SelfExecutables are added to the running binary's own name.
	SelfExecutables []string
	// SystemExecutables are added to the built-in system list.
	SystemExecutables []string
	// Blacklist replaces the built-in game capture blacklist.
	Blacklist []string
}

// Filter evaluates executable names against the system, self and
// blacklist rules. It is safe for concurrent use.
type Filter struct {
	mu        sync.RWMutex
	system    map[string]bool
	self      map[string]bool
	blacklist map[string]bool
}

// New builds a filter from opts.
func New(opts Options) *Filter {
	system := make([]string, 0, len(systemExecutables)+len(opts.SystemExecutables))
	system = append(system, systemExecutables...)
	system = append(system, opts.SystemExecutables...)
	blacklist := opts.Blacklist
	if blacklist == nil {
		blacklist = gameBlacklist
	}

	self := append([]string(nil), opts.SelfExecutables...)
	if exe, err := os.Executable(); err == nil {
		self = append(self, filepath.Base(exe))
	}

	return &Filter{
		system:    nameSet(system),
		self:      nameSet(self),
		blacklist: nameSet(blacklist),
	}
}

// UpdateBlacklist replaces the game capture blacklist.
func (f *Filter) UpdateBlacklist(names []string) {
	set := nameSet(names)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.blacklist = set
}

// Evaluate applies the rules in order: system, self, then the blacklist
// when mode is ModeGame. exe is a base name such as "notepad.exe".
func (f *Filter) Evaluate(exe string, mode CaptureMode) Verdict {
	name := normalize(exe)

	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.system[name] || hasSystemPrefix(name) {
		return ExcludedSystem
	}
	if f.self[name] {
		return ExcludedSelf
	}
	if mode == ModeGame && f.blacklist[name] {
		return ExcludedBlacklist
	}
	return Eligible
}

func hasSystemPrefix(name string) bool {
	for _, p := range systemPrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	return false
}

// normalize lower-cases a name and gives it an ".exe" suffix so list
// entries may be written either way.
func normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}
	if !strings.HasSuffix(name, ".exe") {
		name += ".exe"
	}
	return name
}

func nameSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		if n = normalize(n); n != "" {
			set[n] = true
		}
	}
	return set
}
