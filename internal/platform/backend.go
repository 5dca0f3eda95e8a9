package platform

import (
	"path/filepath"
	"strconv"
	"strings"
)

// WindowHandle is an opaque, OS-assigned identifier for a top-level window.
// It may become invalid at any time between queries.
type WindowHandle uintptr

// String renders the handle in the hex form Windows tooling uses.
func (h WindowHandle) String() string {
	return "0x" + strings.ToUpper(strconv.FormatUint(uint64(h), 16))
}

// ParseWindowHandle accepts decimal or 0x-prefixed hexadecimal handles.
func ParseWindowHandle(s string) (WindowHandle, error) {
	s = strings.TrimSpace(s)
	v, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, err
	}
	return WindowHandle(v), nil
}

// MarshalText encodes the handle as its hex string.
func (h WindowHandle) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

// UnmarshalText accepts the forms ParseWindowHandle does.
func (h *WindowHandle) UnmarshalText(b []byte) error {
	v, err := ParseWindowHandle(string(b))
	if err != nil {
		return err
	}
	*h = v
	return nil
}

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// ProcessIdentity is the owning process of a window.
type ProcessIdentity struct {
	PID            uint32
	ThreadID       uint32
	ExecutablePath string
}

// ExecutableName returns the base name of the executable path.
func (p ProcessIdentity) ExecutableName() string {
	if p.ExecutablePath == "" {
		return ""
	}
	// Windows paths arrive with backslashes; filepath.Base only splits on
	// them when built for Windows.
	path := strings.ReplaceAll(p.ExecutablePath, `\`, "/")
	name := filepath.Base(path)
	if name == "." || name == "/" {
		return ""
	}
	return name
}

// EnumOptions controls which windows the enumerator reports.
type EnumOptions struct {
	// IncludeMinimized also reports minimized and zero-sized windows.
	IncludeMinimized bool
}

// Backend abstracts the window-manager and process queries the aggregator
// needs. Every method is a blocking, read-only OS query; errors wrap one of
// the sentinel errors in this package.
type Backend interface {
	Windows(opts EnumOptions) ([]WindowHandle, error)
	ResolveProcess(h WindowHandle) (ProcessIdentity, error)
	WindowTitle(h WindowHandle) (string, error)
	WindowClass(h WindowHandle) (string, error)
	ProductName(exePath string) (string, error)
	NearestMonitor(h WindowHandle) (string, error)
	SpansMultipleMonitors(h WindowHandle) (bool, error)
	CommandLine(h WindowHandle) (string, error)
}
