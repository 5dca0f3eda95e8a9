package win32

import "github.com/1broseidon/wininfo/internal/platform"

// Window style bits consulted by the enumerator.
const (
	styleChild        = 0x40000000 // WS_CHILD
	exStyleToolWindow = 0x00000080 // WS_EX_TOOLWINDOW
)

// windowState is the snapshot of a top-level window the enumerator decides
// on. It is gathered per window and never cached.
type windowState struct {
	Visible bool
	Iconic  bool
	Style   uint32
	ExStyle uint32
	Client  platform.Rect
}

// listable applies the capture-tool window search rules: visible
// application windows only, and unless minimized windows are requested,
// nothing minimized or without a client area.
func listable(s windowState, opts platform.EnumOptions) bool {
	if !s.Visible {
		return false
	}
	if s.ExStyle&exStyleToolWindow != 0 {
		return false
	}
	if s.Style&styleChild != 0 {
		return false
	}
	if !opts.IncludeMinimized && (s.Iconic || s.Client.Empty()) {
		return false
	}
	return true
}
