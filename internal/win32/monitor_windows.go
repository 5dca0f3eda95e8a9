//go:build windows

package win32

import (
	"fmt"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"

	"github.com/1broseidon/wininfo/internal/platform"
)

// monitorInfoEx mirrors MONITORINFOEXW; lxn/win only declares the short form.
type monitorInfoEx struct {
	win.MONITORINFO
	SzDevice [32]uint16
}

// NearestMonitor returns the device name (e.g. `\\.\DISPLAY1`) of the
// monitor closest to the window.
func NearestMonitor(hwnd windows.HWND) (string, error) {
	if !windows.IsWindow(hwnd) {
		return "", fmt.Errorf("window %#x monitor: %w", uintptr(hwnd), platform.ErrInvalidHandle)
	}
	hmon := win.MonitorFromWindow(win.HWND(hwnd), win.MONITOR_DEFAULTTONEAREST)
	if hmon == 0 {
		return "", fmt.Errorf("window %#x monitor: %w", uintptr(hwnd), platform.ErrResourceUnavailable)
	}

	var mi monitorInfoEx
	mi.CbSize = uint32(unsafe.Sizeof(mi))
	if !win.GetMonitorInfo(hmon, (*win.MONITORINFO)(unsafe.Pointer(&mi))) {
		return "", fmt.Errorf("monitor %#x info: %w", uintptr(hmon), platform.ErrResourceUnavailable)
	}
	name := windows.UTF16ToString(mi.SzDevice[:])
	if name == "" {
		return "", fmt.Errorf("monitor %#x device name: %w", uintptr(hmon), platform.ErrResourceUnavailable)
	}
	return name, nil
}

// SpansMultipleMonitors reports whether no single monitor claims the
// window. A miss from the null-on-miss query is the only signal used.
func SpansMultipleMonitors(hwnd windows.HWND) (bool, error) {
	if !windows.IsWindow(hwnd) {
		return false, fmt.Errorf("window %#x monitor: %w", uintptr(hwnd), platform.ErrInvalidHandle)
	}
	return win.MonitorFromWindow(win.HWND(hwnd), win.MONITOR_DEFAULTTONULL) == 0, nil
}
