//go:build windows

package win32

import (
	"golang.org/x/sys/windows"

	"github.com/1broseidon/wininfo/internal/platform"
)

// Backend answers platform queries against the live Windows desktop.
type Backend struct{}

var _ platform.Backend = (*Backend)(nil)

// NewBackend returns a backend bound to the current desktop session.
func NewBackend() (*Backend, error) {
	return &Backend{}, nil
}

func hwnd(h platform.WindowHandle) windows.HWND {
	return windows.HWND(h)
}

func (b *Backend) Windows(opts platform.EnumOptions) ([]platform.WindowHandle, error) {
	return EnumWindows(opts)
}

func (b *Backend) ResolveProcess(h platform.WindowHandle) (platform.ProcessIdentity, error) {
	return ResolveProcess(hwnd(h))
}

func (b *Backend) WindowTitle(h platform.WindowHandle) (string, error) {
	return WindowTitle(hwnd(h))
}

func (b *Backend) WindowClass(h platform.WindowHandle) (string, error) {
	return WindowClass(hwnd(h))
}

func (b *Backend) ProductName(exePath string) (string, error) {
	return ProductName(exePath)
}

func (b *Backend) NearestMonitor(h platform.WindowHandle) (string, error) {
	return NearestMonitor(hwnd(h))
}

func (b *Backend) SpansMultipleMonitors(h platform.WindowHandle) (bool, error) {
	return SpansMultipleMonitors(hwnd(h))
}

func (b *Backend) CommandLine(h platform.WindowHandle) (string, error) {
	return CommandLine(hwnd(h))
}
