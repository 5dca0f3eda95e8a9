//go:build windows

package win32

import (
	"errors"
	"fmt"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"

	"github.com/1broseidon/wininfo/internal/platform"
	"github.com/1broseidon/wininfo/internal/procmem"
)

// lxn/win and x/sys/windows leave these unwrapped.
var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procGetWindowTextLengthW   = user32.NewProc("GetWindowTextLengthW")
	procGetWindowTextW         = user32.NewProc("GetWindowTextW")
	procGetSystemDefaultLangID = kernel32.NewProc("GetSystemDefaultLangID")
)

// classify maps a Win32 or NT failure onto the platform error taxonomy,
// keeping the original error in the chain. A nil err stands for a call
// that failed without setting the last error.
func classify(err error) error {
	if err == nil {
		return platform.ErrResourceUnavailable
	}
	var errno windows.Errno
	if errors.As(err, &errno) {
		switch errno {
		case windows.ERROR_ACCESS_DENIED:
			return fmt.Errorf("%w: %w", platform.ErrAccessDenied, err)
		case windows.ERROR_INVALID_PARAMETER, windows.ERROR_INVALID_HANDLE, windows.ERROR_INVALID_WINDOW_HANDLE:
			return fmt.Errorf("%w: %w", platform.ErrInvalidHandle, err)
		case windows.ERROR_PARTIAL_COPY:
			return fmt.Errorf("%w: %w", procmem.ErrShortRead, err)
		}
	}
	var status windows.NTStatus
	if errors.As(err, &status) {
		switch status {
		case windows.STATUS_ACCESS_DENIED:
			return fmt.Errorf("%w: %w", platform.ErrAccessDenied, err)
		case windows.STATUS_INVALID_HANDLE, windows.STATUS_INVALID_PARAMETER:
			return fmt.Errorf("%w: %w", platform.ErrInvalidHandle, err)
		}
	}
	return fmt.Errorf("%w: %w", platform.ErrResourceUnavailable, err)
}

func systemDefaultLangID() uint16 {
	r1, _, _ := procGetSystemDefaultLangID.Call()
	return uint16(r1)
}

func consoleWindow() windows.HWND {
	return windows.HWND(win.GetConsoleWindow())
}
