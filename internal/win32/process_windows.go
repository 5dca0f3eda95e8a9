//go:build windows

package win32

import (
	"fmt"

	"golang.org/x/sys/windows"

	"github.com/1broseidon/wininfo/internal/platform"
)

// processAccess is the minimal access needed to read the image name and
// the process's memory.
const processAccess = windows.PROCESS_QUERY_INFORMATION | windows.PROCESS_VM_READ

// windowOwner returns the process and thread that created hwnd.
func windowOwner(hwnd windows.HWND) (pid uint32, tid uint32, err error) {
	if !windows.IsWindow(hwnd) {
		return 0, 0, fmt.Errorf("window %#x: %w", uintptr(hwnd), platform.ErrInvalidHandle)
	}
	tid, err = windows.GetWindowThreadProcessId(hwnd, &pid)
	if pid == 0 {
		if err != nil {
			return 0, 0, fmt.Errorf("window %#x owner: %w: %w", uintptr(hwnd), platform.ErrInvalidHandle, err)
		}
		return 0, 0, fmt.Errorf("window %#x owner: %w", uintptr(hwnd), platform.ErrInvalidHandle)
	}
	return pid, tid, nil
}

// withProcess opens pid, runs fn and closes the handle on every path.
func withProcess(pid uint32, fn func(h windows.Handle) error) error {
	h, err := windows.OpenProcess(processAccess, false, pid)
	if err != nil {
		return fmt.Errorf("open process %d: %w", pid, classify(err))
	}
	defer windows.CloseHandle(h)
	return fn(h)
}

// ResolveProcess maps a window to its owning process and that process's
// main executable.
func ResolveProcess(hwnd windows.HWND) (platform.ProcessIdentity, error) {
	pid, tid, err := windowOwner(hwnd)
	if err != nil {
		return platform.ProcessIdentity{}, err
	}

	var path string
	err = withProcess(pid, func(h windows.Handle) error {
		buf := make([]uint16, windows.MAX_LONG_PATH)
		if err := windows.GetModuleFileNameEx(h, 0, &buf[0], uint32(len(buf))); err != nil {
			return fmt.Errorf("module file name of process %d: %w", pid, classify(err))
		}
		path = windows.UTF16ToString(buf)
		return nil
	})
	if err != nil {
		return platform.ProcessIdentity{}, err
	}
	if path == "" {
		return platform.ProcessIdentity{}, fmt.Errorf("module file name of process %d: %w", pid, platform.ErrResourceUnavailable)
	}

	return platform.ProcessIdentity{
		PID:            pid,
		ThreadID:       tid,
		ExecutablePath: path,
	}, nil
}
