//go:build windows

package win32

import (
	"fmt"
	"sync"
	"unsafe"

	"github.com/lxn/win"
	"golang.org/x/sys/windows"

	"github.com/1broseidon/wininfo/internal/platform"
)

// classNameMax is the longest window class name Windows allows.
const classNameMax = 256

// WindowTitle returns the window's caption. An empty caption is reported
// as unavailable.
func WindowTitle(hwnd windows.HWND) (string, error) {
	n, _, callErr := procGetWindowTextLengthW.Call(uintptr(hwnd))
	if int32(n) <= 0 {
		if !windows.IsWindow(hwnd) {
			return "", fmt.Errorf("window %#x title: %w", uintptr(hwnd), platform.ErrInvalidHandle)
		}
		return "", fmt.Errorf("window %#x title: %w: %v", uintptr(hwnd), platform.ErrResourceUnavailable, callErr)
	}

	buf := make([]uint16, int(n)+1)
	copied, _, callErr := procGetWindowTextW.Call(uintptr(hwnd), uintptr(unsafe.Pointer(&buf[0])), uintptr(len(buf)))
	if int32(copied) <= 0 {
		return "", fmt.Errorf("window %#x title: %w: %v", uintptr(hwnd), platform.ErrResourceUnavailable, callErr)
	}
	return windows.UTF16ToString(buf[:copied]), nil
}

// WindowClass returns the registered class name of the window.
func WindowClass(hwnd windows.HWND) (string, error) {
	buf := make([]uint16, classNameMax)
	n, err := windows.GetClassName(hwnd, &buf[0], int32(len(buf)))
	if n <= 0 {
		return "", fmt.Errorf("window %#x class: %w", uintptr(hwnd), classify(err))
	}
	return windows.UTF16ToString(buf[:n]), nil
}

func queryWindowState(hwnd win.HWND) windowState {
	var rc win.RECT
	client := platform.Rect{}
	if win.GetClientRect(hwnd, &rc) {
		client = platform.Rect{
			X:      int(rc.Left),
			Y:      int(rc.Top),
			Width:  int(rc.Right - rc.Left),
			Height: int(rc.Bottom - rc.Top),
		}
	}
	return windowState{
		Visible: win.IsWindowVisible(hwnd),
		Iconic:  win.IsIconic(hwnd),
		Style:   uint32(win.GetWindowLong(hwnd, win.GWL_STYLE)),
		ExStyle: uint32(win.GetWindowLong(hwnd, win.GWL_EXSTYLE)),
		Client:  client,
	}
}

// EnumWindows walks the top-level windows in z-order and returns those the
// capture tool would offer. The calling process's console window is never
// reported. Handles may be stale by the time the caller uses them.
//
// A single callback is registered for the process lifetime; calls are
// serialized because Windows limits the number of callbacks.
func EnumWindows(opts platform.EnumOptions) ([]platform.WindowHandle, error) {
	enumOnce.Do(func() {
		enumCallback = windows.NewCallback(enumWindowsProc)
	})

	enumMu.Lock()
	defer enumMu.Unlock()

	enumState = &enumRun{
		opts:    opts,
		console: consoleWindow(),
	}
	defer func() { enumState = nil }()

	if err := windows.EnumWindows(enumCallback, nil); err != nil {
		return nil, fmt.Errorf("enumerate windows: %w", classify(err))
	}
	return enumState.out, nil
}

type enumRun struct {
	opts    platform.EnumOptions
	console windows.HWND
	out     []platform.WindowHandle
}

var (
	enumOnce     sync.Once
	enumCallback uintptr
	enumMu       sync.Mutex
	enumState    *enumRun
)

func enumWindowsProc(hwnd windows.HWND, _ uintptr) uintptr {
	run := enumState
	if run == nil {
		return 0
	}
	if hwnd == run.console {
		return 1
	}
	if listable(queryWindowState(win.HWND(hwnd)), run.opts) {
		run.out = append(run.out, platform.WindowHandle(hwnd))
	}
	return 1
}
