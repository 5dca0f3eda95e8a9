//go:build windows

package win32

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/1broseidon/wininfo/internal/platform"
	"github.com/1broseidon/wininfo/internal/procmem"
)

// processReader reads another process's memory through ReadProcessMemory.
type processReader windows.Handle

func (p processReader) ReadAt(addr uintptr, dst []byte) (int, error) {
	var n uintptr
	err := windows.ReadProcessMemory(windows.Handle(p), addr, &dst[0], uintptr(len(dst)), &n)
	if err != nil {
		return int(n), classify(err)
	}
	return int(n), nil
}

// pebAddress asks the kernel where the process's environment block lives.
func pebAddress(h windows.Handle) (uintptr, error) {
	var info windows.PROCESS_BASIC_INFORMATION
	var retLen uint32
	err := windows.NtQueryInformationProcess(h, windows.ProcessBasicInformation,
		unsafe.Pointer(&info), uint32(unsafe.Sizeof(info)), &retLen)
	if err != nil {
		return 0, fmt.Errorf("query basic information: %w", classify(err))
	}
	if retLen != uint32(unsafe.Sizeof(info)) {
		return 0, fmt.Errorf("query basic information: %w: returned %d bytes", platform.ErrInconsistentResponse, retLen)
	}
	return uintptr(unsafe.Pointer(info.PebBaseAddress)), nil
}

// CommandLine recovers the command line the window's owning process was
// started with by walking its PEB.
func CommandLine(hwnd windows.HWND) (string, error) {
	if err := checkPEBLayout(unsafe.Sizeof(uintptr(0))); err != nil {
		return "", err
	}

	pid, _, err := windowOwner(hwnd)
	if err != nil {
		return "", err
	}

	var cmdline string
	err = withProcess(pid, func(h windows.Handle) error {
		peb, err := pebAddress(h)
		if err != nil {
			return err
		}
		cmdline, err = procmem.CommandLine(processReader(h), peb)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("command line of process %d: %w", pid, err)
	}
	return cmdline, nil
}
