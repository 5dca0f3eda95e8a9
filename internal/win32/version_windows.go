//go:build windows

package win32

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/1broseidon/wininfo/internal/platform"
)

// ProductName reads the ProductName string from the executable's version
// resource, in the system default language with the Unicode code page.
func ProductName(exePath string) (string, error) {
	if exePath == "" {
		return "", fmt.Errorf("version info: %w: empty path", platform.ErrResourceUnavailable)
	}

	size, err := windows.GetFileVersionInfoSize(exePath, nil)
	if err != nil || size == 0 {
		return "", fmt.Errorf("version info size of %s: %w", exePath, classify(err))
	}

	block := make([]byte, size)
	if err := windows.GetFileVersionInfo(exePath, 0, size, unsafe.Pointer(&block[0])); err != nil {
		return "", fmt.Errorf("version info of %s: %w", exePath, classify(err))
	}

	key := ProductNameKey(systemDefaultLangID())
	var value unsafe.Pointer
	var chars uint32
	if err := windows.VerQueryValue(unsafe.Pointer(&block[0]), key, unsafe.Pointer(&value), &chars); err != nil {
		return "", fmt.Errorf("query %s in %s: %w", key, exePath, classify(err))
	}
	if value == nil {
		return "", fmt.Errorf("query %s in %s: %w", key, exePath, platform.ErrResourceUnavailable)
	}

	offset, err := versionValueOffset(uintptr(unsafe.Pointer(&block[0])), uintptr(value))
	if err != nil {
		return "", fmt.Errorf("query %s in %s: %w", key, exePath, err)
	}
	s, err := decodeVersionValue(block, offset, chars)
	if err != nil {
		return "", fmt.Errorf("query %s in %s: %w", key, exePath, err)
	}
	return s, nil
}
