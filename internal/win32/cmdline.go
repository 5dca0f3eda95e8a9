package win32

import (
	"fmt"

	"github.com/1broseidon/wininfo/internal/platform"
)

// checkPEBLayout rejects builds whose pointer size does not match the x64
// PEB offsets procmem walks.
func checkPEBLayout(ptrSize uintptr) error {
	if ptrSize != 8 {
		return fmt.Errorf("command line: %w: 64-bit build required, pointers are %d bytes", platform.ErrUnsupported, ptrSize)
	}
	return nil
}
