//go:build !windows

package win32

import (
	"fmt"
	"runtime"

	"github.com/1broseidon/wininfo/internal/platform"
)

// Backend is unavailable off Windows.
type Backend struct {
	platform.Backend
}

// NewBackend always fails on this platform.
func NewBackend() (*Backend, error) {
	return nil, fmt.Errorf("window queries on %s: %w", runtime.GOOS, platform.ErrUnsupported)
}
