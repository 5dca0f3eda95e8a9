// Package procmem reads structures out of another process's address space.
//
// All raw pointer handling is confined to ReadForeign: every hop of a
// pointer chain goes through it, and nothing read from the target is
// trusted as a length or address until it has been checked against the
// destination buffer.
package procmem

import (
	"fmt"

	"golang.org/x/text/encoding/unicode"

	"github.com/1broseidon/wininfo/internal/platform"
)

// Reader reads raw bytes from a foreign address space. It returns the
// number of bytes actually copied into dst.
type Reader interface {
	ReadAt(addr uintptr, dst []byte) (int, error)
}

// ReaderFunc adapts a function to the Reader interface.
type ReaderFunc func(addr uintptr, dst []byte) (int, error)

// ReadAt calls f(addr, dst).
func (f ReaderFunc) ReadAt(addr uintptr, dst []byte) (int, error) {
	return f(addr, dst)
}

const (
	// MaxRead caps a single foreign read. UNICODE_STRING lengths are
	// 16-bit so nothing legitimate is larger.
	MaxRead = 1 << 16

	// maxUserAddress is the top of the x64 user-mode address space.
	maxUserAddress uint64 = 0x00007FFFFFFFFFFF
)

var (
	// ErrNullPointer is returned when a pointer read from the target is
	// zero or outside user-mode address space.
	ErrNullPointer = fmt.Errorf("%w: null or out-of-range foreign pointer", platform.ErrInconsistentResponse)
	// ErrShortRead is returned when the OS copied fewer bytes than asked.
	ErrShortRead = fmt.Errorf("%w: short foreign read", platform.ErrInconsistentResponse)
	// ErrImplausibleLength is returned for lengths that cannot describe a
	// valid buffer.
	ErrImplausibleLength = fmt.Errorf("%w: implausible length", platform.ErrInconsistentResponse)
)

// ReadForeign fills dst with exactly len(dst) bytes from addr in the
// target address space. It is the only place foreign addresses are
// dereferenced.
func ReadForeign(r Reader, addr uintptr, dst []byte) error {
	if err := checkPointer(uint64(addr)); err != nil {
		return err
	}
	if len(dst) == 0 || len(dst) > MaxRead {
		return fmt.Errorf("%w: read of %d bytes", ErrImplausibleLength, len(dst))
	}
	end := uint64(addr) + uint64(len(dst))
	if end < uint64(addr) || end-1 > maxUserAddress {
		return fmt.Errorf("%w: range %#x+%d", ErrNullPointer, addr, len(dst))
	}

	n, err := r.ReadAt(addr, dst)
	if err != nil {
		return fmt.Errorf("read %d bytes at %#x: %w", len(dst), addr, err)
	}
	if n != len(dst) {
		return fmt.Errorf("%w: got %d of %d bytes at %#x", ErrShortRead, n, len(dst), addr)
	}
	return nil
}

func checkPointer(p uint64) error {
	if p == 0 || p > maxUserAddress {
		return fmt.Errorf("%w: %#x", ErrNullPointer, p)
	}
	return nil
}

// DecodeUTF16 decodes little-endian UTF-16 bytes, dropping any trailing
// NUL characters.
func DecodeUTF16(b []byte) (string, error) {
	if len(b)%2 != 0 {
		return "", fmt.Errorf("%w: odd utf-16 byte count %d", ErrImplausibleLength, len(b))
	}
	for len(b) >= 2 && b[len(b)-1] == 0 && b[len(b)-2] == 0 {
		b = b[:len(b)-2]
	}
	out, err := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder().Bytes(b)
	if err != nil {
		return "", fmt.Errorf("%w: decode utf-16: %v", platform.ErrInconsistentResponse, err)
	}
	return string(out), nil
}
