package win32

import (
	"fmt"

	"github.com/1broseidon/wininfo/internal/platform"
	"github.com/1broseidon/wininfo/internal/procmem"
)

// codePageUnicode is the code page half of a StringFileInfo block name.
const codePageUnicode = 0x04B0

// ProductNameKey builds the VerQueryValue sub-block path for the product
// name in the given language, e.g. `\StringFileInfo\040904B0\ProductName`.
func ProductNameKey(langID uint16) string {
	return versionStringKey(langID, "ProductName")
}

func versionStringKey(langID uint16, name string) string {
	return fmt.Sprintf(`\StringFileInfo\%04X%04X\%s`, langID, codePageUnicode, name)
}

// versionValueOffset turns the pointer VerQueryValue returned into an
// offset within the block starting at base.
func versionValueOffset(base, ptr uintptr) (uint64, error) {
	if ptr < base {
		return 0, fmt.Errorf("%w: version value precedes block", platform.ErrInconsistentResponse)
	}
	return uint64(ptr - base), nil
}

// decodeVersionValue extracts a string value VerQueryValue located at
// offset bytes into block, chars UTF-16 units long including the
// terminator. The span is checked against the block before any byte of it
// is interpreted.
func decodeVersionValue(block []byte, offset uint64, chars uint32) (string, error) {
	if chars == 0 {
		return "", fmt.Errorf("%w: empty version value", platform.ErrResourceUnavailable)
	}
	size := uint64(len(block))
	byteLen := uint64(chars) * 2
	if offset > size || byteLen > size-offset {
		return "", fmt.Errorf("%w: version value at %d+%d outside %d-byte block", platform.ErrInconsistentResponse, offset, byteLen, size)
	}
	s, err := procmem.DecodeUTF16(block[offset : offset+byteLen])
	if err != nil {
		return "", err
	}
	if s == "" {
		return "", fmt.Errorf("%w: empty version value", platform.ErrResourceUnavailable)
	}
	return s, nil
}
