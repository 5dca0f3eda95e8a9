package procmem

import (
	"encoding/binary"
	"fmt"
)

// x64 layouts of PEB and RTL_USER_PROCESS_PARAMETERS. Only the prefix up to
// the fields we follow is read.
const (
	pebProcessParametersOffset = 0x20
	pebHeaderSize              = 0x30

	paramsImagePathNameOffset = 0x60
	paramsCommandLineOffset   = 0x70
	paramsSize                = 0x80

	unicodeStringSize = 0x10
)

// unicodeString mirrors UNICODE_STRING: a byte length, a capacity and a
// buffer pointer in the target's address space. It is not NUL-terminated.
type unicodeString struct {
	Length        uint16
	MaximumLength uint16
	Buffer        uint64
}

func parseUnicodeString(b []byte) (unicodeString, error) {
	if len(b) < unicodeStringSize {
		return unicodeString{}, fmt.Errorf("%w: unicode string descriptor of %d bytes", ErrImplausibleLength, len(b))
	}
	return unicodeString{
		Length:        binary.LittleEndian.Uint16(b[0:2]),
		MaximumLength: binary.LittleEndian.Uint16(b[2:4]),
		// b[4:8] is alignment padding.
		Buffer: binary.LittleEndian.Uint64(b[8:16]),
	}, nil
}

func (s unicodeString) validate() error {
	switch {
	case s.Length == 0:
		return fmt.Errorf("%w: empty unicode string", ErrImplausibleLength)
	case s.Length%2 != 0:
		return fmt.Errorf("%w: odd unicode string length %d", ErrImplausibleLength, s.Length)
	case s.MaximumLength != 0 && s.Length > s.MaximumLength:
		return fmt.Errorf("%w: length %d exceeds capacity %d", ErrImplausibleLength, s.Length, s.MaximumLength)
	}
	return checkPointer(s.Buffer)
}

func (s unicodeString) read(r Reader) (string, error) {
	if err := s.validate(); err != nil {
		return "", err
	}
	buf := make([]byte, s.Length)
	if err := ReadForeign(r, uintptr(s.Buffer), buf); err != nil {
		return "", err
	}
	return DecodeUTF16(buf)
}

// readParameters follows PEB.ProcessParameters and returns the fixed-size
// prefix of the parameter block.
func readParameters(r Reader, pebAddr uintptr) ([]byte, error) {
	peb := make([]byte, pebHeaderSize)
	if err := ReadForeign(r, pebAddr, peb); err != nil {
		return nil, fmt.Errorf("read peb: %w", err)
	}

	paramsAddr := binary.LittleEndian.Uint64(peb[pebProcessParametersOffset : pebProcessParametersOffset+8])
	if err := checkPointer(paramsAddr); err != nil {
		return nil, fmt.Errorf("peb process parameters: %w", err)
	}
	if uint64(uintptr(paramsAddr)) != paramsAddr {
		return nil, fmt.Errorf("%w: pointer %#x does not fit this build", ErrNullPointer, paramsAddr)
	}

	params := make([]byte, paramsSize)
	if err := ReadForeign(r, uintptr(paramsAddr), params); err != nil {
		return nil, fmt.Errorf("read process parameters: %w", err)
	}
	return params, nil
}

func readParameterString(r Reader, pebAddr uintptr, offset int, name string) (string, error) {
	params, err := readParameters(r, pebAddr)
	if err != nil {
		return "", err
	}
	desc, err := parseUnicodeString(params[offset : offset+unicodeStringSize])
	if err != nil {
		return "", err
	}
	s, err := desc.read(r)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return s, nil
}

// CommandLine recovers the literal command line of the process whose PEB
// lives at pebAddr in the address space behind r.
func CommandLine(r Reader, pebAddr uintptr) (string, error) {
	return readParameterString(r, pebAddr, paramsCommandLineOffset, "command line")
}

// ImagePath recovers RTL_USER_PROCESS_PARAMETERS.ImagePathName.
func ImagePath(r Reader, pebAddr uintptr) (string, error) {
	return readParameterString(r, pebAddr, paramsImagePathNameOffset, "image path")
}
