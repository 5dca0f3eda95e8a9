package wininfo

import (
	"errors"
	"fmt"
	"strings"

	"github.com/1broseidon/wininfo/internal/filter"
	"github.com/1broseidon/wininfo/internal/platform"
)

// WindowMetadata describes one eligible window. Optional fields are nil
// when the corresponding query failed; each is independent of the others.
type WindowMetadata struct {
	Handle         platform.WindowHandle `json:"handle"`
	PID            uint32                `json:"pid"`
	ThreadID       uint32                `json:"thread_id,omitempty"`
	ExecutableName string                `json:"executable_name"`
	ExecutablePath string                `json:"executable_path"`

	Title                 *string `json:"title,omitempty"`
	Class                 *string `json:"class,omitempty"`
	ProductName           *string `json:"product_name,omitempty"`
	MonitorID             *string `json:"monitor_id,omitempty"`
	SpansMultipleMonitors *bool   `json:"spans_multiple_monitors,omitempty"`
	CommandLine           *string `json:"command_line,omitempty"`
}

// ErrExcluded matches every RejectionError.
var ErrExcluded = errors.New("window excluded")

// RejectionError reports that the eligibility filter refused a window.
type RejectionError struct {
	Handle     platform.WindowHandle
	Executable string
	Verdict    filter.Verdict
}

func (e *RejectionError) Error() string {
	return fmt.Sprintf("window %s (%s): %s", e.Handle, e.Executable, e.Verdict)
}

func (e *RejectionError) Is(target error) bool {
	return target == ErrExcluded
}

// Capture IDs join title, class and executable with ':'. Literal '#' and
// ':' inside a part are escaped so the separators stay unambiguous.
var (
	captureIDEncoder = strings.NewReplacer("#", "#22", ":", "#3A")
	captureIDDecoder = strings.NewReplacer("#3A", ":", "#22", "#")
)

// CaptureTarget is the decoded form of a capture ID.
type CaptureTarget struct {
	Title      string
	Class      string
	Executable string
}

// CaptureID returns the "title:class:exe" identifier capture tools use to
// find this window again. Missing title or class encode as empty parts.
func (m *WindowMetadata) CaptureID() string {
	return EncodeCaptureID(CaptureTarget{
		Title:      deref(m.Title),
		Class:      deref(m.Class),
		Executable: m.ExecutableName,
	})
}

// EncodeCaptureID builds a capture ID from its parts.
func EncodeCaptureID(t CaptureTarget) string {
	return captureIDEncoder.Replace(t.Title) + ":" +
		captureIDEncoder.Replace(t.Class) + ":" +
		captureIDEncoder.Replace(t.Executable)
}

// ParseCaptureID reverses EncodeCaptureID.
func ParseCaptureID(id string) (CaptureTarget, error) {
	parts := strings.Split(id, ":")
	if len(parts) != 3 {
		return CaptureTarget{}, fmt.Errorf("capture id %q: want 3 ':'-separated parts, got %d", id, len(parts))
	}
	return CaptureTarget{
		Title:      captureIDDecoder.Replace(parts[0]),
		Class:      captureIDDecoder.Replace(parts[1]),
		Executable: captureIDDecoder.Replace(parts[2]),
	}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
