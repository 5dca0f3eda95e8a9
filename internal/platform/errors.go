package platform

import "errors"

var (
	// ErrInvalidHandle means the window or process went away between
	// discovery and query.
	ErrInvalidHandle = errors.New("invalid handle")
	// ErrAccessDenied means the OS refused to open the target process.
	ErrAccessDenied = errors.New("access denied")
	// ErrResourceUnavailable means the queried resource does not exist
	// (no version info, no title, no module name).
	ErrResourceUnavailable = errors.New("resource unavailable")
	// ErrInconsistentResponse means the OS or the target process returned
	// lengths or pointers that do not add up.
	ErrInconsistentResponse = errors.New("inconsistent os response")
	// ErrUnsupported is returned by backends on platforms without a live
	// window manager implementation.
	ErrUnsupported = errors.New("window inspection is only supported on windows")
)
