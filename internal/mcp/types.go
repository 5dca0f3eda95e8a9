package mcp

// ListWindowsInput is the input for the list_windows tool.
type ListWindowsInput struct {
	Mode             string `json:"mode,omitempty" jsonschema:"Capture mode: window or game (default: capture_mode from config). Game mode also excludes blacklisted applications."`
	IncludeMinimized *bool  `json:"include_minimized,omitempty" jsonschema:"Also list minimized and zero-sized windows (default: include_minimized from config)"`
	IncludeSkipped   bool   `json:"include_skipped,omitempty" jsonschema:"When true, also report windows that were skipped and why"`
}

// ListWindowsOutput is the output for the list_windows tool.
type ListWindowsOutput struct {
	Mode    string          `json:"mode"`
	Count   int             `json:"count"`
	Windows []WindowInfo    `json:"windows"`
	Skipped []SkippedWindow `json:"skipped,omitempty"`
}

// GetWindowInfoInput is the input for the get_window_info tool.
type GetWindowInfoInput struct {
	Handle string `json:"handle" jsonschema:"required,Window handle as 0x-prefixed hex or decimal"`
	Mode   string `json:"mode,omitempty" jsonschema:"Capture mode: window or game (default: capture_mode from config)"`
}

// GetWindowInfoOutput is the output for the get_window_info tool.
type GetWindowInfoOutput struct {
	Mode   string     `json:"mode"`
	Window WindowInfo `json:"window"`
}

// WindowInfo is one eligible window. Optional fields are omitted when the
// query behind them failed.
type WindowInfo struct {
	Handle                string  `json:"handle"`
	PID                   uint32  `json:"pid"`
	ExecutableName        string  `json:"executable_name"`
	ExecutablePath        string  `json:"executable_path"`
	CaptureID             string  `json:"capture_id"`
	Title                 *string `json:"title,omitempty"`
	Class                 *string `json:"class,omitempty"`
	ProductName           *string `json:"product_name,omitempty"`
	MonitorID             *string `json:"monitor_id,omitempty"`
	SpansMultipleMonitors *bool   `json:"spans_multiple_monitors,omitempty"`
	CommandLine           *string `json:"command_line,omitempty"`
}

// SkippedWindow is a listed window that produced no record.
type SkippedWindow struct {
	Handle     string `json:"handle"`
	Executable string `json:"executable,omitempty"`
	Reason     string `json:"reason"`
	Detail     string `json:"detail,omitempty"`
}
