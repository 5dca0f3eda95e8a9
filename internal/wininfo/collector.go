// Package wininfo resolves top-level windows into capture metadata.
package wininfo

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/hashicorp/go-multierror"

	"github.com/1broseidon/wininfo/internal/filter"
	"github.com/1broseidon/wininfo/internal/platform"
)

// Collector turns window handles into WindowMetadata. It holds no
// per-window state; every call queries the OS afresh.
type Collector struct {
	backend platform.Backend
	filter  *filter.Filter
	logger  *slog.Logger
}

// NewCollector creates a collector. A nil logger discards output.
func NewCollector(backend platform.Backend, f *filter.Filter, logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Collector{
		backend: backend,
		filter:  f,
		logger:  logger,
	}
}

// Collect resolves the owning process of h, applies the eligibility filter
// for mode and gathers the remaining fields best-effort. It returns a
// *RejectionError when the filter refuses the window, and a platform error
// when the owning process cannot be resolved.
func (c *Collector) Collect(h platform.WindowHandle, mode filter.CaptureMode) (*WindowMetadata, error) {
	id, err := c.backend.ResolveProcess(h)
	if err != nil {
		return nil, fmt.Errorf("resolve window %s: %w", h, err)
	}
	exe := id.ExecutableName()
	if exe == "" {
		return nil, fmt.Errorf("resolve window %s: %w: no executable name in %q", h, platform.ErrResourceUnavailable, id.ExecutablePath)
	}

	if v := c.filter.Evaluate(exe, mode); v != filter.Eligible {
		return nil, &RejectionError{Handle: h, Executable: exe, Verdict: v}
	}

	md := WindowMetadata{
		Handle:         h,
		PID:            id.PID,
		ThreadID:       id.ThreadID,
		ExecutableName: exe,
		ExecutablePath: id.ExecutablePath,
	}

	var fieldErrs *multierror.Error
	optional := func(name string, dst **string, query func() (string, error)) {
		v, err := query()
		if err != nil {
			fieldErrs = multierror.Append(fieldErrs, fmt.Errorf("%s: %w", name, err))
			return
		}
		*dst = &v
	}

	optional("title", &md.Title, func() (string, error) { return c.backend.WindowTitle(h) })
	optional("class", &md.Class, func() (string, error) { return c.backend.WindowClass(h) })
	optional("product name", &md.ProductName, func() (string, error) { return c.backend.ProductName(id.ExecutablePath) })
	optional("monitor", &md.MonitorID, func() (string, error) { return c.backend.NearestMonitor(h) })
	if spans, err := c.backend.SpansMultipleMonitors(h); err != nil {
		fieldErrs = multierror.Append(fieldErrs, fmt.Errorf("monitor span: %w", err))
	} else {
		md.SpansMultipleMonitors = &spans
	}
	optional("command line", &md.CommandLine, func() (string, error) { return c.backend.CommandLine(h) })

	if err := fieldErrs.ErrorOrNil(); err != nil {
		c.logger.Debug("window metadata incomplete",
			"handle", h.String(),
			"exe", exe,
			"missing", len(fieldErrs.Errors),
			"error", err,
		)
	}
	return &md, nil
}

// Skip records a window CollectAll left out and why.
type Skip struct {
	Handle     platform.WindowHandle `json:"handle"`
	Executable string                `json:"executable,omitempty"`
	Reason     string                `json:"reason"`
	Detail     string                `json:"detail,omitempty"`
	Err        error                 `json:"-"`
}

// Skip reasons other than filter verdicts.
const (
	ReasonInvalidHandle = "invalid-handle"
	ReasonAccessDenied  = "access-denied"
	ReasonUnresolved    = "unresolved"
)

func skipFor(h platform.WindowHandle, err error) Skip {
	s := Skip{Handle: h, Detail: err.Error(), Err: err}
	var rej *RejectionError
	switch {
	case errors.As(err, &rej):
		s.Executable = rej.Executable
		s.Reason = rej.Verdict.String()
	case errors.Is(err, platform.ErrInvalidHandle):
		s.Reason = ReasonInvalidHandle
	case errors.Is(err, platform.ErrAccessDenied):
		s.Reason = ReasonAccessDenied
	default:
		s.Reason = ReasonUnresolved
	}
	return s
}

// CollectAll enumerates the desktop and collects every listed window in
// order. Per-window failures become Skips; only enumeration failure or
// cancellation of ctx is returned as an error, together with whatever was
// collected before it.
func (c *Collector) CollectAll(ctx context.Context, opts platform.EnumOptions, mode filter.CaptureMode) ([]WindowMetadata, []Skip, error) {
	handles, err := c.backend.Windows(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("enumerate windows: %w", err)
	}

	var out []WindowMetadata
	var skipped []Skip
	for _, h := range handles {
		if err := ctx.Err(); err != nil {
			return out, skipped, err
		}
		md, err := c.Collect(h, mode)
		if err != nil {
			s := skipFor(h, err)
			c.logger.Debug("window skipped", "handle", h.String(), "reason", s.Reason, "error", err)
			skipped = append(skipped, s)
			continue
		}
		out = append(out, *md)
	}

	c.logger.Debug("windows collected", "mode", mode.String(), "listed", len(handles), "eligible", len(out), "skipped", len(skipped))
	return out, skipped, nil
}
