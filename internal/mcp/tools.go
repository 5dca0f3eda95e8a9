package mcp

import (
	"context"
	"fmt"
	"strings"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/wininfo/internal/filter"
	"github.com/1broseidon/wininfo/internal/platform"
	"github.com/1broseidon/wininfo/internal/wininfo"
)

func (s *Server) resolveMode(mode string) (filter.CaptureMode, error) {
	if strings.TrimSpace(mode) == "" {
		return s.config.Mode(), nil
	}
	return filter.ParseCaptureMode(mode)
}

func (s *Server) handleListWindows(ctx context.Context, _ *mcpsdk.CallToolRequest, args ListWindowsInput) (*mcpsdk.CallToolResult, ListWindowsOutput, error) {
	mode, err := s.resolveMode(args.Mode)
	if err != nil {
		return nil, ListWindowsOutput{}, err
	}
	opts := s.config.EnumOptions()
	if args.IncludeMinimized != nil {
		opts.IncludeMinimized = *args.IncludeMinimized
	}

	records, skipped, err := s.collector.CollectAll(ctx, opts, mode)
	if err != nil {
		s.logger.Warn("list_windows failed", "mode", mode.String(), "error", err)
		return nil, ListWindowsOutput{}, err
	}

	out := ListWindowsOutput{
		Mode:    mode.String(),
		Count:   len(records),
		Windows: make([]WindowInfo, 0, len(records)),
	}
	for i := range records {
		out.Windows = append(out.Windows, toWindowInfo(&records[i]))
	}
	if args.IncludeSkipped {
		for _, sk := range skipped {
			out.Skipped = append(out.Skipped, SkippedWindow{
				Handle:     sk.Handle.String(),
				Executable: sk.Executable,
				Reason:     sk.Reason,
				Detail:     sk.Detail,
			})
		}
	}
	return nil, out, nil
}

func (s *Server) handleGetWindowInfo(_ context.Context, _ *mcpsdk.CallToolRequest, args GetWindowInfoInput) (*mcpsdk.CallToolResult, GetWindowInfoOutput, error) {
	h, err := platform.ParseWindowHandle(args.Handle)
	if err != nil {
		return nil, GetWindowInfoOutput{}, fmt.Errorf("invalid handle %q: want 0x-prefixed hex or decimal", args.Handle)
	}
	mode, err := s.resolveMode(args.Mode)
	if err != nil {
		return nil, GetWindowInfoOutput{}, err
	}

	md, err := s.collector.Collect(h, mode)
	if err != nil {
		return nil, GetWindowInfoOutput{}, err
	}
	return nil, GetWindowInfoOutput{
		Mode:   mode.String(),
		Window: toWindowInfo(md),
	}, nil
}

func toWindowInfo(md *wininfo.WindowMetadata) WindowInfo {
	return WindowInfo{
		Handle:                md.Handle.String(),
		PID:                   md.PID,
		ExecutableName:        md.ExecutableName,
		ExecutablePath:        md.ExecutablePath,
		CaptureID:             md.CaptureID(),
		Title:                 md.Title,
		Class:                 md.Class,
		ProductName:           md.ProductName,
		MonitorID:             md.MonitorID,
		SpansMultipleMonitors: md.SpansMultipleMonitors,
		CommandLine:           md.CommandLine,
	}
}
