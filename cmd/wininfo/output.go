package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/1broseidon/wininfo/internal/config"
	"github.com/1broseidon/wininfo/internal/filter"
	"github.com/1broseidon/wininfo/internal/wininfo"
)

const maxTitleWidth = 48

type listDocument struct {
	Mode    string                   `json:"mode"`
	Windows []wininfo.WindowMetadata `json:"windows"`
	Skipped []wininfo.Skip           `json:"skipped,omitempty"`
}

func writeList(w io.Writer, format string, mode filter.CaptureMode, records []wininfo.WindowMetadata, skipped []wininfo.Skip) error {
	if format == config.OutputJSON {
		if records == nil {
			records = []wininfo.WindowMetadata{}
		}
		return writeJSON(w, listDocument{Mode: mode.String(), Windows: records, Skipped: skipped})
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "HANDLE\tPID\tEXECUTABLE\tTITLE\tCLASS\tMONITOR\tSPANS\tPRODUCT")
	for i := range records {
		md := &records[i]
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			md.Handle,
			md.PID,
			md.ExecutableName,
			truncate(optional(md.Title), maxTitleWidth),
			optional(md.Class),
			optional(md.MonitorID),
			optionalBool(md.SpansMultipleMonitors),
			optional(md.ProductName),
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(skipped) == 0 {
		return nil
	}
	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SKIPPED\tEXECUTABLE\tREASON")
	for _, s := range skipped {
		exe := s.Executable
		if exe == "" {
			exe = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Handle, exe, s.Reason)
	}
	return tw.Flush()
}

func writeInfo(w io.Writer, format string, md *wininfo.WindowMetadata) error {
	if format == config.OutputJSON {
		return writeJSON(w, md)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	rows := []struct {
		key   string
		value string
	}{
		{"handle", md.Handle.String()},
		{"pid", strconv.FormatUint(uint64(md.PID), 10)},
		{"executable", md.ExecutableName},
		{"path", md.ExecutablePath},
		{"title", optional(md.Title)},
		{"class", optional(md.Class)},
		{"product", optional(md.ProductName)},
		{"monitor", optional(md.MonitorID)},
		{"spans monitors", optionalBool(md.SpansMultipleMonitors)},
		{"command line", optional(md.CommandLine)},
		{"capture id", md.CaptureID()},
	}
	for _, r := range rows {
		fmt.Fprintf(tw, "%s:\t%s\n", r.key, r.value)
	}
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func optional(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func optionalBool(b *bool) string {
	if b == nil {
		return "-"
	}
	if *b {
		return "yes"
	}
	return "no"
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
