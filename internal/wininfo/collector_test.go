package wininfo

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/1broseidon/wininfo/internal/filter"
	"github.com/1broseidon/wininfo/internal/platform"
	"github.com/1broseidon/wininfo/internal/platform/platformtest"
)

const (
	hNotepad  platform.WindowHandle = 0x10010
	hFirefox  platform.WindowHandle = 0x10020
	hSelf     platform.WindowHandle = 0x10030
	hShell    platform.WindowHandle = 0x10040
	hElevated platform.WindowHandle = 0x10050
	hMinimal  platform.WindowHandle = 0x10060
)

func proc(pid uint32, path string) platform.ProcessIdentity {
	return platform.ProcessIdentity{PID: pid, ThreadID: pid + 1, ExecutablePath: path}
}

func desktop() *platformtest.Backend {
	b := platformtest.New()
	b.Add(hNotepad, platformtest.Window{
		Process:     proc(100, `C:\Windows\System32\notepad.exe`),
		Title:       "test.txt - Notepad",
		Class:       "Notepad",
		Monitor:     `\\.\DISPLAY1`,
		CommandLine: `notepad.exe C:\temp\test.txt`,
	})
	b.SetProduct(`C:\Windows\System32\notepad.exe`, "Microsoft® Windows® Operating System")
	b.Add(hFirefox, platformtest.Window{
		Process:     proc(200, `C:\Program Files\Mozilla Firefox\firefox.exe`),
		Title:       "Mozilla Firefox",
		Class:       "MozillaWindowClass",
		Monitor:     `\\.\DISPLAY2`,
		Spans:       true,
		CommandLine: `"C:\Program Files\Mozilla Firefox\firefox.exe"`,
	})
	b.Add(hSelf, platformtest.Window{
		Process: proc(300, `C:\Program Files\obs-studio\bin\64bit\obs64.exe`),
		Title:   "OBS 30.0",
	})
	b.Add(hShell, platformtest.Window{
		Process: proc(400, `C:\Windows\SystemApps\ShellExperienceHost_cw5n1h2txyewy\ShellExperienceHost.exe`),
		Title:   "Start",
	})
	b.Add(hElevated, platformtest.Window{
		ProcessErr: platform.ErrAccessDenied,
	})
	b.Add(hMinimal, platformtest.Window{
		Process:        proc(600, `D:\Games\game.exe`),
		TitleErr:       platform.ErrResourceUnavailable,
		ClassErr:       platform.ErrResourceUnavailable,
		MonitorErr:     platform.ErrInvalidHandle,
		SpansErr:       platform.ErrInvalidHandle,
		CommandLineErr: platform.ErrAccessDenied,
	})
	return b
}

func newCollector(b platform.Backend) *Collector {
	return NewCollector(b, filter.New(filter.Options{SelfExecutables: []string{"obs64.exe"}}), nil)
}

func str(s string) *string { return &s }
func boolp(v bool) *bool  { return &v }

func TestCollectEligible(t *testing.T) {
	c := newCollector(desktop())

	got, err := c.Collect(hNotepad, filter.ModeWindow)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	want := &WindowMetadata{
		Handle:                hNotepad,
		PID:                   100,
		ThreadID:              101,
		ExecutableName:        "notepad.exe",
		ExecutablePath:        `C:\Windows\System32\notepad.exe`,
		Title:                 str("test.txt - Notepad"),
		Class:                 str("Notepad"),
		ProductName:           str("Microsoft® Windows® Operating System"),
		MonitorID:             str(`\\.\DISPLAY1`),
		SpansMultipleMonitors: boolp(false),
		CommandLine:           str(`notepad.exe C:\temp\test.txt`),
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Collect = %+v\nwant %+v", got, want)
	}
}

func TestCollectRejections(t *testing.T) {
	c := newCollector(desktop())

	tests := []struct {
		name string
		h    platform.WindowHandle
		mode filter.CaptureMode
		want filter.Verdict
	}{
		{"self in window mode", hSelf, filter.ModeWindow, filter.ExcludedSelf},
		{"self in game mode", hSelf, filter.ModeGame, filter.ExcludedSelf},
		{"system in window mode", hShell, filter.ModeWindow, filter.ExcludedSystem},
		{"system in game mode", hShell, filter.ModeGame, filter.ExcludedSystem},
		{"blacklisted in game mode", hFirefox, filter.ModeGame, filter.ExcludedBlacklist},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			md, err := c.Collect(tt.h, tt.mode)
			if md != nil {
				t.Fatalf("Collect returned a record for a rejected window: %+v", md)
			}
			if !errors.Is(err, ErrExcluded) {
				t.Fatalf("err = %v, want ErrExcluded", err)
			}
			var rej *RejectionError
			if !errors.As(err, &rej) {
				t.Fatalf("err %T is not *RejectionError", err)
			}
			if rej.Verdict != tt.want {
				t.Fatalf("verdict = %v, want %v", rej.Verdict, tt.want)
			}
		})
	}
}

func TestCollectBlacklistIsModeSensitive(t *testing.T) {
	c := newCollector(desktop())

	md, err := c.Collect(hFirefox, filter.ModeWindow)
	if err != nil {
		t.Fatalf("window mode: %v", err)
	}
	if md.ExecutableName != "firefox.exe" {
		t.Fatalf("ExecutableName = %q", md.ExecutableName)
	}
	if md.SpansMultipleMonitors == nil || !*md.SpansMultipleMonitors {
		t.Fatalf("SpansMultipleMonitors = %v, want true", md.SpansMultipleMonitors)
	}
	if md.ProductName != nil {
		t.Fatalf("ProductName = %q, want absent", *md.ProductName)
	}
}

func TestCollectFieldIndependence(t *testing.T) {
	c := newCollector(desktop())

	md, err := c.Collect(hMinimal, filter.ModeGame)
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if md.ExecutableName != "game.exe" || md.PID != 600 {
		t.Fatalf("identity = %q/%d", md.ExecutableName, md.PID)
	}
	if md.Title != nil || md.Class != nil || md.ProductName != nil ||
		md.MonitorID != nil || md.SpansMultipleMonitors != nil || md.CommandLine != nil {
		t.Fatalf("expected every optional field absent, got %+v", md)
	}
}

func TestCollectIdentityFailures(t *testing.T) {
	b := desktop()
	c := newCollector(b)

	if _, err := c.Collect(hElevated, filter.ModeWindow); !errors.Is(err, platform.ErrAccessDenied) {
		t.Fatalf("elevated: err = %v, want ErrAccessDenied", err)
	}

	b.Close(hNotepad)
	_, err := c.Collect(hNotepad, filter.ModeWindow)
	if !errors.Is(err, platform.ErrInvalidHandle) {
		t.Fatalf("closed: err = %v, want ErrInvalidHandle", err)
	}
	if errors.Is(err, ErrExcluded) {
		t.Fatal("closed window reported as excluded")
	}

	b.Add(0x999, platformtest.Window{Process: proc(7, "")})
	if _, err := c.Collect(0x999, filter.ModeWindow); !errors.Is(err, platform.ErrResourceUnavailable) {
		t.Fatalf("no exe name: err = %v, want ErrResourceUnavailable", err)
	}
}

func TestCollectIdempotent(t *testing.T) {
	b := desktop()
	c := newCollector(b)

	first, err := c.Collect(hNotepad, filter.ModeGame)
	if err != nil {
		t.Fatalf("first Collect: %v", err)
	}
	second, err := c.Collect(hNotepad, filter.ModeGame)
	if err != nil {
		t.Fatalf("second Collect: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeat Collect differs:\n%+v\n%+v", first, second)
	}

	b.SetTitle(hNotepad, "renamed - Notepad")
	third, err := c.Collect(hNotepad, filter.ModeGame)
	if err != nil {
		t.Fatalf("third Collect: %v", err)
	}
	if *third.Title != "renamed - Notepad" {
		t.Fatalf("Title = %q", *third.Title)
	}
	if *first.Title != "test.txt - Notepad" {
		t.Fatal("earlier record changed after rename")
	}
	third.Title = first.Title
	if !reflect.DeepEqual(first, third) {
		t.Fatalf("records differ beyond title:\n%+v\n%+v", first, third)
	}
}

func TestCollectAll(t *testing.T) {
	b := desktop()
	b.Close(hShell)
	c := newCollector(b)

	got, skipped, err := c.CollectAll(context.Background(), platform.EnumOptions{}, filter.ModeGame)
	if err != nil {
		t.Fatalf("CollectAll: %v", err)
	}

	var names []string
	for _, md := range got {
		names = append(names, md.ExecutableName)
	}
	if want := []string{"notepad.exe", "game.exe"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("collected %v, want %v", names, want)
	}

	reasons := map[platform.WindowHandle]string{}
	for _, s := range skipped {
		reasons[s.Handle] = s.Reason
		if s.Err == nil || s.Detail == "" {
			t.Errorf("skip %s has no error", s.Handle)
		}
	}
	wantReasons := map[platform.WindowHandle]string{
		hFirefox:  "excluded-blacklist",
		hSelf:     "excluded-self",
		hShell:    ReasonInvalidHandle,
		hElevated: ReasonAccessDenied,
	}
	if !reflect.DeepEqual(reasons, wantReasons) {
		t.Fatalf("skip reasons = %v, want %v", reasons, wantReasons)
	}
}

func TestCollectAllMinimized(t *testing.T) {
	b := platformtest.New()
	b.Add(1, platformtest.Window{Process: proc(1, `C:\a.exe`)})
	b.Add(2, platformtest.Window{Process: proc(2, `C:\b.exe`), Minimized: true})
	c := newCollector(b)

	got, _, err := c.CollectAll(context.Background(), platform.EnumOptions{}, filter.ModeWindow)
	if err != nil || len(got) != 1 {
		t.Fatalf("default: %d records, err %v", len(got), err)
	}
	got, _, err = c.CollectAll(context.Background(), platform.EnumOptions{IncludeMinimized: true}, filter.ModeWindow)
	if err != nil || len(got) != 2 {
		t.Fatalf("include minimized: %d records, err %v", len(got), err)
	}
}

func TestCollectAllErrors(t *testing.T) {
	b := desktop()
	c := newCollector(b)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	got, _, err := c.CollectAll(ctx, platform.EnumOptions{}, filter.ModeWindow)
	if !errors.Is(err, context.Canceled) || len(got) != 0 {
		t.Fatalf("cancelled: %d records, err %v", len(got), err)
	}

	boom := errors.New("boom")
	b.FailEnumeration(boom)
	if _, _, err := c.CollectAll(context.Background(), platform.EnumOptions{}, filter.ModeWindow); !errors.Is(err, boom) {
		t.Fatalf("enumeration failure: err = %v", err)
	}
}
