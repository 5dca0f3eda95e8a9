package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/1broseidon/wininfo/internal/config"
	"github.com/1broseidon/wininfo/internal/filter"
	"github.com/1broseidon/wininfo/internal/platform"
	"github.com/1broseidon/wininfo/internal/win32"
	"github.com/1broseidon/wininfo/internal/wininfo"
)

// queryFlags are shared by list and info.
type queryFlags struct {
	configPath string
	mode       string
	output     string
	verbose    bool
}

func (q *queryFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&q.configPath, "config", "", "Config file path (default: <user config dir>/wininfo/config.yaml)")
	fs.StringVar(&q.mode, "mode", "", "Capture mode: window or game (default: capture_mode from config)")
	fs.StringVar(&q.output, "output", "", "Output format: auto, table or json (default: output from config)")
	fs.BoolVar(&q.verbose, "verbose", false, "Log per-window diagnostics to stderr")
}

// resolve applies flag overrides on top of cfg.
func (q *queryFlags) resolve(cfg *config.Config) (filter.CaptureMode, string, error) {
	mode := cfg.Mode()
	if q.mode != "" {
		m, err := filter.ParseCaptureMode(q.mode)
		if err != nil {
			return mode, "", err
		}
		mode = m
	}
	format := cfg.Output
	if q.output != "" {
		format = q.output
	}
	out, err := resolveOutput(format, term.IsTerminal(int(os.Stdout.Fd())))
	return mode, out, err
}

// resolveOutput turns "auto" into table on a terminal and json otherwise.
func resolveOutput(format string, tty bool) (string, error) {
	switch format {
	case config.OutputTable, config.OutputJSON:
		return format, nil
	case config.OutputAuto, "":
		if tty {
			return config.OutputTable, nil
		}
		return config.OutputJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want auto, table or json)", format)
	}
}

func runList(args []string) int {
	var q queryFlags
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	q.register(fs)
	all := fs.Bool("all", false, "Include minimized and zero-sized windows")
	showSkipped := fs.Bool("skipped", false, "Also report skipped windows and why")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wininfo list [--mode window|game] [--all] [--skipped] [--output auto|table|json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List top-level windows a capture tool could offer, with their metadata.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "list takes no arguments")
		return 2
	}

	res, logger, err := setup(q.configPath, q.verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config
	mode, format, err := q.resolve(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	opts := cfg.EnumOptions()
	if *all {
		opts.IncludeMinimized = true
	}

	backend, err := win32.NewBackend()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	collector := wininfo.NewCollector(backend, filter.New(cfg.FilterOptions()), logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	records, skipped, collectErr := collector.CollectAll(ctx, opts, mode)
	if collectErr != nil && !errors.Is(collectErr, context.Canceled) {
		fmt.Fprintln(os.Stderr, collectErr)
		return 1
	}
	if !*showSkipped {
		skipped = nil
	}

	if err := writeList(os.Stdout, format, mode, records, skipped); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if collectErr != nil {
		// Interrupted: what was collected so far has been written.
		return 1
	}
	return 0
}

func runInfo(args []string) int {
	var q queryFlags
	fs := flag.NewFlagSet("info", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	q.register(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wininfo info [--mode window|game] [--output auto|table|json] <hwnd>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show metadata for one window. <hwnd> is 0x-prefixed hex or decimal.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	h, err := platform.ParseWindowHandle(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid window handle %q\n", fs.Arg(0))
		return 2
	}

	res, logger, err := setup(q.configPath, q.verbose)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	mode, format, err := q.resolve(res.Config)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	backend, err := win32.NewBackend()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	collector := wininfo.NewCollector(backend, filter.New(res.Config.FilterOptions()), logger)

	md, err := collector.Collect(h, mode)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := writeInfo(os.Stdout, format, md); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
