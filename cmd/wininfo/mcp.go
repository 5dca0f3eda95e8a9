package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/1broseidon/wininfo/internal/mcp"
	"github.com/1broseidon/wininfo/internal/win32"
)

func printMCPUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: wininfo mcp <command>")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve    Start the MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'wininfo mcp <command> --help' for command-specific options.")
}

func runMCP(args []string) int {
	if len(args) == 0 {
		printMCPUsage(os.Stderr)
		return 2
	}

	switch args[0] {
	case "serve":
		return runMCPServe(args[1:])
	case "help", "-h", "--help":
		printMCPUsage(os.Stdout)
		return 0
	default:
		fmt.Fprintf(os.Stderr, "Unknown mcp command: %s\n\n", args[0])
		printMCPUsage(os.Stderr)
		return 2
	}
}

func runMCPServe(args []string) int {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: <user config dir>/wininfo/config.yaml)")
	verbose := fs.Bool("verbose", false, "Log per-window diagnostics to stderr")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: wininfo mcp serve [--config PATH] [--verbose]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Start the MCP server on stdio. Designed to be invoked by an MCP client;")
		fmt.Fprintln(os.Stderr, "logs go to stderr so stdout stays reserved for the protocol.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	res, logger, err := setup(*path, *verbose)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	backend, err := win32.NewBackend()
	if err != nil {
		log.Fatalf("Failed to open window backend: %v", err)
	}

	server := mcp.NewServer(res.Config, backend, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	logger.Info("mcp server starting", "name", mcp.ServerName, "version", mcp.ServerVersion)
	if err := server.Run(ctx); err != nil {
		log.Fatalf("MCP server error: %v", err)
	}
	return 0
}
