// Package mcp exposes window metadata to MCP clients over stdio.
package mcp

import (
	"context"
	"io"
	"log/slog"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/wininfo/internal/config"
	"github.com/1broseidon/wininfo/internal/filter"
	"github.com/1broseidon/wininfo/internal/platform"
	"github.com/1broseidon/wininfo/internal/wininfo"
)

const (
	ServerName    = "wininfo"
	ServerVersion = "0.1.0"
)

// Server is the MCP server answering window queries.
type Server struct {
	mcpServer *mcpsdk.Server
	config    *config.Config
	collector *wininfo.Collector
	logger    *slog.Logger
}

// NewServer creates a server that queries backend using the filter lists
// and defaults in cfg.
func NewServer(cfg *config.Config, backend platform.Backend, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	s := &Server{
		config:    cfg,
		collector: wininfo.NewCollector(backend, filter.New(cfg.FilterOptions()), logger),
		logger:    logger,
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    ServerName,
			Version: ServerVersion,
		},
		nil,
	)

	s.registerTools()
	return s
}

// Run starts the MCP server on stdio transport, blocking until done.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_windows",
		Description: "List capturable top-level windows with their owning process, title, class, product name, monitor and command line. Fields that could not be read are omitted. System windows and this tool's own windows are never listed; game mode also skips applications that game capture cannot hook.",
	}, s.handleListWindows)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "get_window_info",
		Description: "Get metadata for a single window handle. Fails with the exclusion reason when the window is not capturable in the given mode, or when the window no longer exists.",
	}, s.handleGetWindowInfo)
}
