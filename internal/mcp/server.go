// Package mcp provides an MCP (Model Context Protocol) server exposing the
// curriculum analysis engine to agent clients.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/JairAlexey/AnalisisDeMallas/internal/config"
	"github.com/JairAlexey/AnalisisDeMallas/internal/ratelimit"
	"github.com/JairAlexey/AnalisisDeMallas/internal/store"
)

// Server wraps the MCP SDK server around the curricula store and analysis
// pipeline.
type Server struct {
	server       *sdk.Server
	store        *store.CurriculaStore
	analysis     config.AnalysisConfig
	logger       *slog.Logger
	toolLimiters ratelimit.ToolLimiters
}

// Config holds server configuration.
type Config struct {
	Name    string // Server name (e.g., "mallas")
	Version string // Server version
	DBPath  string // Curricula database path

	// Analysis supplies the default parameters for tool calls that omit
	// their own.
	Analysis config.AnalysisConfig

	// Logger may be nil.
	Logger *slog.Logger
}

// NewServer creates a new MCP server with the curriculum analysis tools.
func NewServer(cfg *Config) (*Server, error) {
	curriculaStore, err := store.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open curricula store: %w", err)
	}

	mcpServer := sdk.NewServer(&sdk.Implementation{
		Name:    cfg.Name,
		Version: cfg.Version,
	}, &sdk.ServerOptions{
		InitializedHandler: func(ctx context.Context, req *sdk.InitializedRequest) {
			// Client initialized, ready to serve
		},
	})

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		server:       mcpServer,
		store:        curriculaStore,
		analysis:     cfg.Analysis,
		logger:       logger,
		toolLimiters: ratelimit.NewToolLimiters(),
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Run starts the MCP server over stdio transport.
// This blocks until the client disconnects or the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		cancel()
	}()

	err := s.server.Run(ctx, &sdk.StdioTransport{})

	s.store.Close()

	return err
}

// Close closes the server and releases resources.
func (s *Server) Close() error {
	return s.store.Close()
}
