// Package server provides the MCP server implementation for the geometry
// codec tools.
package server

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"sync"

	"github.com/mark3labs/mcp-go/server"
	"github.com/openstreetmap-ng/geocodec/pkg/tools"
	"github.com/openstreetmap-ng/geocodec/pkg/version"
)

const (
	// ServerName is the name of the MCP server
	ServerName = "geocodec-mcp-server"
)

// Server encapsulates the MCP server with the geometry codec tools.
type Server struct {
	srv *server.MCPServer

	shutdown     chan struct{}
	shutdownOnce sync.Once
	done         chan struct{}
}

// NewServer creates a new geometry codec MCP server with all tools registered.
func NewServer() (*Server, error) {
	logger := slog.Default()
	logger.Info("initializing geometry codec MCP server",
		"name", ServerName,
		"version", version.BuildVersion)

	// Create MCP server with options
	srv := server.NewMCPServer(
		ServerName,
		version.BuildVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	// Create tool registry and register all tools
	registry := tools.NewRegistry(logger)
	registry.RegisterTools(srv)

	return &Server{
		srv:      srv,
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}, nil
}

// Run starts the MCP server using stdin/stdout for communication and
// blocks until the transport closes.
func (s *Server) Run() error {
	return s.RunWithContext(context.Background())
}

// RunWithContext starts the MCP server and blocks until the context is
// canceled, Shutdown is called or the transport closes.
func (s *Server) RunWithContext(ctx context.Context) error {
	defer close(s.done)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		select {
		case <-s.shutdown:
			cancel()
		case <-ctx.Done():
		}
	}()

	stdio := server.NewStdioServer(s.srv)
	err := stdio.Listen(ctx, os.Stdin, os.Stdout)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Shutdown requests a running server to stop. Safe to call more than once.
func (s *Server) Shutdown() {
	s.shutdownOnce.Do(func() {
		close(s.shutdown)
	})
}

// WaitForShutdown blocks until a started server has fully stopped.
func (s *Server) WaitForShutdown() {
	<-s.done
}
