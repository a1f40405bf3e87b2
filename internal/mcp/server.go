// ABOUTME: MCP server setup for the healthhub record store.
// ABOUTME: Wraps the MCP server with a storage Repository and display settings.
package mcp

import (
	"context"

	"github.com/harperreed/healthhub/internal/fitness"
	"github.com/harperreed/healthhub/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

// Options carries the settings tools need beyond the repository.
type Options struct {
	Version         string
	Log             *zap.Logger
	CupML           int
	WaterGoalML     int
	DefaultWeightKg float64
}

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	repo      storage.Repository
	log       *zap.Logger
	opts      Options
}

// NewServer creates a new MCP server with the given storage.
func NewServer(repo storage.Repository, opts Options) (*Server, error) {
	if opts.Version == "" {
		opts.Version = "dev"
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.CupML <= 0 {
		opts.CupML = fitness.DefaultCupML
	}
	if opts.WaterGoalML <= 0 {
		opts.WaterGoalML = fitness.DefaultWaterGoalML
	}
	if opts.DefaultWeightKg <= 0 {
		opts.DefaultWeightKg = fitness.DefaultWeightKg
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "healthhub",
			Version: opts.Version,
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		repo:      repo,
		log:       opts.Log,
		opts:      opts,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	s.log.Info("serving MCP over stdio")
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
