// ABOUTME: MCP server setup for the journey tracker.
// ABOUTME: Wraps the MCP server around a journey.Service.
package mcp

import (
	"context"

	"github.com/harperreed/journey/internal/journey"
	"github.com/harperreed/journey/internal/scoring"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with service access.
type Server struct {
	mcpServer *mcp.Server
	svc       *journey.Service
	band      float64
}

// NewServer creates a new MCP server over svc. band clamps charted cumulatives;
// zero means the default band.
func NewServer(svc *journey.Service, band float64) (*Server, error) {
	if band <= 0 {
		band = scoring.DefaultDisplayBand
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "journey",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		svc:       svc,
		band:      band,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
