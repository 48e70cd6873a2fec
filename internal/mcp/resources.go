// ABOUTME: MCP resource implementations for the journey tracker.
// ABOUTME: Provides journey://series, journey://strengths, and journey://today resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "journey://series",
		Name:        "Journey Series",
		Description: "Daily scores and cumulative total up to the latest check-in",
		MIMEType:    "application/json",
	}, s.handleSeriesResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "journey://strengths",
		Name:        "Domain Strengths",
		Description: "Self-assessment strength per domain",
		MIMEType:    "application/json",
	}, s.handleStrengthsResource)

	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "journey://today",
		Name:        "Today",
		Description: "Today's check-in if any, plus where the next check-in goes",
		MIMEType:    "application/json",
	}, s.handleTodayResource)
}

// jsonResource marshals v as the single content of a resource.
func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// Resource handlers

func (s *Server) handleSeriesResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	out, err := s.series(false)
	if err != nil {
		return nil, err
	}
	return jsonResource("journey://series", out)
}

func (s *Server) handleStrengthsResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	out, err := s.strengths()
	if err != nil {
		return nil, err
	}
	return jsonResource("journey://strengths", out)
}

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	today := s.svc.Today()

	anchor, err := s.svc.Anchor()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve anchor: %w", err)
	}

	result := map[string]any{
		"date":       today.String(),
		"candidate":  anchor.Candidate.String(),
		"suggested":  anchor.Suggested.String(),
		"checked_in": false,
	}

	records, err := s.svc.Checkins()
	if err != nil {
		return nil, fmt.Errorf("failed to list checkins: %w", err)
	}
	for _, r := range records {
		if r.Date == today {
			result["checked_in"] = true
			result["checkin"] = r
			break
		}
	}
	result["can_check_in"] = !anchor.Candidate.After(today)

	return jsonResource("journey://today", result)
}
