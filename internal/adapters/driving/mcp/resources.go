package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// uriScheme is the URI scheme for profilerag resources.
const uriScheme = "profiles://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "summary",
		Name:        "summary",
		Description: "Profile count and top skills across the collection",
		MIMEType:    "application/json",
	}, s.handleSummaryResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "status",
		Name:        "status",
		Description: "Index readiness, chosen store and model names",
		MIMEType:    "application/json",
	}, s.handleStatusResource)
}

// handleSummaryResource returns the summary in its canonical JSON form,
// {"total_profiles":N,"top_skills":{...}} or {"error":"..."}.
func (s *Server) handleSummaryResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	res := s.ports.Profiles.Summary(ctx)
	if !res.Success {
		return nil, fmt.Errorf("reading summary: %s", res.Message)
	}
	return jsonResource(req.Params.URI, res.Summary)
}

// handleStatusResource returns the service status.
func (s *Server) handleStatusResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	return jsonResource(req.Params.URI, s.ports.Profiles.Status(ctx))
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
