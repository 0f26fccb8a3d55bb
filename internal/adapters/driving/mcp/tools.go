package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/profilerag/internal/core/domain"
)

// EmptyInput is the input schema for tools without arguments.
type EmptyInput struct{}

// SetupOutput is the output schema for the setup tool.
type SetupOutput struct {
	Success  bool                     `json:"success"`
	Message  string                   `json:"message"`
	Profiles int                      `json:"profiles"`
	Chunks   int                      `json:"chunks"`
	Store    string                   `json:"store,omitempty"`
	Skipped  []domain.StrategyAttempt `json:"skipped_stores,omitempty"`
}

// AskInput is the input schema for the ask tool.
type AskInput struct {
	Question string `json:"question" jsonschema:"natural-language question about the loaded profiles"`
}

// AskOutput is the output schema for the ask tool.
type AskOutput struct {
	Success    bool     `json:"success"`
	Answer     string   `json:"answer,omitempty"`
	Generation string   `json:"generation,omitempty"`
	People     []string `json:"people,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
	Message    string   `json:"message,omitempty"`
}

// SkillCountOutput is one ranked skill in the summary.
type SkillCountOutput struct {
	Skill string `json:"skill"`
	Count int    `json:"count"`
}

// SummaryOutput is the output schema for the summary tool.
type SummaryOutput struct {
	Success       bool               `json:"success"`
	TotalProfiles int                `json:"total_profiles"`
	TopSkills     []SkillCountOutput `json:"top_skills"`
	Message       string             `json:"message,omitempty"`
}

// IngestInput is the input schema for the ingest tool.
type IngestInput struct {
	Profiles []domain.Profile `json:"profiles" jsonschema:"profiles to add; duplicates by linkedin_url are skipped"`
}

// IngestOutput is the output schema for the ingest tool.
type IngestOutput struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	Accepted int    `json:"accepted_count"`
	Rejected int    `json:"rejected_count"`
	Total    int    `json:"total_count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "setup",
		Description: "Load the profile collection and build the semantic index",
	}, s.handleSetup)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ask",
		Description: "Answer a question about the loaded LinkedIn profiles",
	}, s.handleAsk)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "summary",
		Description: "Report the number of profiles and the most common skills",
	}, s.handleSummary)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest",
		Description: "Add profiles to the collection; run setup afterwards to index them",
	}, s.handleIngest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "status",
		Description: "Report index readiness and the selected backends",
	}, s.handleStatus)
}

func (s *Server) handleSetup(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, SetupOutput, error) {
	res := s.ports.Profiles.Setup(ctx)
	return nil, SetupOutput{
		Success:  res.Success,
		Message:  res.Message,
		Profiles: res.Profiles,
		Chunks:   res.Chunks,
		Store:    res.Store.Chosen,
		Skipped:  res.Store.Attempts,
	}, nil
}

func (s *Server) handleAsk(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AskInput,
) (*mcp.CallToolResult, AskOutput, error) {
	res := s.ports.Profiles.Ask(ctx, input.Question)
	if !res.Success || res.Answer == nil {
		return nil, AskOutput{Message: res.Message}, nil
	}

	return nil, AskOutput{
		Success:    true,
		Answer:     res.Answer.Text,
		Generation: string(res.Answer.Generation.Kind),
		People:     res.Answer.Evidence.People(),
		Warnings:   res.Answer.Warnings,
	}, nil
}

func (s *Server) handleSummary(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, SummaryOutput, error) {
	return nil, summaryOutput(s.ports.Profiles.Summary(ctx)), nil
}

func summaryOutput(res domain.SummaryResult) SummaryOutput {
	out := SummaryOutput{
		Success:   res.Success && res.Summary.Error == "",
		TopSkills: make([]SkillCountOutput, 0, len(res.Summary.TopSkills)),
		Message:   res.Message,
	}
	if res.Summary.Error != "" {
		out.Message = res.Summary.Error
		return out
	}
	out.TotalProfiles = res.Summary.TotalProfiles
	for _, sc := range res.Summary.TopSkills {
		out.TopSkills = append(out.TopSkills, SkillCountOutput{Skill: sc.Skill, Count: sc.Count})
	}
	return out
}

func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	res := s.ports.Profiles.Ingest(ctx, input.Profiles)
	return nil, IngestOutput{
		Success:  res.Success,
		Message:  res.Message,
		Accepted: res.Accepted,
		Rejected: res.Rejected,
		Total:    res.Total,
	}, nil
}

func (s *Server) handleStatus(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, domain.Status, error) {
	return nil, s.ports.Profiles.Status(ctx), nil
}
