package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/profilerag/internal/core/domain"
)

func newTestServer(t *testing.T, svc *mockProfileService) *Server {
	t.Helper()
	server, err := NewServer(&Ports{Profiles: svc})
	require.NoError(t, err)
	return server
}

func TestServer_handleSetup(t *testing.T) {
	svc := &mockProfileService{setup: domain.SetupResult{
		Success:  true,
		Message:  "System setup completed successfully!",
		Profiles: 3,
		Chunks:   5,
		Store: domain.StrategyReport{
			Chosen:   "memory",
			Attempts: []domain.StrategyAttempt{{Name: "sqlite", Error: "read-only"}},
		},
	}}
	server := newTestServer(t, svc)

	_, out, err := server.handleSetup(context.Background(), nil, EmptyInput{})

	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Equal(t, 3, out.Profiles)
	assert.Equal(t, 5, out.Chunks)
	assert.Equal(t, "memory", out.Store)
	assert.Equal(t, "sqlite", out.Skipped[0].Name)
}

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("returns answer with evidence people", func(t *testing.T) {
		svc := &mockProfileService{ask: domain.AskResult{
			Success: true,
			Answer: &domain.Answer{
				Text:       "Skills Analysis:\n...",
				Generation: domain.Fallback("Skills Analysis (Fallback Mode)"),
				Evidence: domain.EvidenceMap{{
					Term:  "python",
					About: []domain.Attribution{{Name: "Neha M", Excerpt: `"Python developer"`}},
				}},
				Warnings: []string{"generation failed"},
			},
		}}
		server := newTestServer(t, svc)

		_, out, err := server.handleAsk(ctx, nil, AskInput{Question: "Who has Python skills?"})

		require.NoError(t, err)
		assert.Equal(t, "Who has Python skills?", svc.question)
		assert.True(t, out.Success)
		assert.Equal(t, "Skills Analysis:\n...", out.Answer)
		assert.Equal(t, "fallback", out.Generation)
		assert.Equal(t, []string{"Neha M"}, out.People)
		assert.Equal(t, []string{"generation failed"}, out.Warnings)
	})

	t.Run("failure is reported in output", func(t *testing.T) {
		svc := &mockProfileService{ask: domain.AskResult{
			Message: "Index not ready. Please run setup first.",
			Err:     domain.ErrIndexNotReady,
		}}
		server := newTestServer(t, svc)

		_, out, err := server.handleAsk(ctx, nil, AskInput{Question: "Who knows SQL?"})

		require.NoError(t, err)
		assert.False(t, out.Success)
		assert.Equal(t, "Index not ready. Please run setup first.", out.Message)
		assert.Empty(t, out.Answer)
	})
}

func TestServer_handleSummary(t *testing.T) {
	ctx := context.Background()

	t.Run("keeps ranking order", func(t *testing.T) {
		svc := &mockProfileService{summary: domain.SummaryResult{
			Success: true,
			Summary: domain.Summary{
				TotalProfiles: 4,
				TopSkills:     []domain.SkillCount{{Skill: "sql", Count: 3}, {Skill: "python", Count: 2}},
			},
		}}
		server := newTestServer(t, svc)

		_, out, err := server.handleSummary(ctx, nil, EmptyInput{})

		require.NoError(t, err)
		assert.True(t, out.Success)
		assert.Equal(t, 4, out.TotalProfiles)
		assert.Equal(t, []SkillCountOutput{{"sql", 3}, {"python", 2}}, out.TopSkills)
	})

	t.Run("empty collection", func(t *testing.T) {
		svc := &mockProfileService{summary: domain.SummaryResult{
			Success: true,
			Summary: domain.Summary{Error: domain.NoProfilesMessage},
		}}
		server := newTestServer(t, svc)

		_, out, err := server.handleSummary(ctx, nil, EmptyInput{})

		require.NoError(t, err)
		assert.False(t, out.Success)
		assert.Equal(t, "No profiles loaded.", out.Message)
		assert.NotNil(t, out.TopSkills)
	})
}

func TestServer_handleIngest(t *testing.T) {
	svc := &mockProfileService{ingest: domain.IngestResult{
		Success:  true,
		Message:  "Added 1 new profiles, 1 duplicates skipped. Total profiles: 4",
		Accepted: 1,
		Rejected: 1,
		Total:    4,
	}}
	server := newTestServer(t, svc)
	profiles := []domain.Profile{
		{Name: "A", LinkedInURL: "u1"},
		{Name: "B", LinkedInURL: "u2"},
	}

	_, out, err := server.handleIngest(context.Background(), nil, IngestInput{Profiles: profiles})

	require.NoError(t, err)
	assert.Equal(t, profiles, svc.ingested)
	assert.Equal(t, IngestOutput{
		Success:  true,
		Message:  "Added 1 new profiles, 1 duplicates skipped. Total profiles: 4",
		Accepted: 1,
		Rejected: 1,
		Total:    4,
	}, out)
}

func TestServer_handleStatus(t *testing.T) {
	status := domain.Status{Profiles: 2, Chunks: 4, Ready: true, Store: "sqlite", EmbeddingModel: "all-minilm"}
	server := newTestServer(t, &mockProfileService{status: status})

	_, out, err := server.handleStatus(context.Background(), nil, EmptyInput{})

	require.NoError(t, err)
	assert.Equal(t, status, out)
}
