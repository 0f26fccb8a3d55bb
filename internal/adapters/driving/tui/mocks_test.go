package tui

import (
	"context"

	"github.com/custodia-labs/profilerag/internal/core/domain"
)

// mockProfileService is a mock implementation of driving.ProfileService.
type mockProfileService struct {
	setup    domain.SetupResult
	ask      domain.AskResult
	summary  domain.SummaryResult
	ingest   domain.IngestResult
	status   domain.Status
	question string
	ingested []domain.Profile
}

func (m *mockProfileService) Setup(_ context.Context) domain.SetupResult {
	return m.setup
}

func (m *mockProfileService) Ask(_ context.Context, question string) domain.AskResult {
	m.question = question
	return m.ask
}

func (m *mockProfileService) Summary(_ context.Context) domain.SummaryResult {
	return m.summary
}

func (m *mockProfileService) Ingest(_ context.Context, profiles []domain.Profile) domain.IngestResult {
	m.ingested = profiles
	return m.ingest
}

func (m *mockProfileService) Status(_ context.Context) domain.Status {
	return m.status
}
