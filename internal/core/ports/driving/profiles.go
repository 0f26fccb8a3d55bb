package driving

import (
	"context"

	"github.com/custodia-labs/profilerag/internal/core/domain"
)

// ProfileService answers questions over the loaded profile collection.
// Every operation reports failures through its result rather than an error
// return so that CLI, MCP and TUI surfaces render them the same way.
type ProfileService interface {
	// Setup loads the collection and builds the semantic index.
	Setup(ctx context.Context) domain.SetupResult

	// Ask answers a natural-language question.
	Ask(ctx context.Context, question string) domain.AskResult

	// Summary reports collection statistics and the top skills.
	Summary(ctx context.Context) domain.SummaryResult

	// Ingest merges new profiles into the collection, skipping duplicates by LinkedIn URL.
	Ingest(ctx context.Context, profiles []domain.Profile) domain.IngestResult

	// Status reports the current index and backend state.
	Status(ctx context.Context) domain.Status
}
