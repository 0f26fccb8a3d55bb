package driven

import (
	"context"

	"github.com/custodia-labs/profilerag/internal/core/domain"
)

// PostProcessor is one stage of turning a profile document into chunks.
type PostProcessor interface {
	// Name identifies the stage in settings and error messages.
	Name() string

	// Process receives the chunks produced by earlier stages (nil for the
	// first stage) and returns the chunks for the next one.
	Process(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error)
}

// PostProcessorPipeline chunks a whole profile document.
type PostProcessorPipeline interface {
	Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error)
}
