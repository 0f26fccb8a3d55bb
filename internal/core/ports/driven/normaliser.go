package driven

import (
	"context"

	"github.com/custodia-labs/profilerag/internal/core/domain"
)

// Normaliser transforms a profile into an indexable document.
type Normaliser interface {
	// Normalise renders the profile as a document with Content and metadata populated.
	// position is the profile's index in the collection; it keeps document IDs
	// unique for profiles without a LinkedIn URL.
	Normalise(ctx context.Context, profile *domain.Profile, position int) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
// Note: Normalisation only produces a Document with Content.
// Chunking is handled by the PostProcessor pipeline.
type NormaliseResult struct {
	// Document is the normalised document with Content field populated.
	Document domain.Document
}
