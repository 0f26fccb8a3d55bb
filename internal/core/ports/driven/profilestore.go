package driven

import (
	"context"

	"github.com/custodia-labs/profilerag/internal/core/domain"
)

// ProfileStore loads and saves the profile collection.
type ProfileStore interface {
	// Load reads the whole collection. A missing file yields an empty collection.
	Load(ctx context.Context) ([]domain.Profile, error)

	// Save replaces the stored collection.
	Save(ctx context.Context, profiles []domain.Profile) error

	// Path returns the location of the collection.
	Path() string
}
