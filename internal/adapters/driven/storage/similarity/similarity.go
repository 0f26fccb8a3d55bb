// Package similarity holds the brute-force nearest-neighbour helpers shared
// by the local chunk stores.
package similarity

import (
	"errors"
	"math"
	"sort"

	"github.com/custodia-labs/profilerag/internal/core/domain"
)

// ErrDimensionMismatch is returned when vectors of different sizes are compared.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// Cosine returns the cosine similarity of a and b, or 0 when either is zero.
func Cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// TopK scores every chunk against the query and returns the k best hits in
// descending similarity. Ties keep their original order.
func TopK(query []float32, chunks []domain.Chunk, k int) ([]domain.ChunkHit, error) {
	if k <= 0 || len(chunks) == 0 {
		return nil, nil
	}

	hits := make([]domain.ChunkHit, 0, len(chunks))
	for _, c := range chunks {
		if len(c.Embedding) != len(query) {
			return nil, ErrDimensionMismatch
		}
		hits = append(hits, domain.ChunkHit{Chunk: c, Similarity: Cosine(query, c.Embedding)})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Similarity > hits[j].Similarity
	})
	if len(hits) > k {
		hits = hits[:k]
	}
	return hits, nil
}

// CheckEmbeddings verifies that every chunk carries an embedding of one shared
// size and returns that size.
func CheckEmbeddings(chunks []domain.Chunk) (int, error) {
	dims := 0
	for _, c := range chunks {
		if len(c.Embedding) == 0 {
			return 0, errors.New("chunk " + c.ID + " has no embedding")
		}
		if dims == 0 {
			dims = len(c.Embedding)
		} else if len(c.Embedding) != dims {
			return 0, ErrDimensionMismatch
		}
	}
	return dims, nil
}
