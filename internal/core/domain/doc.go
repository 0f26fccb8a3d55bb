// Package domain defines the core business entities for profilerag.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Profile: A person's professional record (about, experience, education)
//   - Document: A profile flattened into searchable text
//   - Chunk: A bounded text fragment, the unit of semantic indexing
//   - EvidenceMap: Per-skill, per-section attribution of people
//   - Answer: The composed reply to a question
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
