// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The answer pipeline is split into small collaborators that
// ProfileService wires together:
//
//   - SemanticIndex: embeds chunks and answers nearest-neighbour queries
//   - EvidenceExtractor: finds skill terms and per-person evidence
//   - Generator: renders the answer prompt and calls the LLM
//   - Composer: runs retrieval, generation and extraction for one question
//   - SummaryReporter: counts skills across the collection
//
// Services are pure Go with no CGO.
package services
