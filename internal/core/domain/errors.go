package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrValidation indicates the caller supplied unusable input
	// (an empty question, an empty ingest batch). Nothing is mutated.
	ErrValidation = errors.New("validation failed")

	// ErrBackendUnavailable indicates an embedding or generation backend
	// could not be reached or could not be created.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrIndexNotReady indicates a query was issued before a successful build.
	// The user must run setup again.
	ErrIndexNotReady = errors.New("index not ready")

	// ErrBuildFailure indicates the semantic index could not be built,
	// either because there was nothing to index or every store strategy failed.
	ErrBuildFailure = errors.New("index build failed")

	// ErrEmbeddingUnavailable indicates no embedding strategy could be selected.
	// Index builds are impossible without embeddings.
	ErrEmbeddingUnavailable = fmt.Errorf("embedding service unavailable: %w", ErrBackendUnavailable)

	// ErrLLMUnavailable indicates no generation strategy could be selected.
	// Answers fall back to deterministic evidence extraction.
	ErrLLMUnavailable = fmt.Errorf("LLM service unavailable: %w", ErrBackendUnavailable)

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnsupportedType indicates an unknown provider, store or file format.
	ErrUnsupportedType = errors.New("unsupported type")
)
