// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - ProfileStore: Profile collection persistence (JSON/YAML file)
//   - Normaliser: Renders a profile into indexable text
//   - PostProcessor: Splits normalised text into chunks
//   - EmbeddingService: Generates vector embeddings. A local hashing embedder
//     is always available as the last strategy.
//   - ChunkStore: Vector storage and nearest-neighbour search. Stores are
//     tried in order through StoreStrategy until one opens and accepts data.
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - LLMService: Answer generation. Without it, answers are composed from
//     skill evidence alone (fallback mode).
//   - PromptStore: Custom prompt templates. Without it, built-in prompts are used.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, normaliser, or postprocessor package
package driven
