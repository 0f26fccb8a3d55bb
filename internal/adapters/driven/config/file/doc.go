// Package file provides file-based configuration adapters.
//
// Adapters:
//   - ConfigStore: TOML configuration at ~/.profilerag/config.toml
//   - LoadSettings: maps config keys and PROFILERAG_* variables onto domain.AppSettings
//   - PromptStore: editable prompt templates under ~/.profilerag/prompts
package file
