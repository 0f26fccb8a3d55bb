// Package normalisers provides implementations of the Normaliser interface.
// A normaliser flattens a structured record into the canonical text that the
// post-processor pipeline chunks and the semantic index embeds.
package normalisers
