package postprocessors

import (
	"errors"
	"fmt"
	"sort"

	"github.com/custodia-labs/profilerag/internal/core/ports/driven"
	"github.com/custodia-labs/profilerag/internal/postprocessors/chunker"
)

// ErrUnknownProcessor is returned when a pipeline names a processor that
// has no registered builder.
var ErrUnknownProcessor = errors.New("unknown processor")

// Builder makes a processor from its settings section. Settings come from
// TOML or JSON, so numbers may arrive as int, int64 or float64.
type Builder func(settings map[string]any) (driven.PostProcessor, error)

// Registry maps processor names to builders.
type Registry struct {
	builders map[string]Builder
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{builders: make(map[string]Builder)}
}

// DefaultRegistry returns a registry holding the built-in chunker.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(chunker.Name, buildChunker)
	return r
}

// Register adds or replaces the builder for name.
func (r *Registry) Register(name string, b Builder) {
	r.builders[name] = b
}

// Build makes the named processor.
func (r *Registry) Build(name string, settings map[string]any) (driven.PostProcessor, error) {
	b, ok := r.builders[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProcessor, name)
	}
	return b(settings)
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// buildChunker reads chunk_size, overlap and separators. Missing or
// mistyped keys keep the chunker defaults.
func buildChunker(settings map[string]any) (driven.PostProcessor, error) {
	var opts []chunker.Option
	if size, ok := intSetting(settings, "chunk_size"); ok {
		opts = append(opts, chunker.WithChunkSize(size))
	}
	if overlap, ok := intSetting(settings, "overlap"); ok {
		opts = append(opts, chunker.WithOverlap(overlap))
	}
	if seps := stringsSetting(settings, "separators"); len(seps) > 0 {
		opts = append(opts, chunker.WithSeparators(seps...))
	}
	return chunker.New(opts...), nil
}

func intSetting(settings map[string]any, key string) (int, bool) {
	switch v := settings[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}

func stringsSetting(settings map[string]any, key string) []string {
	switch v := settings[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
