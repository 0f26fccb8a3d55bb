// Package postprocessors turns normalised profile documents into chunks.
// Processors are built by name from a Registry and run in order by a Pipeline.
package postprocessors

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/profilerag/internal/core/domain"
	"github.com/custodia-labs/profilerag/internal/core/ports/driven"
)

// ErrEmptyPipeline is returned when a pipeline config names no processors.
var ErrEmptyPipeline = errors.New("pipeline has no processors")

// Pipeline runs processors in order. The first stage receives no chunks
// and creates them; later stages may rewrite them.
type Pipeline struct {
	stages []driven.PostProcessor
}

var _ driven.PostProcessorPipeline = (*Pipeline)(nil)

// NewPipeline returns a pipeline over the given stages.
func NewPipeline(stages ...driven.PostProcessor) *Pipeline {
	return &Pipeline{stages: stages}
}

// FromConfig builds each processor named in cfg, in order.
func FromConfig(r *Registry, cfg domain.PipelineConfig) (*Pipeline, error) {
	if len(cfg.Processors) == 0 {
		return nil, ErrEmptyPipeline
	}
	stages := make([]driven.PostProcessor, 0, len(cfg.Processors))
	for _, name := range cfg.Processors {
		p, err := r.Build(name, cfg.GetProcessorConfig(name))
		if err != nil {
			return nil, fmt.Errorf("build %s: %w", name, err)
		}
		stages = append(stages, p)
	}
	return NewPipeline(stages...), nil
}

// Stages returns the processor names in run order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}

// Process chunks one profile document. Chunks that a stage left without a
// source name or URL inherit them from the document, so every chunk can be
// attributed to its profile.
func (p *Pipeline) Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error) {
	if doc == nil {
		return nil, fmt.Errorf("%w: nil document", domain.ErrValidation)
	}

	var chunks []domain.Chunk
	for _, stage := range p.stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out, err := stage.Process(ctx, doc, chunks)
		if err != nil {
			return nil, fmt.Errorf("%s on profile %q: %w", stage.Name(), doc.Name, err)
		}
		chunks = out
	}

	for i := range chunks {
		c := &chunks[i]
		if c.SourceName == "" {
			c.SourceName = doc.Name
		}
		if c.SourceURL == "" {
			c.SourceURL = doc.URL
		}
	}
	return chunks, nil
}
