// Package chunker provides a recursive text chunking processor.
//
// Text is split on the first separator that occurs in it (paragraph, line,
// sentence, word, character). Pieces still longer than the chunk size are
// split again with the next separator. The pieces are then packed greedily
// into chunks, each new chunk starting with a tail of the previous one of at
// most the configured overlap. Separators stay attached to the piece before
// them, so chunks are exact substrings of the input. Lengths are in runes.
package chunker

import (
	"context"
	"strconv"

	"github.com/google/uuid"

	"github.com/custodia-labs/profilerag/internal/core/domain"
)

// Name is the registry name of the chunker.
const Name = "chunker"

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 200

// DefaultSeparators are tried in order. The empty separator splits
// between characters and always applies.
var DefaultSeparators = []string{"\n\n", "\n", ". ", " ", ""}

// chunkNamespace scopes deterministic chunk IDs.
var chunkNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("profilerag:chunk"))

// Processor splits document content into overlapping chunks.
// It implements the PostProcessor interface.
type Processor struct {
	chunkSize  int
	overlap    int
	separators []string
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(p *Processor) {
		if size > 0 {
			p.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(p *Processor) {
		if overlap >= 0 {
			p.overlap = overlap
		}
	}
}

// WithSeparators sets the separators, most significant first.
func WithSeparators(seps ...string) Option {
	return func(p *Processor) {
		if len(seps) > 0 {
			p.separators = append([]string(nil), seps...)
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		chunkSize:  DefaultChunkSize,
		overlap:    DefaultChunkOverlap,
		separators: DefaultSeparators,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Ensure overlap doesn't exceed chunk size
	if p.overlap >= p.chunkSize {
		p.overlap = p.chunkSize / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return Name
}

// Span is a chunk's rune range [Start, End) within the split text.
type Span struct {
	Start int
	End   int
}

// Len returns the span length in runes.
func (s Span) Len() int {
	return s.End - s.Start
}

// Process splits the document content into chunks.
// Input chunks are ignored; this processor creates new chunks from document content.
func (p *Processor) Process(_ context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	if doc.Content == "" {
		// Empty content produces no chunks
		return nil, nil
	}

	runes := []rune(doc.Content)
	spans := p.Split(doc.Content)
	chunks := make([]domain.Chunk, 0, len(spans))

	for i, s := range spans {
		chunks = append(chunks, domain.Chunk{
			ID:         ChunkID(doc.ID, i),
			DocumentID: doc.ID,
			SourceName: doc.Name,
			SourceURL:  doc.URL,
			Content:    string(runes[s.Start:s.End]),
			Position:   i,
		})
	}

	return chunks, nil
}

// ChunkID derives the deterministic ID of the chunk at position in a document.
func ChunkID(documentID string, position int) string {
	return uuid.NewSHA1(chunkNamespace, []byte(documentID+"#"+strconv.Itoa(position))).String()
}

// Split returns the chunk spans for text. Consecutive spans overlap by at
// most the configured overlap and together cover the whole text.
func (p *Processor) Split(text string) []Span {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	pieces := p.splitRecursive(runes, Span{0, len(runes)}, p.separators)
	return p.merge(pieces)
}

// splitRecursive breaks span into pieces no longer than the chunk size.
func (p *Processor) splitRecursive(runes []rune, span Span, seps []string) []Span {
	if span.Len() <= p.chunkSize {
		return []Span{span}
	}

	sep, rest := "", []string(nil)
	for i, s := range seps {
		if s == "" || containsRunes(runes[span.Start:span.End], []rune(s)) {
			sep, rest = s, seps[i+1:]
			break
		}
	}

	if sep == "" {
		return splitChars(span)
	}

	var pieces []Span
	for _, part := range splitAfter(runes, span, []rune(sep)) {
		if part.Len() <= p.chunkSize {
			pieces = append(pieces, part)
			continue
		}
		pieces = append(pieces, p.splitRecursive(runes, part, rest)...)
	}
	return pieces
}

// merge packs consecutive pieces into chunks of at most chunkSize,
// carrying a tail of at most overlap runes into the next chunk.
func (p *Processor) merge(pieces []Span) []Span {
	var (
		out    []Span
		window []Span
		total  int
	)

	for _, piece := range pieces {
		if total+piece.Len() > p.chunkSize && len(window) > 0 {
			out = append(out, Span{window[0].Start, window[len(window)-1].End})
			for len(window) > 0 && (total > p.overlap || total+piece.Len() > p.chunkSize) {
				total -= window[0].Len()
				window = window[1:]
			}
		}
		window = append(window, piece)
		total += piece.Len()
	}

	if len(window) > 0 {
		out = append(out, Span{window[0].Start, window[len(window)-1].End})
	}
	return out
}

// splitAfter splits span after each occurrence of sep.
func splitAfter(runes []rune, span Span, sep []rune) []Span {
	var parts []Span
	start := span.Start
	for i := span.Start; i+len(sep) <= span.End; {
		if equalRunes(runes[i:i+len(sep)], sep) {
			parts = append(parts, Span{start, i + len(sep)})
			i += len(sep)
			start = i
			continue
		}
		i++
	}
	if start < span.End {
		parts = append(parts, Span{start, span.End})
	}
	return parts
}

func splitChars(span Span) []Span {
	parts := make([]Span, 0, span.Len())
	for i := span.Start; i < span.End; i++ {
		parts = append(parts, Span{i, i + 1})
	}
	return parts
}

func containsRunes(haystack, needle []rune) bool {
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if equalRunes(haystack[i:i+len(needle)], needle) {
			return true
		}
	}
	return false
}

func equalRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
