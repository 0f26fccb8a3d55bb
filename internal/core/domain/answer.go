package domain

// QueryState is a step of the per-question answer pipeline.
type QueryState string

// Answer pipeline states, in order. Extracting is conditional.
const (
	StateReceived   QueryState = "received"
	StateRetrieving QueryState = "retrieving"
	StateGenerating QueryState = "generating"
	StateExtracting QueryState = "extracting"
	StateComposed   QueryState = "composed"
)

// GenerationKind tags how the prose part of an answer was produced.
type GenerationKind string

const (
	// GenerationGenerated means a language model wrote the prose.
	GenerationGenerated GenerationKind = "generated"

	// GenerationFallback means the prose was assembled deterministically
	// from skill evidence because no language model was usable.
	GenerationFallback GenerationKind = "fallback"
)

// Generation is the tagged output of the generating step.
type Generation struct {
	Kind GenerationKind `json:"kind"`
	Text string         `json:"text"`
}

// Generated builds a Generation produced by a language model.
func Generated(text string) Generation {
	return Generation{Kind: GenerationGenerated, Text: text}
}

// Fallback builds a Generation produced without a language model.
func Fallback(text string) Generation {
	return Generation{Kind: GenerationFallback, Text: text}
}

// IsFallback reports whether the prose came from the deterministic path.
func (g Generation) IsFallback() bool {
	return g.Kind == GenerationFallback
}

// Answer is the composed reply to a question.
type Answer struct {
	// Question is the trimmed question text.
	Question string `json:"question"`

	// Text is the final answer shown to the user.
	Text string `json:"text"`

	// Generation is the prose produced by the generating step.
	Generation Generation `json:"generation"`

	// Evidence is set when the question was evidence-seeking and matched.
	Evidence EvidenceMap `json:"evidence,omitempty"`

	// Context lists the retrieved chunks used as grounding.
	Context []Chunk `json:"-"`

	// States records the pipeline states visited, in order.
	States []QueryState `json:"states"`

	// Warnings holds non-fatal issues such as a generation failure
	// that was recovered by the fallback path.
	Warnings []string `json:"warnings,omitempty"`
}
