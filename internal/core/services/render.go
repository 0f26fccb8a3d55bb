package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/profilerag/internal/core/domain"
)

// Headings and notices used in composed answers.
const (
	skillsHeading         = "Skills Analysis:"
	fallbackSkillsHeading = "Skills Analysis (Fallback Mode):"

	// NoEvidenceFallback is the fallback answer when no term has evidence.
	NoEvidenceFallback = "No relevant information found in the profiles for this question. " +
		"(Fallback mode - no LLM available)"

	// FallbackNote closes a fallback skills analysis.
	FallbackNote = "Note: This is a fallback response (no LLM available). " +
		"For more detailed analysis, configure an LLM provider (llm.providers) and run setup again."
)

// RenderEvidence renders an evidence map as a plain-text block:
//
//	Skills Analysis:
//
//	PYTHON
//	  Based on Experience:
//	    - Neha M: Works as Developer at Acme
//
//	Total People Found: 1
//	Names: Neha M
//
// An empty map renders as the empty string.
func RenderEvidence(m domain.EvidenceMap) string {
	return renderEvidence(skillsHeading, m)
}

// FallbackText builds the deterministic answer used when no language model
// is available. It is derived only from the evidence map.
func FallbackText(m domain.EvidenceMap) string {
	if m.IsEmpty() {
		return NoEvidenceFallback
	}
	return renderEvidence(fallbackSkillsHeading, m) + "\n" + FallbackNote
}

func renderEvidence(heading string, m domain.EvidenceMap) string {
	if m.IsEmpty() {
		return ""
	}

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n\n")

	for _, ev := range m {
		b.WriteString(strings.ToUpper(ev.Term))
		b.WriteString("\n")
		for _, kind := range domain.AllEvidenceKinds() {
			entries := ev.ByKind(kind)
			if len(entries) == 0 {
				continue
			}
			fmt.Fprintf(&b, "  %s:\n", kind.Label())
			for _, a := range entries {
				fmt.Fprintf(&b, "    - %s: %s\n", a.Name, a.Excerpt)
			}
		}
		b.WriteString("\n")
	}

	people := m.People()
	fmt.Fprintf(&b, "Total People Found: %d\n", len(people))
	fmt.Fprintf(&b, "Names: %s\n", strings.Join(people, ", "))

	return b.String()
}
