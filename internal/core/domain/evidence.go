package domain

import "sort"

// EvidenceKind names the profile section a piece of evidence came from.
type EvidenceKind string

// Evidence kinds, in rendering order.
const (
	EvidenceExperience EvidenceKind = "experience"
	EvidenceAbout      EvidenceKind = "about"
	EvidenceEducation  EvidenceKind = "education"
)

// AllEvidenceKinds returns the evidence kinds in rendering order.
func AllEvidenceKinds() []EvidenceKind {
	return []EvidenceKind{EvidenceExperience, EvidenceAbout, EvidenceEducation}
}

// Label returns the heading used when rendering this kind.
func (k EvidenceKind) Label() string {
	switch k {
	case EvidenceExperience:
		return "Based on Experience"
	case EvidenceAbout:
		return "Based on About Section"
	case EvidenceEducation:
		return "Based on Education"
	default:
		return UnknownName
	}
}

// Attribution ties an evidence excerpt to exactly one person.
type Attribution struct {
	Name    string `json:"name"`
	Excerpt string `json:"excerpt"`
}

// SkillEvidence holds everyone with evidence for a single skill term.
// Within each kind, attributions keep profile collection order.
type SkillEvidence struct {
	Term       string        `json:"term"`
	Experience []Attribution `json:"experience,omitempty"`
	About      []Attribution `json:"about,omitempty"`
	Education  []Attribution `json:"education,omitempty"`
}

// ByKind returns the attributions recorded for the given kind.
func (e SkillEvidence) ByKind(kind EvidenceKind) []Attribution {
	switch kind {
	case EvidenceExperience:
		return e.Experience
	case EvidenceAbout:
		return e.About
	case EvidenceEducation:
		return e.Education
	default:
		return nil
	}
}

// IsEmpty reports whether no kind holds any attribution.
func (e SkillEvidence) IsEmpty() bool {
	return len(e.Experience) == 0 && len(e.About) == 0 && len(e.Education) == 0
}

// EvidenceMap is the ordered result of skill analysis: terms appear in
// vocabulary order and only when they have at least one attribution.
type EvidenceMap []SkillEvidence

// IsEmpty reports whether the map holds no terms.
func (m EvidenceMap) IsEmpty() bool {
	return len(m) == 0
}

// Get returns the evidence for a term, if present.
func (m EvidenceMap) Get(term string) (SkillEvidence, bool) {
	for _, e := range m {
		if e.Term == term {
			return e, true
		}
	}
	return SkillEvidence{}, false
}

// People returns every attributed name across all terms and kinds, sorted.
func (m EvidenceMap) People() []string {
	seen := make(map[string]struct{})
	for _, e := range m {
		for _, kind := range AllEvidenceKinds() {
			for _, a := range e.ByKind(kind) {
				seen[a.Name] = struct{}{}
			}
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
