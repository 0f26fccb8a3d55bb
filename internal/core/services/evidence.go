package services

import (
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/profilerag/internal/core/domain"
)

// maxExcerptRunes bounds about-section excerpts before the ellipsis.
const maxExcerptRunes = 100

// EvidenceExtractor finds vocabulary terms in questions and collects
// per-person evidence for them from raw profiles.
type EvidenceExtractor struct {
	vocabulary []string
}

// NewEvidenceExtractor creates an extractor over domain.SkillVocabulary.
func NewEvidenceExtractor() *EvidenceExtractor {
	return &EvidenceExtractor{vocabulary: domain.SkillVocabulary}
}

// ExtractTerms returns the vocabulary terms contained in the question,
// in vocabulary order. Matching is a case-insensitive substring test.
func (e *EvidenceExtractor) ExtractTerms(question string) []string {
	q := strings.ToLower(question)

	var terms []string
	seen := make(map[string]bool, len(e.vocabulary))
	for _, term := range e.vocabulary {
		if seen[term] {
			continue
		}
		if strings.Contains(q, strings.ToLower(term)) {
			terms = append(terms, term)
			seen[term] = true
		}
	}
	return terms
}

// Analyze collects evidence for each term across the profiles.
// Terms without any evidence are dropped.
func (e *EvidenceExtractor) Analyze(terms []string, profiles []domain.Profile) domain.EvidenceMap {
	var result domain.EvidenceMap

	for _, term := range terms {
		needle := strings.ToLower(term)
		ev := domain.SkillEvidence{Term: term}
		experience := attributionSet{list: &ev.Experience}
		about := attributionSet{list: &ev.About}
		education := attributionSet{list: &ev.Education}

		for i := range profiles {
			p := &profiles[i]
			name := p.DisplayName()

			if excerpt, ok := experienceEvidence(p.Experiences, needle); ok {
				experience.put(name, excerpt)
			}
			if excerpt, ok := aboutEvidence(p.About, needle); ok {
				about.put(name, excerpt)
			}
			if excerpt, ok := educationEvidence(p.Education, needle); ok {
				education.put(name, excerpt)
			}
		}

		if !ev.IsEmpty() {
			result = append(result, ev)
		}
	}

	return result
}

// AnalyzeQuestion runs ExtractTerms followed by Analyze.
func (e *EvidenceExtractor) AnalyzeQuestion(question string, profiles []domain.Profile) domain.EvidenceMap {
	terms := e.ExtractTerms(question)
	if len(terms) == 0 {
		return nil
	}
	return e.Analyze(terms, profiles)
}

// experienceEvidence describes the first experience entry mentioning the term.
func experienceEvidence(entries []domain.Experience, needle string) (string, bool) {
	for _, exp := range entries {
		text := strings.ToLower(exp.PositionTitle + " " + exp.InstitutionName + " " + exp.Description)
		if !strings.Contains(text, needle) {
			continue
		}
		s := "Works as " + orDefault(exp.PositionTitle, "Unknown role") +
			" at " + orDefault(exp.InstitutionName, "Unknown company")
		if exp.Duration != "" {
			s += " (" + exp.Duration + ")"
		}
		return s, true
	}
	return "", false
}

// aboutEvidence quotes the first sentence of the about text mentioning the term.
func aboutEvidence(about, needle string) (string, bool) {
	if about == "" || !strings.Contains(strings.ToLower(about), needle) {
		return "", false
	}
	for _, sentence := range strings.Split(about, ".") {
		if !strings.Contains(strings.ToLower(sentence), needle) {
			continue
		}
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			return "", false
		}
		return `"` + truncateRunes(sentence, maxExcerptRunes) + `"`, true
	}
	// The term spans a sentence boundary (e.g. "node.js").
	return "", false
}

// educationEvidence describes the first education entry mentioning the term.
func educationEvidence(entries []domain.Education, needle string) (string, bool) {
	for _, edu := range entries {
		text := strings.ToLower(edu.Degree + " " + edu.InstitutionName + " " + edu.Description)
		if !strings.Contains(text, needle) {
			continue
		}
		s := "Studied " + orDefault(edu.Degree, "Unknown degree") +
			" at " + orDefault(edu.InstitutionName, "Unknown institution")
		if edu.Description != "" {
			s += " - " + edu.Description
		}
		return s, true
	}
	return "", false
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit]) + "..."
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// attributionSet keeps one attribution per name. A repeated name keeps its
// first position and takes the latest excerpt.
type attributionSet struct {
	list  *[]domain.Attribution
	index map[string]int
}

func (s *attributionSet) put(name, excerpt string) {
	if s.index == nil {
		s.index = make(map[string]int)
	}
	if i, ok := s.index[name]; ok {
		(*s.list)[i].Excerpt = excerpt
		return
	}
	s.index[name] = len(*s.list)
	*s.list = append(*s.list, domain.Attribution{Name: name, Excerpt: excerpt})
}
