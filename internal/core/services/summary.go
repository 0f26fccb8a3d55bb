package services

import (
	"context"
	"sort"
	"strings"

	"github.com/custodia-labs/profilerag/internal/core/domain"
	"github.com/custodia-labs/profilerag/internal/core/ports/driven"
	"github.com/custodia-labs/profilerag/internal/logger"
)

// SummaryReporter counts how many profiles mention each summary skill.
type SummaryReporter struct {
	normaliser driven.Normaliser
	vocabulary []string
	limit      int
}

// NewSummaryReporter creates a reporter that matches skills against
// normalised profile text.
func NewSummaryReporter(normaliser driven.Normaliser) *SummaryReporter {
	return &SummaryReporter{
		normaliser: normaliser,
		vocabulary: domain.SummaryVocabulary,
		limit:      domain.TopSkillsLimit,
	}
}

// Summarize reports the profile count and the most common skills.
// Skills with no matches are omitted; ties keep vocabulary order.
func (r *SummaryReporter) Summarize(ctx context.Context, profiles []domain.Profile) domain.Summary {
	if len(profiles) == 0 {
		return domain.Summary{Error: domain.NoProfilesMessage}
	}

	texts := make([]string, 0, len(profiles))
	for i := range profiles {
		res, err := r.normaliser.Normalise(ctx, &profiles[i], i)
		if err != nil {
			logger.Warn("Normalise %q for summary: %v", profiles[i].DisplayName(), err)
			continue
		}
		texts = append(texts, strings.ToLower(res.Document.Content))
	}

	counts := make([]domain.SkillCount, 0, len(r.vocabulary))
	for _, skill := range r.vocabulary {
		n := 0
		for _, text := range texts {
			if strings.Contains(text, skill) {
				n++
			}
		}
		if n > 0 {
			counts = append(counts, domain.SkillCount{Skill: skill, Count: n})
		}
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	if len(counts) > r.limit {
		counts = counts[:r.limit]
	}

	return domain.Summary{TotalProfiles: len(profiles), TopSkills: counts}
}
