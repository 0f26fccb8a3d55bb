package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSummary_MarshalJSON_Error tests the empty collection encoding
func TestSummary_MarshalJSON_Error(t *testing.T) {
	data, err := json.Marshal(Summary{Error: NoProfilesMessage})
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"No profiles loaded."}`, string(data))
}

// TestSummary_MarshalJSON_KeepsOrder tests that top_skills keeps ranking order
func TestSummary_MarshalJSON_KeepsOrder(t *testing.T) {
	s := Summary{
		TotalProfiles: 3,
		TopSkills: []SkillCount{
			{Skill: "sql", Count: 3},
			{Skill: "python", Count: 2},
			{Skill: "node.js", Count: 1},
		},
	}

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `{"total_profiles":3,"top_skills":{"sql":3,"python":2,"node.js":1}}`, string(data))
}

// TestSummary_MarshalJSON_NoSkills tests the encoding with no matches
func TestSummary_MarshalJSON_NoSkills(t *testing.T) {
	data, err := json.Marshal(Summary{TotalProfiles: 2})
	require.NoError(t, err)
	assert.Equal(t, `{"total_profiles":2,"top_skills":{}}`, string(data))
}

// TestSummary_Count tests count lookup
func TestSummary_Count(t *testing.T) {
	s := Summary{TopSkills: []SkillCount{{Skill: "react", Count: 4}}}
	assert.Equal(t, 4, s.Count("react"))
	assert.Equal(t, 0, s.Count("java"))
}

// TestSummaryResult_Embeds tests that the result envelope nests the summary
func TestSummaryResult_Embeds(t *testing.T) {
	r := SummaryResult{Success: true, Summary: Summary{TotalProfiles: 1}}
	data, err := json.Marshal(r)
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"summary":{"total_profiles":1,"top_skills":{}}}`, string(data))
}

// TestVocabularies tests the fixed vocabularies
func TestVocabularies(t *testing.T) {
	assert.Len(t, SkillVocabulary, 47)
	assert.Len(t, SummaryVocabulary, 16)
	assert.Equal(t, SkillVocabulary[:16], SummaryVocabulary)
	assert.Len(t, EvidenceTriggers, 6)

	seen := make(map[string]bool)
	for _, term := range SkillVocabulary {
		assert.False(t, seen[term], "duplicate term %q", term)
		seen[term] = true
	}
}
