package domain

import (
	"bytes"
	"encoding/json"
)

// NoProfilesMessage is reported by the summary when the collection is empty.
const NoProfilesMessage = "No profiles loaded."

// SkillCount is the number of profiles mentioning a skill term.
type SkillCount struct {
	Skill string
	Count int
}

// Summary aggregates statistics over the raw profile collection.
// When Error is set the other fields are meaningless.
type Summary struct {
	TotalProfiles int
	TopSkills     []SkillCount
	Error         string
}

// MarshalJSON encodes the summary as {"total_profiles":N,"top_skills":{...}}
// keeping top_skills in ranking order, or as {"error":"..."}.
func (s Summary) MarshalJSON() ([]byte, error) {
	if s.Error != "" {
		return json.Marshal(struct {
			Error string `json:"error"`
		}{s.Error})
	}

	var buf bytes.Buffer
	buf.WriteString(`{"total_profiles":`)
	total, err := json.Marshal(s.TotalProfiles)
	if err != nil {
		return nil, err
	}
	buf.Write(total)
	buf.WriteString(`,"top_skills":{`)
	for i, sc := range s.TopSkills {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(sc.Skill)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		count, err := json.Marshal(sc.Count)
		if err != nil {
			return nil, err
		}
		buf.Write(count)
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}

// Count returns the count recorded for a skill, or 0.
func (s Summary) Count(skill string) int {
	for _, sc := range s.TopSkills {
		if sc.Skill == skill {
			return sc.Count
		}
	}
	return 0
}
