package domain

import "strings"

// UnknownName is used for attribution when a profile has no name.
const UnknownName = "Unknown"

// Profile is one person's professional record as collected from a
// profile page. Profiles are read-only to the core.
type Profile struct {
	// Name is the person's display name. May be empty.
	Name string `json:"name" yaml:"name"`

	// About is the free-text biography section.
	About string `json:"about,omitempty" yaml:"about,omitempty"`

	// Experiences is the ordered work history.
	Experiences []Experience `json:"experiences,omitempty" yaml:"experiences,omitempty"`

	// Education is the ordered education history.
	Education []Education `json:"education,omitempty" yaml:"education,omitempty"`

	// LinkedInURL is the natural key used for de-duplication.
	// An empty URL never matches another profile.
	LinkedInURL string `json:"linkedin_url" yaml:"linkedin_url"`
}

// Experience is a single work history entry.
type Experience struct {
	PositionTitle   string `json:"position_title,omitempty" yaml:"position_title,omitempty"`
	InstitutionName string `json:"institution_name,omitempty" yaml:"institution_name,omitempty"`
	Description     string `json:"description,omitempty" yaml:"description,omitempty"`
	Duration        string `json:"duration,omitempty" yaml:"duration,omitempty"`
	Location        string `json:"location,omitempty" yaml:"location,omitempty"`
}

// Education is a single education entry.
type Education struct {
	Degree          string `json:"degree,omitempty" yaml:"degree,omitempty"`
	InstitutionName string `json:"institution_name,omitempty" yaml:"institution_name,omitempty"`
	Description     string `json:"description,omitempty" yaml:"description,omitempty"`
	FromDate        string `json:"from_date,omitempty" yaml:"from_date,omitempty"`
	ToDate          string `json:"to_date,omitempty" yaml:"to_date,omitempty"`
}

// DisplayName returns the name used when attributing evidence.
func (p Profile) DisplayName() string {
	if p.Name == "" {
		return UnknownName
	}
	return p.Name
}

// HasURL reports whether the profile carries a usable de-duplication key.
func (p Profile) HasURL() bool {
	return strings.TrimSpace(p.LinkedInURL) != ""
}

// MergeProfiles appends incoming profiles to existing ones, keeping the first
// occurrence of every non-empty linkedin_url. Profiles without a URL are always
// kept. It returns the merged collection and how many incoming profiles were
// accepted and rejected.
func MergeProfiles(existing, incoming []Profile) (merged []Profile, accepted, rejected int) {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	merged = make([]Profile, 0, len(existing)+len(incoming))

	for _, p := range existing {
		if p.HasURL() {
			seen[p.LinkedInURL] = struct{}{}
		}
		merged = append(merged, p)
	}

	for _, p := range incoming {
		if p.HasURL() {
			if _, dup := seen[p.LinkedInURL]; dup {
				rejected++
				continue
			}
			seen[p.LinkedInURL] = struct{}{}
		}
		merged = append(merged, p)
		accepted++
	}

	return merged, accepted, rejected
}
