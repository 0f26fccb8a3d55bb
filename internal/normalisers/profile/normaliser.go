// Package profile renders profile records as searchable documents.
package profile

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/custodia-labs/profilerag/internal/core/domain"
	"github.com/custodia-labs/profilerag/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// documentNamespace scopes document IDs to this normaliser.
var documentNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("profilerag/document"))

// Field separator used inside experience and education lines.
const fieldSeparator = " | "

// Normaliser handles profile records.
type Normaliser struct{}

// New creates a new profile normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise converts a profile to a normalised document.
// Chunking is handled by the PostProcessor pipeline.
func (n *Normaliser) Normalise(_ context.Context, p *domain.Profile, position int) (*driven.NormaliseResult, error) {
	if p == nil {
		return nil, fmt.Errorf("%w: nil profile", domain.ErrValidation)
	}

	doc := domain.Document{
		ID:      DocumentID(p, position),
		Name:    p.DisplayName(),
		URL:     p.LinkedInURL,
		Content: Text(p),
		Metadata: map[string]string{
			domain.MetadataName:        p.DisplayName(),
			domain.MetadataLinkedInURL: p.LinkedInURL,
			domain.MetadataProfileType: domain.ProfileTypeLinkedIn,
		},
	}

	return &driven.NormaliseResult{Document: doc}, nil
}

// DocumentID derives a stable identifier from the collection position and
// the profile's URL, or its name when the URL is empty.
func DocumentID(p *domain.Profile, position int) string {
	key := p.LinkedInURL
	if !p.HasURL() {
		key = p.Name
	}
	return uuid.NewSHA1(documentNamespace, []byte(strconv.Itoa(position)+"\x00"+key)).String()
}

// Text renders the canonical searchable text of a profile. Empty sections and
// empty fields are omitted.
func Text(p *domain.Profile) string {
	var lines []string

	if p.Name != "" {
		lines = append(lines, "Name: "+p.Name)
	}
	if p.About != "" {
		lines = append(lines, "About: "+p.About)
	}

	if len(p.Experiences) > 0 {
		lines = append(lines, "Experience:")
		for _, exp := range p.Experiences {
			if line := experienceLine(exp); line != "" {
				lines = append(lines, line)
			}
		}
	}

	if len(p.Education) > 0 {
		lines = append(lines, "Education:")
		for _, edu := range p.Education {
			if line := educationLine(edu); line != "" {
				lines = append(lines, line)
			}
		}
	}

	return strings.Join(lines, "\n")
}

func experienceLine(exp domain.Experience) string {
	var fields []string
	fields = appendField(fields, "Position", exp.PositionTitle)
	fields = appendField(fields, "Company", exp.InstitutionName)
	fields = appendField(fields, "Description", exp.Description)
	fields = appendField(fields, "Duration", exp.Duration)
	fields = appendField(fields, "Location", exp.Location)
	return bullet(fields)
}

func educationLine(edu domain.Education) string {
	var fields []string
	fields = appendField(fields, "Degree", edu.Degree)
	fields = appendField(fields, "Institution", edu.InstitutionName)
	fields = appendField(fields, "Description", edu.Description)
	// A period needs both ends.
	if edu.FromDate != "" && edu.ToDate != "" {
		fields = append(fields, "Period: "+edu.FromDate+" to "+edu.ToDate)
	}
	return bullet(fields)
}

func appendField(fields []string, label, value string) []string {
	if value == "" {
		return fields
	}
	return append(fields, label+": "+value)
}

func bullet(fields []string) string {
	if len(fields) == 0 {
		return ""
	}
	return "  - " + strings.Join(fields, fieldSeparator)
}
