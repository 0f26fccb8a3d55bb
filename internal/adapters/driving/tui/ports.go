// Package tui provides an interactive terminal user interface for profilerag.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/profilerag/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the TUI.
type Ports struct {
	// Profiles answers questions and manages the index.
	Profiles driving.ProfileService
}

// NewPorts creates a new Ports aggregate.
func NewPorts(profiles driving.ProfileService) *Ports {
	return &Ports{Profiles: profiles}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Profiles == nil {
		return ErrMissingProfileService
	}
	return nil
}
