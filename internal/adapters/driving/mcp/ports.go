package mcp

import (
	"github.com/custodia-labs/profilerag/internal/core/ports/driving"
)

// Ports aggregates the driving ports required by the MCP server.
type Ports struct {
	// Profiles answers questions over the profile collection.
	Profiles driving.ProfileService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil || p.Profiles == nil {
		return ErrMissingProfileService
	}
	return nil
}
