package tui

import "errors"

// ErrMissingProfileService is returned when the profile service is not provided.
var ErrMissingProfileService = errors.New("tui: profile service is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")
