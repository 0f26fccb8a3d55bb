package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPorts(t *testing.T) {
	svc := &mockProfileService{}
	ports := NewPorts(svc)

	require.NotNil(t, ports)
	assert.Equal(t, svc, ports.Profiles)
	assert.NoError(t, ports.Validate())
}

func TestPorts_Validate(t *testing.T) {
	assert.ErrorIs(t, (&Ports{}).Validate(), ErrMissingProfileService)

	var nilPorts *Ports
	assert.ErrorIs(t, nilPorts.Validate(), ErrInvalidPorts)
}
