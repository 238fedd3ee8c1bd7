package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCall(t *testing.T) {
	valid, _ := ValidateCall(&Call{Type: CallTypeOutbound})
	assert.True(t, valid)

	valid, msg := ValidateCall(&Call{})
	assert.False(t, valid)
	assert.NotEmpty(t, msg)

	valid, _ = ValidateCall(&Call{Type: "carrier_pigeon"})
	assert.False(t, valid)

	valid, _ = ValidateCall(&Call{Type: CallTypeInbound, Status: "pending"})
	assert.False(t, valid)

	// Completed requires an outcome.
	valid, msg = ValidateCall(&Call{Type: CallTypeOutbound, Status: CallStatusCompleted})
	assert.False(t, valid)
	assert.Equal(t, "Outcome is required to complete a call.", msg)

	valid, _ = ValidateCall(&Call{Type: CallTypeOutbound,
		Status: CallStatusCompleted, Outcome: "interested"})
	assert.True(t, valid)

	valid, _ = ValidateCall(&Call{Type: CallTypeOutbound, Duration: -30})
	assert.False(t, valid)
}
