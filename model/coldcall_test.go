package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitName(t *testing.T) {
	first, last := splitName("Amira Khan")
	assert.Equal(t, "Amira", first)
	assert.Equal(t, "Khan", last)

	first, last = splitName("Jose Luis de la Cruz")
	assert.Equal(t, "Jose", first)
	assert.Equal(t, "Cruz", last)

	// A single word fills both.
	first, last = splitName("Cher")
	assert.Equal(t, "Cher", first)
	assert.Equal(t, "Cher", last)

	first, last = splitName("   ")
	assert.Equal(t, "Unknown", first)
	assert.Equal(t, "Unknown", last)
}

func TestValidateColdCall(t *testing.T) {
	valid, _ := ValidateColdCall(&ColdCall{Phone: "+971501234567"})
	assert.True(t, valid)

	valid, msg := ValidateColdCall(&ColdCall{})
	assert.False(t, valid)
	assert.NotEmpty(t, msg)

	valid, _ = ValidateColdCall(&ColdCall{Phone: "+971501234567", Status: "sleeping"})
	assert.False(t, valid)

	valid, _ = ValidateColdCall(&ColdCall{Phone: "+971501234567", Priority: "urgent"})
	assert.False(t, valid)

	// Completed without an outcome is rejected.
	valid, _ = ValidateColdCall(&ColdCall{Phone: "+971501234567", Status: ColdCallStatusCompleted})
	assert.False(t, valid)

	valid, _ = ValidateColdCall(&ColdCall{Phone: "+971501234567",
		Status: ColdCallStatusCompleted, Outcome: "Not a fit"})
	assert.True(t, valid)
}
