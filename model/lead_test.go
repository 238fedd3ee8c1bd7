package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateLead(t *testing.T) {
	valid, _ := ValidateLead(&Lead{FirstName: "Amira", LastName: "Khan", Phone: "+971501234567"})
	assert.True(t, valid)

	// Each required field missing in turn.
	valid, msg := ValidateLead(&Lead{LastName: "Khan", Phone: "+971501234567"})
	assert.False(t, valid)
	assert.Equal(t, "First name is required.", msg)

	valid, msg = ValidateLead(&Lead{FirstName: "Amira", Phone: "+971501234567"})
	assert.False(t, valid)
	assert.Equal(t, "Last name is required.", msg)

	valid, msg = ValidateLead(&Lead{FirstName: "Amira", LastName: "Khan"})
	assert.False(t, valid)
	assert.Equal(t, "Phone is required.", msg)

	// Optional email is checked only when present.
	valid, _ = ValidateLead(&Lead{FirstName: "Amira", LastName: "Khan",
		Phone: "+971501234567", Email: "amira@example.com"})
	assert.True(t, valid)

	valid, _ = ValidateLead(&Lead{FirstName: "Amira", LastName: "Khan",
		Phone: "+971501234567", Email: "amira@"})
	assert.False(t, valid)

	valid, _ = ValidateLead(&Lead{FirstName: "Amira", LastName: "Khan",
		Phone: "+971501234567", Status: "frozen"})
	assert.False(t, valid)

	valid, _ = ValidateLead(&Lead{FirstName: "Amira", LastName: "Khan",
		Phone: "+971501234567", Status: LeadStatusQualified})
	assert.True(t, valid)
}
