package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateNote(t *testing.T) {
	valid, _ := ValidateNote(&Note{Content: "Prefers off-plan."})
	assert.True(t, valid)

	valid, msg := ValidateNote(&Note{})
	assert.False(t, valid)
	assert.Equal(t, "Note content is required.", msg)

	valid, _ = ValidateNote(&Note{Content: "x", Type: "rant"})
	assert.False(t, valid)

	valid, _ = ValidateNote(&Note{Content: "x", Type: NoteTypeFollowUp})
	assert.True(t, valid)
}

func TestTagsJsonb(t *testing.T) {
	assert.Equal(t, `["hot","waterfront"]`, string(TagsJsonb([]string{"hot", "waterfront"}).RawMessage))

	// Nil encodes as an empty list, not null.
	assert.Equal(t, `[]`, string(TagsJsonb(nil).RawMessage))
}
