package tests

import (
	"math"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	M "github.com/vayron-digital/modulyn-one-sub000/model"
)

func TestDBSetNoteImportanceRoundTrip(t *testing.T) {
	project := createTestProject(t)

	note, errCode := M.CreateNote(project.ID, &M.Note{
		Content:   "Prefers viewings after 6pm.",
		Type:      M.NoteTypeMeeting,
		Tags:      M.TagsJsonb([]string{"vip"}),
		CreatedBy: "agent-1",
	})
	assert.Equal(t, http.StatusCreated, errCode)
	assert.False(t, note.IsImportant)

	marked, errCode := M.SetNoteImportance(project.ID, note.ID, true)
	assert.Equal(t, http.StatusAccepted, errCode)
	assert.True(t, marked.IsImportant)

	// Everything but the flag and updated_at stays put.
	assert.Equal(t, note.Content, marked.Content)
	assert.Equal(t, note.Type, marked.Type)
	assert.Equal(t, note.CreatedBy, marked.CreatedBy)
	assert.Equal(t, string(note.Tags.RawMessage), string(marked.Tags.RawMessage))
	assert.True(t, math.Abs(note.CreatedAt.Sub(marked.CreatedAt).Seconds()) < 0.1)
	assert.False(t, marked.UpdatedAt.Before(note.UpdatedAt))

	unmarked, errCode := M.SetNoteImportance(project.ID, note.ID, false)
	assert.Equal(t, http.StatusAccepted, errCode)
	assert.False(t, unmarked.IsImportant)
	assert.Equal(t, note.Content, unmarked.Content)

	_, errCode = M.SetNoteImportance(project.ID, "does-not-exist", true)
	assert.Equal(t, http.StatusNotFound, errCode)
}

func TestDBCreateNoteVisibleInList(t *testing.T) {
	project := createTestProject(t)

	note, errCode := M.CreateNote(project.ID, &M.Note{
		Content: "Asked for the brochure.", CreatedBy: "agent-1"})
	assert.Equal(t, http.StatusCreated, errCode)

	notes, total, errCode := M.ListNotes(project.ID, M.DefaultListQuery())
	assert.Equal(t, http.StatusFound, errCode)
	assert.Equal(t, 1, total)
	if assert.Len(t, notes, 1) {
		assert.Equal(t, note.ID, notes[0].ID)
		assert.Equal(t, "Asked for the brochure.", notes[0].Content)
	}
}
