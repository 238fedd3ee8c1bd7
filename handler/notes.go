package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	M "github.com/vayron-digital/modulyn-one-sub000/model"
)

func GetNotesHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Get notes failed. Invalid project."})
		return
	}

	q := M.ParseListQuery(c, M.NoteListOptions())

	notes, total, errCode := M.ListNotes(projectID, q)
	if errCode != http.StatusFound {
		abortWithRemoteError(c, errCode, "Get notes failed.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":        notes,
		"total_count": total,
		"page":        q.Page,
		"page_size":   M.DefaultPageSize,
	})
}

type CreateNotePayload struct {
	Content     string   `json:"content"`
	Type        string   `json:"type"`
	IsImportant bool     `json:"is_important"`
	Tags        []string `json:"tags"`
	LeadID      string   `json:"lead_id"`
}

func CreateNoteHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Create note failed. Invalid project."})
		return
	}

	var payload CreateNotePayload
	if err := decodeJSONBody(c, &payload); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Create note failed. Json decode failed."})
		return
	}

	note := M.Note{
		Content:     payload.Content,
		Type:        payload.Type,
		IsImportant: payload.IsImportant,
		Tags:        M.TagsJsonb(payload.Tags),
		LeadID:      payload.LeadID,
		CreatedBy:   getAgentScope(c),
	}

	if valid, msg := M.ValidateNote(&note); !valid {
		abortWithValidationError(c, msg)
		return
	}

	created, errCode := M.CreateNote(projectID, &note)
	if errCode != http.StatusCreated {
		abortWithRemoteError(c, errCode, "Create note failed.")
		return
	}

	notifySuccess("Note created", "")
	c.JSON(http.StatusCreated, created)
}

type UpdateNotePayload struct {
	Content string    `json:"content"`
	Type    string    `json:"type"`
	Tags    *[]string `json:"tags"`
}

func UpdateNoteHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Update note failed. Invalid project."})
		return
	}

	var payload UpdateNotePayload
	if err := decodeJSONBody(c, &payload); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Update note failed. Json decode failed."})
		return
	}

	updated, errCode := M.UpdateNote(projectID, c.Params.ByName("id"),
		payload.Content, payload.Type, payload.Tags)
	if errCode != http.StatusAccepted {
		abortWithRemoteError(c, errCode, "Update note failed.")
		return
	}

	notifySuccess("Note updated", "")
	c.JSON(http.StatusAccepted, updated)
}

type NoteImportancePayload struct {
	IsImportant bool `json:"is_important"`
}

// SetNoteImportanceHandler flips the importance flag only, other
// columns stay untouched.
func SetNoteImportanceHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Update note failed. Invalid project."})
		return
	}

	var payload NoteImportancePayload
	if err := decodeJSONBody(c, &payload); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Update note failed. Json decode failed."})
		return
	}

	updated, errCode := M.SetNoteImportance(projectID, c.Params.ByName("id"), payload.IsImportant)
	if errCode != http.StatusAccepted {
		abortWithRemoteError(c, errCode, "Update note failed.")
		return
	}

	c.JSON(http.StatusAccepted, updated)
}

func DeleteNoteHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Delete note failed. Invalid project."})
		return
	}

	if !hasDeleteConfirmation(c) {
		confirmationRequired(c)
		return
	}

	errCode := M.DeleteNote(projectID, c.Params.ByName("id"))
	if errCode != http.StatusAccepted {
		abortWithRemoteError(c, errCode, "Delete note failed.")
		return
	}

	notifySuccess("Note deleted", "")
	c.JSON(http.StatusAccepted, gin.H{"status": "deleted"})
}
