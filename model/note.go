package model

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	"github.com/jinzhu/gorm/dialects/postgres"
	log "github.com/sirupsen/logrus"

	C "github.com/vayron-digital/modulyn-one-sub000/config"
)

type Note struct {
	ID          string         `gorm:"primary_key:true" json:"id"`
	ProjectID   uint64         `gorm:"primary_key:true" json:"project_id"`
	LeadID      string         `json:"lead_id"`
	Content     string         `gorm:"not null" json:"content"`
	Type        string         `gorm:"type:varchar(10);not null;default:'general'" json:"type"`
	IsImportant bool           `gorm:"not null;default:false" json:"is_important"`
	Tags        postgres.Jsonb `json:"tags"`
	CreatedBy   string         `json:"created_by"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

const (
	NoteTypeGeneral  = "general"
	NoteTypeMeeting  = "meeting"
	NoteTypeReminder = "reminder"
	NoteTypeFollowUp = "follow_up"
)

var NoteTypes = []string{NoteTypeGeneral, NoteTypeMeeting, NoteTypeReminder, NoteTypeFollowUp}

func isValidNoteType(t string) bool {
	for _, nt := range NoteTypes {
		if nt == t {
			return true
		}
	}
	return false
}

func ValidateNote(note *Note) (bool, string) {
	if note.Content == "" {
		return false, "Note content is required."
	}

	if note.Type != "" && !isValidNoteType(note.Type) {
		return false, "Invalid note type."
	}

	return true, ""
}

// TagsJsonb encodes a tag list for the jsonb column.
func TagsJsonb(tags []string) postgres.Jsonb {
	if tags == nil {
		tags = []string{}
	}
	raw, _ := json.Marshal(tags)
	return postgres.Jsonb{RawMessage: raw}
}

var noteListOptions = ListOptions{
	SearchColumns: []string{"content"},
	FilterColumns: map[string]bool{"type": true, "lead_id": true, "created_by": true,
		"is_important": true},
	SortColumns: map[string]bool{"created_at": true, "updated_at": true},
	DateColumn:  "created_at",
}

func NoteListOptions() ListOptions {
	return noteListOptions
}

func ListNotes(projectID uint64, q ListQuery) ([]Note, int, int) {
	db := C.GetServices().Db

	if projectID == 0 {
		return nil, 0, http.StatusBadRequest
	}

	base := q.applyFilters(db.Model(&Note{}).Where("project_id = ?", projectID), noteListOptions)

	var total int
	if err := base.Count(&total).Error; err != nil {
		log.WithField("project_id", projectID).WithError(err).Error("Failed to count notes.")
		return nil, 0, http.StatusInternalServerError
	}

	var notes []Note
	if err := q.applyOrderAndPage(base, noteListOptions).Find(&notes).Error; err != nil {
		log.WithField("project_id", projectID).WithError(err).Error("Failed to list notes.")
		return nil, 0, http.StatusInternalServerError
	}

	return notes, total, http.StatusFound
}

func CreateNote(projectID uint64, note *Note) (*Note, int) {
	db := C.GetServices().Db

	if projectID == 0 || note.ID != "" {
		return nil, http.StatusBadRequest
	}

	if valid, _ := ValidateNote(note); !valid {
		return nil, http.StatusBadRequest
	}

	note.ID = uuid.New().String()
	note.ProjectID = projectID
	if note.Type == "" {
		note.Type = NoteTypeGeneral
	}
	if note.Tags.RawMessage == nil {
		note.Tags = TagsJsonb(nil)
	}

	if err := db.Create(note).Error; err != nil {
		log.WithField("project_id", projectID).WithError(err).Error("Failed to create note.")
		return nil, http.StatusInternalServerError
	}

	publishChange(projectID, TableNotes)
	return note, http.StatusCreated
}

func GetNote(projectID uint64, id string) (*Note, int) {
	db := C.GetServices().Db

	if projectID == 0 || id == "" {
		return nil, http.StatusBadRequest
	}

	var note Note
	err := db.Where("project_id = ? AND id = ?", projectID, id).First(&note).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, http.StatusNotFound
		}
		log.WithFields(log.Fields{"project_id": projectID,
			"note_id": id}).WithError(err).Error("Failed to get note.")
		return nil, http.StatusInternalServerError
	}

	return &note, http.StatusFound
}

func UpdateNote(projectID uint64, id string, content, noteType string, tags *[]string) (*Note, int) {
	db := C.GetServices().Db

	note, errCode := GetNote(projectID, id)
	if errCode != http.StatusFound {
		return nil, errCode
	}

	if content != "" {
		note.Content = content
	}
	if noteType != "" {
		if !isValidNoteType(noteType) {
			return nil, http.StatusBadRequest
		}
		note.Type = noteType
	}
	if tags != nil {
		note.Tags = TagsJsonb(*tags)
	}

	if valid, _ := ValidateNote(note); !valid {
		return nil, http.StatusBadRequest
	}

	if err := db.Save(note).Error; err != nil {
		log.WithFields(log.Fields{"project_id": projectID,
			"note_id": id}).WithError(err).Error("Failed to update note.")
		return nil, http.StatusInternalServerError
	}

	publishChange(projectID, TableNotes)
	return note, http.StatusAccepted
}

// SetNoteImportance toggles is_important and nothing else. Only
// updated_at moves alongside it.
func SetNoteImportance(projectID uint64, id string, isImportant bool) (*Note, int) {
	db := C.GetServices().Db

	if projectID == 0 || id == "" {
		return nil, http.StatusBadRequest
	}

	query := db.Model(&Note{}).Where("project_id = ? AND id = ?", projectID, id).
		Update("is_important", isImportant)
	if query.Error != nil {
		log.WithFields(log.Fields{"project_id": projectID,
			"note_id": id}).WithError(query.Error).Error("Failed to set note importance.")
		return nil, http.StatusInternalServerError
	}

	if query.RowsAffected == 0 {
		return nil, http.StatusNotFound
	}

	publishChange(projectID, TableNotes)

	note, errCode := GetNote(projectID, id)
	if errCode != http.StatusFound {
		return nil, errCode
	}
	return note, http.StatusAccepted
}

func DeleteNote(projectID uint64, id string) int {
	db := C.GetServices().Db

	if projectID == 0 || id == "" {
		return http.StatusBadRequest
	}

	query := db.Where("project_id = ? AND id = ?", projectID, id).Delete(&Note{})
	if query.Error != nil {
		log.WithFields(log.Fields{"project_id": projectID,
			"note_id": id}).WithError(query.Error).Error("Failed to delete note.")
		return http.StatusInternalServerError
	}

	if query.RowsAffected == 0 {
		return http.StatusNotFound
	}

	publishChange(projectID, TableNotes)
	return http.StatusAccepted
}
