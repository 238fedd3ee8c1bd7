package model

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/imdario/mergo"
	"github.com/jinzhu/gorm"
	"github.com/jinzhu/now"
	log "github.com/sirupsen/logrus"

	C "github.com/vayron-digital/modulyn-one-sub000/config"
)

// Event is a scheduler entry, either a task or an appointment.
type Event struct {
	ID            string    `gorm:"primary_key:true" json:"id"`
	ProjectID     uint64    `gorm:"primary_key:true" json:"project_id"`
	Title         string    `gorm:"not null" json:"title"`
	Description   string    `json:"description"`
	StartTime     time.Time `gorm:"not null" json:"start_time"`
	EndTime       time.Time `gorm:"not null" json:"end_time"`
	Type          string    `gorm:"type:varchar(15);not null;default:'task'" json:"type"`
	RecurringRule string    `json:"recurring_rule"`
	AssignedTo    string    `json:"assigned_to"`
	Location      string    `json:"location"`
	CreatedBy     string    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

const (
	EventTypeTask        = "task"
	EventTypeAppointment = "appointment"

	EventRangeToday = "today"
	EventRangeWeek  = "week"
)

func isValidEventType(t string) bool {
	return t == EventTypeTask || t == EventTypeAppointment
}

func ValidateEvent(event *Event) (bool, string) {
	if event.Title == "" {
		return false, "Title is required."
	}

	if event.StartTime.IsZero() || event.EndTime.IsZero() {
		return false, "Start and end times are required."
	}

	if !event.EndTime.After(event.StartTime) {
		return false, "End time must be after start time."
	}

	if event.Type != "" && !isValidEventType(event.Type) {
		return false, "Invalid event type."
	}

	return true, ""
}

// Overlaps - half-open interval overlap. Back to back events do not
// conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

var eventListOptions = ListOptions{
	SearchColumns: []string{"title", "description", "location"},
	FilterColumns: map[string]bool{"type": true, "assigned_to": true, "created_by": true},
	SortColumns:   map[string]bool{"created_at": true, "start_time": true, "title": true},
	DateColumn:    "start_time",
}

func EventListOptions() ListOptions {
	return eventListOptions
}

func ListEvents(projectID uint64, q ListQuery) ([]Event, int, int) {
	db := C.GetServices().Db

	if projectID == 0 {
		return nil, 0, http.StatusBadRequest
	}

	base := q.applyFilters(db.Model(&Event{}).Where("project_id = ?", projectID), eventListOptions)

	var total int
	if err := base.Count(&total).Error; err != nil {
		log.WithField("project_id", projectID).WithError(err).Error("Failed to count events.")
		return nil, 0, http.StatusInternalServerError
	}

	var events []Event
	if err := q.applyOrderAndPage(base, eventListOptions).Find(&events).Error; err != nil {
		log.WithField("project_id", projectID).WithError(err).Error("Failed to list events.")
		return nil, 0, http.StatusInternalServerError
	}

	return events, total, http.StatusFound
}

// RangeWindow resolves a named range to a [from, to) window in the
// server timezone.
func RangeWindow(name string, at time.Time) (time.Time, time.Time, bool) {
	n := now.New(at)

	switch name {
	case EventRangeToday:
		return n.BeginningOfDay(), n.EndOfDay(), true
	case EventRangeWeek:
		return n.BeginningOfWeek(), n.EndOfWeek(), true
	}

	return time.Time{}, time.Time{}, false
}

// GetEventsInRange returns every project event overlapping the
// window, ordered by start.
func GetEventsInRange(projectID uint64, from, to time.Time) ([]Event, int) {
	db := C.GetServices().Db

	if projectID == 0 {
		return nil, http.StatusBadRequest
	}

	var events []Event
	err := db.Where("project_id = ? AND start_time < ? AND end_time > ?", projectID, to, from).
		Order("start_time ASC").Find(&events).Error
	if err != nil {
		log.WithField("project_id", projectID).WithError(err).Error("Failed to get events in range.")
		return nil, http.StatusInternalServerError
	}

	return events, http.StatusFound
}

// FindConflictingEvents returns the agent's events overlapping the
// candidate window, excluding excludeID when editing in place.
func FindConflictingEvents(projectID uint64, assignedTo string, start, end time.Time, excludeID string) ([]Event, int) {
	db := C.GetServices().Db

	if projectID == 0 || start.IsZero() || end.IsZero() {
		return nil, http.StatusBadRequest
	}

	query := db.Where("project_id = ? AND start_time < ? AND end_time > ?", projectID, end, start)
	if assignedTo != "" {
		query = query.Where("assigned_to = ?", assignedTo)
	}
	if excludeID != "" {
		query = query.Where("id != ?", excludeID)
	}

	var events []Event
	if err := query.Order("start_time ASC").Find(&events).Error; err != nil {
		log.WithField("project_id", projectID).WithError(err).Error("Failed to find conflicting events.")
		return nil, http.StatusInternalServerError
	}

	return events, http.StatusFound
}

func CreateEvent(projectID uint64, event *Event) (*Event, int) {
	db := C.GetServices().Db

	if projectID == 0 || event.ID != "" {
		return nil, http.StatusBadRequest
	}

	if valid, _ := ValidateEvent(event); !valid {
		return nil, http.StatusBadRequest
	}

	event.ID = uuid.New().String()
	event.ProjectID = projectID
	if event.Type == "" {
		event.Type = EventTypeTask
	}

	if err := db.Create(event).Error; err != nil {
		log.WithField("project_id", projectID).WithError(err).Error("Failed to create event.")
		return nil, http.StatusInternalServerError
	}

	publishChange(projectID, TableEvents)
	return event, http.StatusCreated
}

func GetEvent(projectID uint64, id string) (*Event, int) {
	db := C.GetServices().Db

	if projectID == 0 || id == "" {
		return nil, http.StatusBadRequest
	}

	var event Event
	err := db.Where("project_id = ? AND id = ?", projectID, id).First(&event).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, http.StatusNotFound
		}
		log.WithFields(log.Fields{"project_id": projectID,
			"event_id": id}).WithError(err).Error("Failed to get event.")
		return nil, http.StatusInternalServerError
	}

	return &event, http.StatusFound
}

func UpdateEvent(projectID uint64, id string, partial *Event) (*Event, int) {
	db := C.GetServices().Db

	event, errCode := GetEvent(projectID, id)
	if errCode != http.StatusFound {
		return nil, errCode
	}

	partial.ID = ""
	partial.ProjectID = 0
	partial.CreatedAt = time.Time{}

	if err := mergo.Merge(event, partial, mergo.WithOverride); err != nil {
		log.WithError(err).Error("Failed to merge event update.")
		return nil, http.StatusInternalServerError
	}

	if valid, _ := ValidateEvent(event); !valid {
		return nil, http.StatusBadRequest
	}

	if err := db.Save(event).Error; err != nil {
		log.WithFields(log.Fields{"project_id": projectID,
			"event_id": id}).WithError(err).Error("Failed to update event.")
		return nil, http.StatusInternalServerError
	}

	publishChange(projectID, TableEvents)
	return event, http.StatusAccepted
}

func DeleteEvent(projectID uint64, id string) int {
	db := C.GetServices().Db

	if projectID == 0 || id == "" {
		return http.StatusBadRequest
	}

	query := db.Where("project_id = ? AND id = ?", projectID, id).Delete(&Event{})
	if query.Error != nil {
		log.WithFields(log.Fields{"project_id": projectID,
			"event_id": id}).WithError(query.Error).Error("Failed to delete event.")
		return http.StatusInternalServerError
	}

	if query.RowsAffected == 0 {
		return http.StatusNotFound
	}

	publishChange(projectID, TableEvents)
	return http.StatusAccepted
}

// EventImportRowError reports a rejected record from a calendar
// import file.
type EventImportRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ImportEvents validates each record and bulk-inserts the valid
// ones. Invalid records are reported and skipped, never inserted.
func ImportEvents(projectID uint64, createdBy string, events []Event) (int, []EventImportRowError, int) {
	if projectID == 0 {
		return 0, nil, http.StatusBadRequest
	}

	created := 0
	rowErrors := make([]EventImportRowError, 0)
	for i := range events {
		event := events[i]
		event.ID = ""
		if event.CreatedBy == "" {
			event.CreatedBy = createdBy
		}

		if valid, msg := ValidateEvent(&event); !valid {
			rowErrors = append(rowErrors, EventImportRowError{Row: i, Reason: msg})
			continue
		}

		if _, errCode := CreateEvent(projectID, &event); errCode != http.StatusCreated {
			rowErrors = append(rowErrors, EventImportRowError{Row: i, Reason: "Insert failed."})
			continue
		}
		created++
	}

	return created, rowErrors, http.StatusCreated
}

// GetAllEvents returns the full project calendar for export.
func GetAllEvents(projectID uint64) ([]Event, int) {
	db := C.GetServices().Db

	if projectID == 0 {
		return nil, http.StatusBadRequest
	}

	var events []Event
	err := db.Where("project_id = ?", projectID).Order("start_time ASC").Find(&events).Error
	if err != nil {
		log.WithField("project_id", projectID).WithError(err).Error("Failed to get events for export.")
		return nil, http.StatusInternalServerError
	}

	return events, http.StatusFound
}
