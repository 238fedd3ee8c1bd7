package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	M "github.com/vayron-digital/modulyn-one-sub000/model"
)

// GetEventsHandler serves the scheduler list. A ?range=today|week
// param answers the window view instead of the paged list.
func GetEventsHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Get events failed. Invalid project."})
		return
	}

	if rangeName := c.Query("range"); rangeName != "" {
		from, to, ok := M.RangeWindow(rangeName, time.Now())
		if !ok {
			abortWithValidationError(c, "Invalid range. Use today or week.")
			return
		}
		events, errCode := M.GetEventsInRange(projectID, from, to)
		if errCode != http.StatusFound {
			abortWithRemoteError(c, errCode, "Get events failed.")
			return
		}
		c.JSON(http.StatusOK, gin.H{"rows": events, "from": from, "to": to})
		return
	}

	q := M.ParseListQuery(c, M.EventListOptions())

	events, total, errCode := M.ListEvents(projectID, q)
	if errCode != http.StatusFound {
		abortWithRemoteError(c, errCode, "Get events failed.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":        events,
		"total_count": total,
		"page":        q.Page,
		"page_size":   M.DefaultPageSize,
	})
}

func CreateEventHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Create event failed. Invalid project."})
		return
	}

	var event M.Event
	if err := decodeJSONBody(c, &event); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Create event failed. Json decode failed."})
		return
	}

	if valid, msg := M.ValidateEvent(&event); !valid {
		abortWithValidationError(c, msg)
		return
	}

	event.CreatedBy = getAgentScope(c)

	created, errCode := M.CreateEvent(projectID, &event)
	if errCode != http.StatusCreated {
		abortWithRemoteError(c, errCode, "Create event failed.")
		return
	}

	notifySuccess("Event created", created.Title)
	c.JSON(http.StatusCreated, created)
}

// GetEventConflictsHandler answers which existing events of the
// assignee overlap the proposed slot. Overlap is half-open, an event
// ending exactly when another starts does not conflict.
func GetEventConflictsHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Conflict check failed. Invalid project."})
		return
	}

	start, err := time.Parse(time.RFC3339, c.Query("start"))
	if err != nil {
		abortWithValidationError(c, "Invalid start time.")
		return
	}
	end, err := time.Parse(time.RFC3339, c.Query("end"))
	if err != nil {
		abortWithValidationError(c, "Invalid end time.")
		return
	}
	if !end.After(start) {
		abortWithValidationError(c, "End time must be after start time.")
		return
	}

	assignedTo := c.Query("assigned_to")
	if assignedTo == "" {
		assignedTo = getAgentScope(c)
	}

	conflicts, errCode := M.FindConflictingEvents(projectID, assignedTo, start, end,
		c.Query("exclude_id"))
	if errCode != http.StatusFound {
		abortWithRemoteError(c, errCode, "Conflict check failed.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"conflicts": conflicts, "has_conflict": len(conflicts) > 0})
}

// ExportEventsHandler streams the full schedule as a JSON download.
func ExportEventsHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Export failed. Invalid project."})
		return
	}

	events, errCode := M.GetAllEvents(projectID)
	if errCode != http.StatusFound {
		abortWithRemoteError(c, errCode, "Export failed.")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="events.json"`)
	c.JSON(http.StatusOK, gin.H{"events": events, "exported_at": time.Now().UTC()})
}

type ImportEventsPayload struct {
	Events []M.Event `json:"events"`
}

// ImportEventsHandler inserts uploaded events. Valid rows land,
// invalid rows come back with per-row reasons.
func ImportEventsHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Import failed. Invalid project."})
		return
	}

	var payload ImportEventsPayload
	if err := decodeJSONBody(c, &payload); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Import failed. Json decode failed."})
		return
	}

	if len(payload.Events) == 0 {
		abortWithValidationError(c, "No events in import.")
		return
	}

	created, rowErrors, errCode := M.ImportEvents(projectID, getAgentScope(c), payload.Events)
	if errCode != http.StatusCreated {
		abortWithRemoteError(c, errCode, "Import failed.")
		return
	}

	notifySuccess("Events imported", "")
	c.JSON(http.StatusCreated, gin.H{"created": created, "errors": rowErrors})
}

func UpdateEventHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Update event failed. Invalid project."})
		return
	}

	var partial M.Event
	if err := decodeJSONBody(c, &partial); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Update event failed. Json decode failed."})
		return
	}

	updated, errCode := M.UpdateEvent(projectID, c.Params.ByName("id"), &partial)
	if errCode != http.StatusAccepted {
		abortWithRemoteError(c, errCode, "Update event failed.")
		return
	}

	notifySuccess("Event updated", updated.Title)
	c.JSON(http.StatusAccepted, updated)
}

func DeleteEventHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Delete event failed. Invalid project."})
		return
	}

	if !hasDeleteConfirmation(c) {
		confirmationRequired(c)
		return
	}

	errCode := M.DeleteEvent(projectID, c.Params.ByName("id"))
	if errCode != http.StatusAccepted {
		abortWithRemoteError(c, errCode, "Delete event failed.")
		return
	}

	notifySuccess("Event deleted", "")
	c.JSON(http.StatusAccepted, gin.H{"status": "deleted"})
}
