package model

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/imdario/mergo"
	"github.com/jinzhu/gorm"
	log "github.com/sirupsen/logrus"

	C "github.com/vayron-digital/modulyn-one-sub000/config"
)

type Call struct {
	ID        string     `gorm:"primary_key:true" json:"id"`
	ProjectID uint64     `gorm:"primary_key:true" json:"project_id"`
	LeadID    string     `json:"lead_id"`
	AgentUUID string     `json:"agent_uuid"`
	Type      string     `gorm:"type:varchar(10);not null" json:"type"`
	Status    string     `gorm:"type:varchar(10);not null;default:'scheduled'" json:"status"`
	Outcome   string     `json:"outcome"`
	Date      *time.Time `json:"date"`
	// Seconds.
	Duration  int       `json:"duration"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	CallTypeInbound  = "inbound"
	CallTypeOutbound = "outbound"

	CallStatusScheduled = "scheduled"
	CallStatusCompleted = "completed"
	CallStatusMissed    = "missed"
)

var CallOutcomes = []string{"interested", "not_interested", "callback",
	"no_answer", "voicemail", "wrong_number"}

func isValidCallType(t string) bool {
	return t == CallTypeInbound || t == CallTypeOutbound
}

func isValidCallStatus(s string) bool {
	return s == CallStatusScheduled || s == CallStatusCompleted || s == CallStatusMissed
}

// ValidateCall - A call cannot be marked completed without an outcome.
func ValidateCall(call *Call) (bool, string) {
	if !isValidCallType(call.Type) {
		return false, "Call type must be inbound or outbound."
	}

	if call.Status != "" && !isValidCallStatus(call.Status) {
		return false, "Invalid call status."
	}

	if call.Status == CallStatusCompleted && call.Outcome == "" {
		return false, "Outcome is required to complete a call."
	}

	if call.Duration < 0 {
		return false, "Duration cannot be negative."
	}

	return true, ""
}

var callListOptions = ListOptions{
	SearchColumns: []string{"notes", "outcome"},
	FilterColumns: map[string]bool{"type": true, "status": true, "outcome": true,
		"lead_id": true, "agent_uuid": true},
	SortColumns: map[string]bool{"created_at": true, "date": true, "duration": true},
	DateColumn:  "date",
}

func CallListOptions() ListOptions {
	return callListOptions
}

// CallWithLead is the list row after the manual lead join. An
// orphaned lead_id keeps the row with a null lead rather than
// hiding it.
type CallWithLead struct {
	Call
	Lead *Lead `json:"lead"`
}

func ListCalls(projectID uint64, q ListQuery) ([]Call, int, int) {
	db := C.GetServices().Db

	if projectID == 0 {
		return nil, 0, http.StatusBadRequest
	}

	base := q.applyFilters(db.Model(&Call{}).Where("project_id = ?", projectID), callListOptions)

	var total int
	if err := base.Count(&total).Error; err != nil {
		log.WithField("project_id", projectID).WithError(err).Error("Failed to count calls.")
		return nil, 0, http.StatusInternalServerError
	}

	var calls []Call
	if err := q.applyOrderAndPage(base, callListOptions).Find(&calls).Error; err != nil {
		log.WithField("project_id", projectID).WithError(err).Error("Failed to list calls.")
		return nil, 0, http.StatusInternalServerError
	}

	return calls, total, http.StatusFound
}

// JoinCallLeads attaches leads to calls client-join style. A lookup
// failure degrades to all-null leads, it never drops rows.
func JoinCallLeads(projectID uint64, calls []Call) []CallWithLead {
	ids := make([]string, 0, len(calls))
	for i := range calls {
		if calls[i].LeadID != "" {
			ids = append(ids, calls[i].LeadID)
		}
	}

	leadsByID, errCode := GetLeadsByIDs(projectID, ids)
	if errCode != http.StatusFound {
		log.WithField("project_id", projectID).Warn("Lead lookup failed for call join. Rendering without leads.")
		leadsByID = map[string]Lead{}
	}

	rows := make([]CallWithLead, 0, len(calls))
	for i := range calls {
		row := CallWithLead{Call: calls[i]}
		if lead, exists := leadsByID[calls[i].LeadID]; exists {
			leadCopy := lead
			row.Lead = &leadCopy
		}
		rows = append(rows, row)
	}

	return rows
}

func CreateCall(projectID uint64, call *Call) (*Call, int) {
	db := C.GetServices().Db

	if projectID == 0 || call.ID != "" {
		return nil, http.StatusBadRequest
	}

	if valid, _ := ValidateCall(call); !valid {
		return nil, http.StatusBadRequest
	}

	call.ID = uuid.New().String()
	call.ProjectID = projectID
	if call.Status == "" {
		call.Status = CallStatusScheduled
	}
	if call.Date == nil {
		now := time.Now().UTC()
		call.Date = &now
	}

	if err := db.Create(call).Error; err != nil {
		log.WithField("project_id", projectID).WithError(err).Error("Failed to create call.")
		return nil, http.StatusInternalServerError
	}

	publishChange(projectID, TableCalls)
	return call, http.StatusCreated
}

func GetCall(projectID uint64, id string) (*Call, int) {
	db := C.GetServices().Db

	if projectID == 0 || id == "" {
		return nil, http.StatusBadRequest
	}

	var call Call
	err := db.Where("project_id = ? AND id = ?", projectID, id).First(&call).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, http.StatusNotFound
		}
		log.WithFields(log.Fields{"project_id": projectID,
			"call_id": id}).WithError(err).Error("Failed to get call.")
		return nil, http.StatusInternalServerError
	}

	return &call, http.StatusFound
}

func UpdateCall(projectID uint64, id string, partial *Call) (*Call, int) {
	db := C.GetServices().Db

	call, errCode := GetCall(projectID, id)
	if errCode != http.StatusFound {
		return nil, errCode
	}

	partial.ID = ""
	partial.ProjectID = 0
	partial.CreatedAt = time.Time{}

	if err := mergo.Merge(call, partial, mergo.WithOverride); err != nil {
		log.WithError(err).Error("Failed to merge call update.")
		return nil, http.StatusInternalServerError
	}

	if valid, _ := ValidateCall(call); !valid {
		return nil, http.StatusBadRequest
	}

	if err := db.Save(call).Error; err != nil {
		log.WithFields(log.Fields{"project_id": projectID,
			"call_id": id}).WithError(err).Error("Failed to update call.")
		return nil, http.StatusInternalServerError
	}

	publishChange(projectID, TableCalls)
	return call, http.StatusAccepted
}

func DeleteCall(projectID uint64, id string) int {
	db := C.GetServices().Db

	if projectID == 0 || id == "" {
		return http.StatusBadRequest
	}

	query := db.Where("project_id = ? AND id = ?", projectID, id).Delete(&Call{})
	if query.Error != nil {
		log.WithFields(log.Fields{"project_id": projectID,
			"call_id": id}).WithError(query.Error).Error("Failed to delete call.")
		return http.StatusInternalServerError
	}

	if query.RowsAffected == 0 {
		return http.StatusNotFound
	}

	publishChange(projectID, TableCalls)
	return http.StatusAccepted
}

// CallUploadRowError reports a rejected row from a bulk upload.
type CallUploadRowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// BulkCreateCalls inserts the valid rows and reports the invalid
// ones. Invalid rows never reach the Db.
func BulkCreateCalls(projectID uint64, agentUUID string, calls []Call) (int, []CallUploadRowError, int) {
	if projectID == 0 {
		return 0, nil, http.StatusBadRequest
	}

	created := 0
	rowErrors := make([]CallUploadRowError, 0)
	for i := range calls {
		call := calls[i]
		call.ID = ""
		if call.AgentUUID == "" {
			call.AgentUUID = agentUUID
		}

		if valid, msg := ValidateCall(&call); !valid {
			rowErrors = append(rowErrors, CallUploadRowError{Row: i, Reason: msg})
			continue
		}

		if _, errCode := CreateCall(projectID, &call); errCode != http.StatusCreated {
			rowErrors = append(rowErrors, CallUploadRowError{Row: i, Reason: "Insert failed."})
			continue
		}
		created++
	}

	return created, rowErrors, http.StatusCreated
}
