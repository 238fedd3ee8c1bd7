package model

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/imdario/mergo"
	"github.com/jinzhu/gorm"
	log "github.com/sirupsen/logrus"

	C "github.com/vayron-digital/modulyn-one-sub000/config"
	U "github.com/vayron-digital/modulyn-one-sub000/util"
)

type ColdCall struct {
	ID        string `gorm:"primary_key:true" json:"id"`
	ProjectID uint64 `gorm:"primary_key:true" json:"project_id"`
	// Stored normalized as E.164.
	Phone        string     `gorm:"not null" json:"phone"`
	Name         string     `json:"name"`
	Status       string     `gorm:"type:varchar(20);not null;default:'new'" json:"status"`
	Priority     string     `gorm:"type:varchar(10);not null;default:'medium'" json:"priority"`
	Outcome      string     `json:"outcome"`
	AgentUUID    string     `json:"agent_uuid"`
	CallAttempts int        `gorm:"not null;default:0" json:"call_attempts"`
	IsConverted  bool       `gorm:"not null;default:false" json:"is_converted"`
	ConvertedBy  string     `json:"converted_by"`
	ConvertedAt  *time.Time `json:"converted_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

const (
	ColdCallStatusNew           = "new"
	ColdCallStatusContacted     = "contacted"
	ColdCallStatusInterested    = "interested"
	ColdCallStatusNotInterested = "not_interested"
	ColdCallStatusCallback      = "callback"
	ColdCallStatusCompleted     = "completed"

	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

var ColdCallStatuses = []string{ColdCallStatusNew, ColdCallStatusContacted,
	ColdCallStatusInterested, ColdCallStatusNotInterested, ColdCallStatusCallback,
	ColdCallStatusCompleted}

func isValidColdCallStatus(status string) bool {
	for _, s := range ColdCallStatuses {
		if s == status {
			return true
		}
	}
	return false
}

func isValidPriority(priority string) bool {
	return priority == PriorityLow || priority == PriorityMedium || priority == PriorityHigh
}

func ValidateColdCall(coldCall *ColdCall) (bool, string) {
	if coldCall.Phone == "" {
		return false, "Phone is required."
	}

	if coldCall.Status != "" && !isValidColdCallStatus(coldCall.Status) {
		return false, "Invalid cold call status."
	}

	if coldCall.Priority != "" && !isValidPriority(coldCall.Priority) {
		return false, "Invalid priority."
	}

	// Same rule as calls, completion needs a chosen outcome.
	if coldCall.Status == ColdCallStatusCompleted && coldCall.Outcome == "" {
		return false, "Outcome is required to complete a cold call."
	}

	return true, ""
}

var coldCallListOptions = ListOptions{
	SearchColumns: []string{"name", "phone"},
	FilterColumns: map[string]bool{"status": true, "priority": true, "agent_uuid": true,
		"is_converted": true},
	SortColumns: map[string]bool{"created_at": true, "updated_at": true,
		"priority": true, "call_attempts": true},
	DateColumn: "created_at",
}

func ColdCallListOptions() ListOptions {
	return coldCallListOptions
}

func ListColdCalls(projectID uint64, q ListQuery) ([]ColdCall, int, int) {
	db := C.GetServices().Db

	if projectID == 0 {
		return nil, 0, http.StatusBadRequest
	}

	base := q.applyFilters(db.Model(&ColdCall{}).Where("project_id = ?", projectID), coldCallListOptions)

	var total int
	if err := base.Count(&total).Error; err != nil {
		log.WithField("project_id", projectID).WithError(err).Error("Failed to count cold calls.")
		return nil, 0, http.StatusInternalServerError
	}

	var coldCalls []ColdCall
	if err := q.applyOrderAndPage(base, coldCallListOptions).Find(&coldCalls).Error; err != nil {
		log.WithField("project_id", projectID).WithError(err).Error("Failed to list cold calls.")
		return nil, 0, http.StatusInternalServerError
	}

	return coldCalls, total, http.StatusFound
}

func CreateColdCall(projectID uint64, coldCall *ColdCall) (*ColdCall, int) {
	db := C.GetServices().Db

	if projectID == 0 || coldCall.ID != "" {
		return nil, http.StatusBadRequest
	}

	if valid, _ := ValidateColdCall(coldCall); !valid {
		return nil, http.StatusBadRequest
	}

	phone, err := U.NormalizePhone(coldCall.Phone, C.GetDefaultPhoneRegion())
	if err != nil {
		return nil, http.StatusBadRequest
	}
	coldCall.Phone = phone

	coldCall.ID = uuid.New().String()
	coldCall.ProjectID = projectID
	if coldCall.Status == "" {
		coldCall.Status = ColdCallStatusNew
	}
	if coldCall.Priority == "" {
		coldCall.Priority = PriorityMedium
	}

	if err := db.Create(coldCall).Error; err != nil {
		log.WithField("project_id", projectID).WithError(err).Error("Failed to create cold call.")
		return nil, http.StatusInternalServerError
	}

	publishChange(projectID, TableColdCalls)
	return coldCall, http.StatusCreated
}

func GetColdCall(projectID uint64, id string) (*ColdCall, int) {
	db := C.GetServices().Db

	if projectID == 0 || id == "" {
		return nil, http.StatusBadRequest
	}

	var coldCall ColdCall
	err := db.Where("project_id = ? AND id = ?", projectID, id).First(&coldCall).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, http.StatusNotFound
		}
		log.WithFields(log.Fields{"project_id": projectID,
			"cold_call_id": id}).WithError(err).Error("Failed to get cold call.")
		return nil, http.StatusInternalServerError
	}

	return &coldCall, http.StatusFound
}

func UpdateColdCall(projectID uint64, id string, partial *ColdCall) (*ColdCall, int) {
	db := C.GetServices().Db

	coldCall, errCode := GetColdCall(projectID, id)
	if errCode != http.StatusFound {
		return nil, errCode
	}

	// Conversion fields only move through ConvertColdCallToLead.
	partial.IsConverted = false
	partial.ConvertedBy = ""
	partial.ConvertedAt = nil
	partial.ID = ""
	partial.ProjectID = 0
	partial.CreatedAt = time.Time{}

	if partial.Phone != "" {
		phone, err := U.NormalizePhone(partial.Phone, C.GetDefaultPhoneRegion())
		if err != nil {
			return nil, http.StatusBadRequest
		}
		partial.Phone = phone
	}

	if err := mergo.Merge(coldCall, partial, mergo.WithOverride); err != nil {
		log.WithError(err).Error("Failed to merge cold call update.")
		return nil, http.StatusInternalServerError
	}

	if valid, _ := ValidateColdCall(coldCall); !valid {
		return nil, http.StatusBadRequest
	}

	if err := db.Save(coldCall).Error; err != nil {
		log.WithFields(log.Fields{"project_id": projectID,
			"cold_call_id": id}).WithError(err).Error("Failed to update cold call.")
		return nil, http.StatusInternalServerError
	}

	publishChange(projectID, TableColdCalls)
	return coldCall, http.StatusAccepted
}

func DeleteColdCall(projectID uint64, id string) int {
	db := C.GetServices().Db

	if projectID == 0 || id == "" {
		return http.StatusBadRequest
	}

	query := db.Where("project_id = ? AND id = ?", projectID, id).Delete(&ColdCall{})
	if query.Error != nil {
		log.WithFields(log.Fields{"project_id": projectID,
			"cold_call_id": id}).WithError(query.Error).Error("Failed to delete cold call.")
		return http.StatusInternalServerError
	}

	if query.RowsAffected == 0 {
		return http.StatusNotFound
	}

	publishChange(projectID, TableColdCalls)
	return http.StatusAccepted
}

// IncrementCallAttempts bumps the attempt counter after a dial.
func IncrementCallAttempts(projectID uint64, id string) int {
	db := C.GetServices().Db

	if projectID == 0 || id == "" {
		return http.StatusBadRequest
	}

	query := db.Model(&ColdCall{}).Where("project_id = ? AND id = ?", projectID, id).
		Update("call_attempts", gorm.Expr("call_attempts + 1"))
	if query.Error != nil {
		log.WithFields(log.Fields{"project_id": projectID,
			"cold_call_id": id}).WithError(query.Error).Error("Failed to increment call attempts.")
		return http.StatusInternalServerError
	}

	if query.RowsAffected == 0 {
		return http.StatusNotFound
	}

	publishChange(projectID, TableColdCalls)
	return http.StatusAccepted
}

// ConvertColdCallToLead promotes a cold call into a lead exactly
// once. The row is re-read under a row lock inside the transaction,
// a concurrent second conversion sees is_converted and gets 409.
func ConvertColdCallToLead(projectID uint64, id, convertedBy string) (*Lead, int) {
	db := C.GetServices().Db

	if projectID == 0 || id == "" || convertedBy == "" {
		return nil, http.StatusBadRequest
	}

	tx := db.Begin()
	if tx.Error != nil {
		log.WithError(tx.Error).Error("Failed to begin conversion transaction.")
		return nil, http.StatusInternalServerError
	}

	var coldCall ColdCall
	err := tx.Raw("SELECT * FROM cold_calls WHERE project_id = ? AND id = ? FOR UPDATE",
		projectID, id).Scan(&coldCall).Error
	if err != nil {
		tx.Rollback()
		if err == gorm.ErrRecordNotFound {
			return nil, http.StatusNotFound
		}
		log.WithFields(log.Fields{"project_id": projectID,
			"cold_call_id": id}).WithError(err).Error("Failed to lock cold call for conversion.")
		return nil, http.StatusInternalServerError
	}

	if coldCall.IsConverted {
		tx.Rollback()
		return nil, http.StatusConflict
	}

	firstName, lastName := splitName(coldCall.Name)
	lead := &Lead{
		ID:        uuid.New().String(),
		ProjectID: projectID,
		FirstName: firstName,
		LastName:  lastName,
		Phone:     coldCall.Phone,
		Status:    LeadStatusNew,
		Source:    LeadSourceColdCall,
		CreatedBy: convertedBy,
	}

	if err := tx.Create(lead).Error; err != nil {
		tx.Rollback()
		log.WithFields(log.Fields{"project_id": projectID,
			"cold_call_id": id}).WithError(err).Error("Failed to create lead from cold call.")
		return nil, http.StatusInternalServerError
	}

	now := time.Now().UTC()
	err = tx.Model(&ColdCall{}).Where("project_id = ? AND id = ?", projectID, id).
		Updates(map[string]interface{}{
			"is_converted": true,
			"converted_by": convertedBy,
			"converted_at": &now,
		}).Error
	if err != nil {
		tx.Rollback()
		log.WithFields(log.Fields{"project_id": projectID,
			"cold_call_id": id}).WithError(err).Error("Failed to mark cold call converted.")
		return nil, http.StatusInternalServerError
	}

	if err := tx.Commit().Error; err != nil {
		log.WithError(err).Error("Failed to commit cold call conversion.")
		return nil, http.StatusInternalServerError
	}

	publishChange(projectID, TableColdCalls)
	publishChange(projectID, TableLeads)
	return lead, http.StatusCreated
}

// splitName splits a free-form contact name into first/last. The
// lead form requires both, a single-word name repeats as last name.
func splitName(name string) (string, string) {
	first, last := "Unknown", "Unknown"

	fields := strings.Fields(name)
	if len(fields) >= 1 {
		first = fields[0]
		last = fields[0]
	}
	if len(fields) >= 2 {
		last = fields[len(fields)-1]
	}

	return first, last
}
