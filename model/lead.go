package model

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/imdario/mergo"
	"github.com/jinzhu/gorm"
	log "github.com/sirupsen/logrus"

	C "github.com/vayron-digital/modulyn-one-sub000/config"
	U "github.com/vayron-digital/modulyn-one-sub000/util"
)

type Lead struct {
	ID        string `gorm:"primary_key:true" json:"id"`
	ProjectID uint64 `gorm:"primary_key:true" json:"project_id"`
	FirstName string `gorm:"not null" json:"first_name"`
	LastName  string `gorm:"not null" json:"last_name"`
	Email     string `json:"email"`
	// Stored normalized as E.164.
	Phone      string    `gorm:"not null" json:"phone"`
	Status     string    `gorm:"type:varchar(20);not null;default:'new'" json:"status"`
	Source     string    `json:"source"`
	Budget     float64   `json:"budget"`
	AssignedTo string    `json:"assigned_to"`
	Notes      string    `json:"notes"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

const (
	LeadStatusNew         = "new"
	LeadStatusContacted   = "contacted"
	LeadStatusQualified   = "qualified"
	LeadStatusNegotiation = "negotiation"
	LeadStatusWon         = "won"
	LeadStatusLost        = "lost"
)

var LeadStatuses = []string{LeadStatusNew, LeadStatusContacted, LeadStatusQualified,
	LeadStatusNegotiation, LeadStatusWon, LeadStatusLost}

const LeadSourceColdCall = "cold_call"

func isValidLeadStatus(status string) bool {
	for _, s := range LeadStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// ValidateLead runs the pre-submit required-field checks. Returns
// a user readable message on failure.
func ValidateLead(lead *Lead) (bool, string) {
	if lead.FirstName == "" {
		return false, "First name is required."
	}

	if lead.LastName == "" {
		return false, "Last name is required."
	}

	if lead.Phone == "" {
		return false, "Phone is required."
	}

	if lead.Email != "" && !U.IsValidEmail(lead.Email) {
		return false, "Invalid email format."
	}

	if lead.Status != "" && !isValidLeadStatus(lead.Status) {
		return false, "Invalid lead status."
	}

	return true, ""
}

var leadListOptions = ListOptions{
	SearchColumns: []string{"first_name", "last_name", "email", "phone"},
	FilterColumns: map[string]bool{"status": true, "source": true, "assigned_to": true},
	SortColumns:   map[string]bool{"created_at": true, "updated_at": true, "first_name": true, "budget": true},
	DateColumn:    "created_at",
}

func LeadListOptions() ListOptions {
	return leadListOptions
}

func ListLeads(projectID uint64, q ListQuery) ([]Lead, int, int) {
	db := C.GetServices().Db

	if projectID == 0 {
		return nil, 0, http.StatusBadRequest
	}

	base := q.applyFilters(db.Model(&Lead{}).Where("project_id = ?", projectID), leadListOptions)

	var total int
	if err := base.Count(&total).Error; err != nil {
		log.WithField("project_id", projectID).WithError(err).Error("Failed to count leads.")
		return nil, 0, http.StatusInternalServerError
	}

	var leads []Lead
	if err := q.applyOrderAndPage(base, leadListOptions).Find(&leads).Error; err != nil {
		log.WithField("project_id", projectID).WithError(err).Error("Failed to list leads.")
		return nil, 0, http.StatusInternalServerError
	}

	return leads, total, http.StatusFound
}

func CreateLead(projectID uint64, lead *Lead) (*Lead, int) {
	db := C.GetServices().Db

	if projectID == 0 || lead.ID != "" {
		return nil, http.StatusBadRequest
	}

	if valid, _ := ValidateLead(lead); !valid {
		return nil, http.StatusBadRequest
	}

	phone, err := U.NormalizePhone(lead.Phone, C.GetDefaultPhoneRegion())
	if err != nil {
		return nil, http.StatusBadRequest
	}
	lead.Phone = phone

	lead.ID = uuid.New().String()
	lead.ProjectID = projectID
	if lead.Status == "" {
		lead.Status = LeadStatusNew
	}

	if err := db.Create(lead).Error; err != nil {
		log.WithField("project_id", projectID).WithError(err).Error("Failed to create lead.")
		return nil, http.StatusInternalServerError
	}

	publishChange(projectID, TableLeads)
	return lead, http.StatusCreated
}

func GetLead(projectID uint64, id string) (*Lead, int) {
	db := C.GetServices().Db

	if projectID == 0 || id == "" {
		return nil, http.StatusBadRequest
	}

	var lead Lead
	err := db.Where("project_id = ? AND id = ?", projectID, id).First(&lead).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, http.StatusNotFound
		}
		log.WithFields(log.Fields{"project_id": projectID,
			"lead_id": id}).WithError(err).Error("Failed to get lead.")
		return nil, http.StatusInternalServerError
	}

	return &lead, http.StatusFound
}

// UpdateLead applies the non-zero fields of partial onto the stored
// lead.
func UpdateLead(projectID uint64, id string, partial *Lead) (*Lead, int) {
	db := C.GetServices().Db

	lead, errCode := GetLead(projectID, id)
	if errCode != http.StatusFound {
		return nil, errCode
	}

	if partial.Status != "" && !isValidLeadStatus(partial.Status) {
		return nil, http.StatusBadRequest
	}

	if partial.Phone != "" {
		phone, err := U.NormalizePhone(partial.Phone, C.GetDefaultPhoneRegion())
		if err != nil {
			return nil, http.StatusBadRequest
		}
		partial.Phone = phone
	}

	// Scope and identity never move on update.
	partial.ID = ""
	partial.ProjectID = 0
	partial.CreatedAt = time.Time{}

	if err := mergo.Merge(lead, partial, mergo.WithOverride); err != nil {
		log.WithError(err).Error("Failed to merge lead update.")
		return nil, http.StatusInternalServerError
	}

	if err := db.Save(lead).Error; err != nil {
		log.WithFields(log.Fields{"project_id": projectID,
			"lead_id": id}).WithError(err).Error("Failed to update lead.")
		return nil, http.StatusInternalServerError
	}

	publishChange(projectID, TableLeads)
	return lead, http.StatusAccepted
}

func DeleteLead(projectID uint64, id string) int {
	db := C.GetServices().Db

	if projectID == 0 || id == "" {
		return http.StatusBadRequest
	}

	query := db.Where("project_id = ? AND id = ?", projectID, id).Delete(&Lead{})
	if query.Error != nil {
		log.WithFields(log.Fields{"project_id": projectID,
			"lead_id": id}).WithError(query.Error).Error("Failed to delete lead.")
		return http.StatusInternalServerError
	}

	if query.RowsAffected == 0 {
		return http.StatusNotFound
	}

	publishChange(projectID, TableLeads)
	return http.StatusAccepted
}

// GetLeadsByIDs fetches leads for a manual join, keyed by id.
func GetLeadsByIDs(projectID uint64, ids []string) (map[string]Lead, int) {
	db := C.GetServices().Db

	byID := make(map[string]Lead)
	if len(ids) == 0 {
		return byID, http.StatusFound
	}

	var leads []Lead
	err := db.Where("project_id = ? AND id IN (?)", projectID, ids).Find(&leads).Error
	if err != nil {
		log.WithField("project_id", projectID).WithError(err).Error("Failed to get leads by ids.")
		return nil, http.StatusInternalServerError
	}

	for i := range leads {
		byID[leads[i].ID] = leads[i]
	}

	return byID, http.StatusFound
}
