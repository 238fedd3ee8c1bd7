package model

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	log "github.com/sirupsen/logrus"

	C "github.com/vayron-digital/modulyn-one-sub000/config"
)

// Developer is a property developer whose brochures and logo live in
// the object store.
type Developer struct {
	ID        string    `gorm:"primary_key:true" json:"id"`
	ProjectID uint64    `gorm:"primary_key:true" json:"project_id"`
	Name      string    `gorm:"not null" json:"name"`
	LogoURL   string    `json:"logo_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Brochure is one stored file asset of a developer. Re-uploading the
// same file name overwrites the object in place.
type Brochure struct {
	ID          string    `gorm:"primary_key:true" json:"id"`
	ProjectID   uint64    `gorm:"primary_key:true" json:"project_id"`
	DeveloperID string    `gorm:"not null" json:"developer_id"`
	FileName    string    `gorm:"not null" json:"file_name"`
	FileSize    int64     `json:"file_size"`
	PublicURL   string    `json:"public_url"`
	UploadedBy  string    `json:"uploaded_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DeveloperStoragePath - object path for a developer's assets.
func DeveloperStoragePath(projectID uint64, developerID string) string {
	return fmt.Sprintf("projects/%d/developers/%s", projectID, developerID)
}

func ListDevelopers(projectID uint64) ([]Developer, int) {
	db := C.GetServices().Db

	if projectID == 0 {
		return nil, http.StatusBadRequest
	}

	var developers []Developer
	err := db.Where("project_id = ?", projectID).Order("name ASC").Find(&developers).Error
	if err != nil {
		log.WithField("project_id", projectID).WithError(err).Error("Failed to list developers.")
		return nil, http.StatusInternalServerError
	}

	return developers, http.StatusFound
}

func CreateDeveloper(projectID uint64, developer *Developer) (*Developer, int) {
	db := C.GetServices().Db

	if projectID == 0 || developer.ID != "" {
		return nil, http.StatusBadRequest
	}

	if developer.Name == "" {
		return nil, http.StatusBadRequest
	}

	developer.ID = uuid.New().String()
	developer.ProjectID = projectID

	if err := db.Create(developer).Error; err != nil {
		log.WithField("project_id", projectID).WithError(err).Error("Failed to create developer.")
		return nil, http.StatusInternalServerError
	}

	publishChange(projectID, TableDevelopers)
	return developer, http.StatusCreated
}

func GetDeveloper(projectID uint64, id string) (*Developer, int) {
	db := C.GetServices().Db

	if projectID == 0 || id == "" {
		return nil, http.StatusBadRequest
	}

	var developer Developer
	err := db.Where("project_id = ? AND id = ?", projectID, id).First(&developer).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, http.StatusNotFound
		}
		log.WithFields(log.Fields{"project_id": projectID,
			"developer_id": id}).WithError(err).Error("Failed to get developer.")
		return nil, http.StatusInternalServerError
	}

	return &developer, http.StatusFound
}

func UpdateDeveloperLogo(projectID uint64, id, logoURL string) int {
	db := C.GetServices().Db

	query := db.Model(&Developer{}).Where("project_id = ? AND id = ?", projectID, id).
		Update("logo_url", logoURL)
	if query.Error != nil {
		log.WithFields(log.Fields{"project_id": projectID,
			"developer_id": id}).WithError(query.Error).Error("Failed to update developer logo.")
		return http.StatusInternalServerError
	}

	if query.RowsAffected == 0 {
		return http.StatusNotFound
	}

	publishChange(projectID, TableDevelopers)
	return http.StatusAccepted
}

func DeleteDeveloper(projectID uint64, id string) int {
	db := C.GetServices().Db

	if projectID == 0 || id == "" {
		return http.StatusBadRequest
	}

	query := db.Where("project_id = ? AND id = ?", projectID, id).Delete(&Developer{})
	if query.Error != nil {
		log.WithFields(log.Fields{"project_id": projectID,
			"developer_id": id}).WithError(query.Error).Error("Failed to delete developer.")
		return http.StatusInternalServerError
	}

	if query.RowsAffected == 0 {
		return http.StatusNotFound
	}

	publishChange(projectID, TableDevelopers)
	return http.StatusAccepted
}

func ListBrochures(projectID uint64, developerID string) ([]Brochure, int) {
	db := C.GetServices().Db

	if projectID == 0 || developerID == "" {
		return nil, http.StatusBadRequest
	}

	var brochures []Brochure
	err := db.Where("project_id = ? AND developer_id = ?", projectID, developerID).
		Order("created_at DESC").Find(&brochures).Error
	if err != nil {
		log.WithFields(log.Fields{"project_id": projectID,
			"developer_id": developerID}).WithError(err).Error("Failed to list brochures.")
		return nil, http.StatusInternalServerError
	}

	return brochures, http.StatusFound
}

// UpsertBrochure records a stored file. Re-uploads of the same file
// name update the existing row, matching the overwrite-by-path
// storage semantics.
func UpsertBrochure(projectID uint64, brochure *Brochure) (*Brochure, int) {
	db := C.GetServices().Db

	if projectID == 0 || brochure.DeveloperID == "" || brochure.FileName == "" {
		return nil, http.StatusBadRequest
	}

	var existing Brochure
	err := db.Where("project_id = ? AND developer_id = ? AND file_name = ?",
		projectID, brochure.DeveloperID, brochure.FileName).First(&existing).Error
	if err == nil {
		existing.FileSize = brochure.FileSize
		existing.PublicURL = brochure.PublicURL
		existing.UploadedBy = brochure.UploadedBy
		if err := db.Save(&existing).Error; err != nil {
			log.WithError(err).Error("Failed to update brochure row.")
			return nil, http.StatusInternalServerError
		}
		publishChange(projectID, TableDevelopers)
		return &existing, http.StatusAccepted
	}
	if err != gorm.ErrRecordNotFound {
		log.WithError(err).Error("Failed to look up brochure row.")
		return nil, http.StatusInternalServerError
	}

	brochure.ID = uuid.New().String()
	brochure.ProjectID = projectID
	if err := db.Create(brochure).Error; err != nil {
		log.WithError(err).Error("Failed to create brochure row.")
		return nil, http.StatusInternalServerError
	}

	publishChange(projectID, TableDevelopers)
	return brochure, http.StatusCreated
}

func DeleteBrochure(projectID uint64, id string) (*Brochure, int) {
	db := C.GetServices().Db

	if projectID == 0 || id == "" {
		return nil, http.StatusBadRequest
	}

	var brochure Brochure
	err := db.Where("project_id = ? AND id = ?", projectID, id).First(&brochure).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, http.StatusNotFound
		}
		log.WithError(err).Error("Failed to get brochure for delete.")
		return nil, http.StatusInternalServerError
	}

	if err := db.Delete(&brochure).Error; err != nil {
		log.WithError(err).Error("Failed to delete brochure row.")
		return nil, http.StatusInternalServerError
	}

	publishChange(projectID, TableDevelopers)
	return &brochure, http.StatusAccepted
}
