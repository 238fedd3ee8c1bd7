package model

import (
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/jinzhu/gorm"
	log "github.com/sirupsen/logrus"

	C "github.com/vayron-digital/modulyn-one-sub000/config"
	U "github.com/vayron-digital/modulyn-one-sub000/util"
)

// Project is the tenant. Every domain row is scoped by project_id.
type Project struct {
	ID   uint64 `gorm:"primary_key:true" json:"id"`
	Name string `gorm:"not null" json:"name"`
	// PrivateToken authorizes server to server inserts.
	PrivateToken string    `gorm:"type:varchar(32);unique_index" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

const ProjectPrivateTokenLength = 32

// In-process cache for token lookups, hit on every sdk-style request.
var projectTokenCache, _ = lru.New(1024)

func CreateProject(project *Project) (*Project, int) {
	db := C.GetServices().Db

	if project.ID != 0 {
		return nil, http.StatusBadRequest
	}

	if project.Name == "" {
		return nil, http.StatusBadRequest
	}

	// Token is always generated, never accepted from input.
	project.PrivateToken = U.RandomLowerAphaNumString(ProjectPrivateTokenLength)

	if err := db.Create(project).Error; err != nil {
		log.WithField("project", project).WithError(err).Error("Failed to create project.")
		return nil, http.StatusInternalServerError
	}

	return project, http.StatusCreated
}

func GetProject(id uint64) (*Project, int) {
	db := C.GetServices().Db

	if id == 0 {
		return nil, http.StatusBadRequest
	}

	var project Project
	if err := db.Where("id = ?", id).First(&project).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, http.StatusNotFound
		}
		log.WithField("project_id", id).WithError(err).Error("Failed to get project.")
		return nil, http.StatusInternalServerError
	}

	return &project, http.StatusFound
}

// GetProjectByPrivateToken resolves the project for a private token.
// Hits the LRU before the Db.
func GetProjectByPrivateToken(token string) (*Project, int) {
	if token == "" {
		return nil, http.StatusBadRequest
	}

	if cached, exists := projectTokenCache.Get(token); exists {
		project := cached.(Project)
		return &project, http.StatusFound
	}

	db := C.GetServices().Db

	var project Project
	if err := db.Where("private_token = ?", token).First(&project).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, http.StatusNotFound
		}
		log.WithError(err).Error("Failed to get project by token.")
		return nil, http.StatusInternalServerError
	}

	projectTokenCache.Add(token, project)
	return &project, http.StatusFound
}
