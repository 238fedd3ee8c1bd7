package model

import (
	"net/http"
	"time"

	"github.com/jinzhu/gorm"
	log "github.com/sirupsen/logrus"

	C "github.com/vayron-digital/modulyn-one-sub000/config"
)

const (
	RoleAgent = "agent"
	RoleAdmin = "admin"
)

// ProjectAgentMapping maps an agent into a project with a role.
type ProjectAgentMapping struct {
	ProjectID uint64    `gorm:"primary_key:true" json:"project_id"`
	AgentUUID string    `gorm:"primary_key:true" json:"agent_uuid"`
	Role      string    `gorm:"type:varchar(10);not null;default:'agent'" json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func isValidRole(role string) bool {
	return role == RoleAgent || role == RoleAdmin
}

func CreateProjectAgentMapping(projectID uint64, agentUUID, role string) (*ProjectAgentMapping, int) {
	db := C.GetServices().Db

	if projectID == 0 || agentUUID == "" || !isValidRole(role) {
		return nil, http.StatusBadRequest
	}

	mapping := &ProjectAgentMapping{ProjectID: projectID, AgentUUID: agentUUID, Role: role}
	if err := db.Create(mapping).Error; err != nil {
		log.WithFields(log.Fields{"project_id": projectID,
			"agent_uuid": agentUUID}).WithError(err).Error("Failed to create project agent mapping.")
		return nil, http.StatusInternalServerError
	}

	return mapping, http.StatusCreated
}

// ProjectAgentInfo is the lookup row list screens use to fill the
// assignable-agent dropdowns.
type ProjectAgentInfo struct {
	UUID      string `json:"uuid"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
}

func GetProjectAgents(projectID uint64) ([]ProjectAgentInfo, int) {
	db := C.GetServices().Db

	if projectID == 0 {
		return nil, http.StatusBadRequest
	}

	var agents []ProjectAgentInfo
	err := db.Table("project_agent_mappings").
		Select("agents.uuid, agents.email, agents.first_name, agents.last_name, project_agent_mappings.role").
		Joins("JOIN agents ON agents.uuid = project_agent_mappings.agent_uuid").
		Where("project_agent_mappings.project_id = ?", projectID).
		Order("agents.first_name ASC").
		Scan(&agents).Error
	if err != nil {
		log.WithField("project_id", projectID).WithError(err).Error("Failed to get project agents.")
		return nil, http.StatusInternalServerError
	}

	return agents, http.StatusFound
}

func GetAgentProjects(agentUUID string) ([]Project, int) {
	db := C.GetServices().Db

	if agentUUID == "" {
		return nil, http.StatusBadRequest
	}

	var projects []Project
	err := db.Table("projects").
		Select("projects.*").
		Joins("JOIN project_agent_mappings ON project_agent_mappings.project_id = projects.id").
		Where("project_agent_mappings.agent_uuid = ?", agentUUID).
		Order("projects.created_at ASC").
		Scan(&projects).Error
	if err != nil {
		log.WithField("agent_uuid", agentUUID).WithError(err).Error("Failed to get agent projects.")
		return nil, http.StatusInternalServerError
	}

	return projects, http.StatusFound
}

func getProjectAgentMapping(projectID uint64, agentUUID string) (*ProjectAgentMapping, int) {
	db := C.GetServices().Db

	var mapping ProjectAgentMapping
	err := db.Where("project_id = ? AND agent_uuid = ?", projectID, agentUUID).
		First(&mapping).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, http.StatusNotFound
		}
		log.WithFields(log.Fields{"project_id": projectID,
			"agent_uuid": agentUUID}).WithError(err).Error("Failed to get project agent mapping.")
		return nil, http.StatusInternalServerError
	}

	return &mapping, http.StatusFound
}

// IsProjectAgent reports whether the agent belongs to the project.
func IsProjectAgent(projectID uint64, agentUUID string) bool {
	_, errCode := getProjectAgentMapping(projectID, agentUUID)
	return errCode == http.StatusFound
}

// IsProjectAdmin reports whether the agent holds the admin role on
// the project.
func IsProjectAdmin(projectID uint64, agentUUID string) bool {
	mapping, errCode := getProjectAgentMapping(projectID, agentUUID)
	return errCode == http.StatusFound && mapping.Role == RoleAdmin
}

func UpdateProjectAgentRole(projectID uint64, agentUUID, role string) int {
	db := C.GetServices().Db

	if projectID == 0 || agentUUID == "" || !isValidRole(role) {
		return http.StatusBadRequest
	}

	query := db.Model(&ProjectAgentMapping{}).
		Where("project_id = ? AND agent_uuid = ?", projectID, agentUUID).
		Update("role", role)
	if query.Error != nil {
		log.WithFields(log.Fields{"project_id": projectID,
			"agent_uuid": agentUUID}).WithError(query.Error).Error("Failed to update agent role.")
		return http.StatusInternalServerError
	}

	if query.RowsAffected == 0 {
		return http.StatusNotFound
	}

	return http.StatusAccepted
}

func RemoveProjectAgent(projectID uint64, agentUUID string) int {
	db := C.GetServices().Db

	if projectID == 0 || agentUUID == "" {
		return http.StatusBadRequest
	}

	query := db.Where("project_id = ? AND agent_uuid = ?", projectID, agentUUID).
		Delete(&ProjectAgentMapping{})
	if query.Error != nil {
		log.WithFields(log.Fields{"project_id": projectID,
			"agent_uuid": agentUUID}).WithError(query.Error).Error("Failed to remove project agent.")
		return http.StatusInternalServerError
	}

	if query.RowsAffected == 0 {
		return http.StatusNotFound
	}

	return http.StatusAccepted
}
