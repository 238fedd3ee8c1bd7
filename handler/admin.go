package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	M "github.com/vayron-digital/modulyn-one-sub000/model"
)

func GetProjectAgentsHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Get users failed. Invalid project."})
		return
	}

	agents, errCode := M.GetProjectAgents(projectID)
	if errCode != http.StatusFound {
		abortWithRemoteError(c, errCode, "Get users failed.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": agents})
}

type InviteAgentPayload struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Password  string `json:"password"`
	Role      string `json:"role"`
}

// InviteAgentHandler adds a teammate to the project. An agent that
// already exists for the email is mapped in, otherwise a new agent
// row is created first.
func InviteAgentHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invite failed. Invalid project."})
		return
	}

	var payload InviteAgentPayload
	if err := decodeJSONBody(c, &payload); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invite failed. Json decode failed."})
		return
	}

	if payload.Role == "" {
		payload.Role = M.RoleAgent
	}

	agent, errCode := M.GetAgentByEmail(payload.Email)
	if errCode == http.StatusNotFound {
		agent, errCode = M.CreateAgent(&M.CreateAgentParams{
			Email:     payload.Email,
			FirstName: payload.FirstName,
			LastName:  payload.LastName,
			Phone:     payload.Phone,
			Password:  payload.Password,
		})
		if errCode == http.StatusBadRequest {
			abortWithValidationError(c, "Invalid email or password too short.")
			return
		}
		if errCode != http.StatusCreated {
			abortWithRemoteError(c, errCode, "Invite failed.")
			return
		}
	} else if errCode != http.StatusFound {
		abortWithRemoteError(c, errCode, "Invite failed.")
		return
	}

	if M.IsProjectAgent(projectID, agent.UUID) {
		abortWithValidationError(c, "Agent is already on this project.")
		return
	}

	if _, errCode := M.CreateProjectAgentMapping(projectID, agent.UUID, payload.Role); errCode != http.StatusCreated {
		abortWithRemoteError(c, errCode, "Invite failed.")
		return
	}

	notifySuccess("Teammate added", agent.Email)
	c.JSON(http.StatusCreated, agent)
}

type UpdateRolePayload struct {
	Role string `json:"role"`
}

func UpdateAgentRoleHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Update role failed. Invalid project."})
		return
	}

	var payload UpdateRolePayload
	if err := decodeJSONBody(c, &payload); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Update role failed. Json decode failed."})
		return
	}

	targetUUID := c.Params.ByName("agent_uuid")
	if targetUUID == getAgentScope(c) {
		abortWithValidationError(c, "You cannot change your own role.")
		return
	}

	errCode := M.UpdateProjectAgentRole(projectID, targetUUID, payload.Role)
	if errCode == http.StatusBadRequest {
		abortWithValidationError(c, "Invalid role.")
		return
	}
	if errCode != http.StatusAccepted {
		abortWithRemoteError(c, errCode, "Update role failed.")
		return
	}

	notifySuccess("Role updated", "")
	c.JSON(http.StatusAccepted, gin.H{"status": "updated"})
}

func RemoveProjectAgentHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Remove user failed. Invalid project."})
		return
	}

	if !hasDeleteConfirmation(c) {
		confirmationRequired(c)
		return
	}

	targetUUID := c.Params.ByName("agent_uuid")
	if targetUUID == getAgentScope(c) {
		abortWithValidationError(c, "You cannot remove yourself.")
		return
	}

	errCode := M.RemoveProjectAgent(projectID, targetUUID)
	if errCode != http.StatusAccepted {
		abortWithRemoteError(c, errCode, "Remove user failed.")
		return
	}

	log.WithFields(log.Fields{"project_id": projectID,
		"agent_uuid": targetUUID}).Info("Agent removed from project.")
	notifySuccess("Teammate removed", "")
	c.JSON(http.StatusAccepted, gin.H{"status": "removed"})
}
