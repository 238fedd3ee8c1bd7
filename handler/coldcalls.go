package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	M "github.com/vayron-digital/modulyn-one-sub000/model"
)

func GetColdCallsHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Get cold calls failed. Invalid project."})
		return
	}

	q := M.ParseListQuery(c, M.ColdCallListOptions())

	coldCalls, total, errCode := M.ListColdCalls(projectID, q)
	if errCode != http.StatusFound {
		abortWithRemoteError(c, errCode, "Get cold calls failed.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":        coldCalls,
		"total_count": total,
		"page":        q.Page,
		"page_size":   M.DefaultPageSize,
	})
}

func CreateColdCallHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Create cold call failed. Invalid project."})
		return
	}

	var coldCall M.ColdCall
	if err := decodeJSONBody(c, &coldCall); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Create cold call failed. Json decode failed."})
		return
	}

	if valid, msg := M.ValidateColdCall(&coldCall); !valid {
		abortWithValidationError(c, msg)
		return
	}

	if coldCall.AgentUUID == "" {
		coldCall.AgentUUID = getAgentScope(c)
	}

	created, errCode := M.CreateColdCall(projectID, &coldCall)
	if errCode != http.StatusCreated {
		abortWithRemoteError(c, errCode, "Create cold call failed.")
		return
	}

	notifySuccess("Cold call added", created.Phone)
	c.JSON(http.StatusCreated, created)
}

func UpdateColdCallHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Update cold call failed. Invalid project."})
		return
	}

	var partial M.ColdCall
	if err := decodeJSONBody(c, &partial); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Update cold call failed. Json decode failed."})
		return
	}

	updated, errCode := M.UpdateColdCall(projectID, c.Params.ByName("id"), &partial)
	if errCode != http.StatusAccepted {
		abortWithRemoteError(c, errCode, "Update cold call failed.")
		return
	}

	notifySuccess("Cold call updated", "")
	c.JSON(http.StatusAccepted, updated)
}

func IncrementColdCallAttemptHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Log attempt failed. Invalid project."})
		return
	}

	errCode := M.IncrementCallAttempts(projectID, c.Params.ByName("id"))
	if errCode != http.StatusAccepted {
		abortWithRemoteError(c, errCode, "Log attempt failed.")
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "recorded"})
}

// ConvertColdCallHandler promotes a cold call into a lead. An already
// converted record answers 409 and no duplicate lead is created.
func ConvertColdCallHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Convert failed. Invalid project."})
		return
	}

	lead, errCode := M.ConvertColdCallToLead(projectID, c.Params.ByName("id"), getAgentScope(c))
	if errCode == http.StatusConflict {
		notifyError("Convert failed", "Cold call is already converted.")
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": "Cold call is already converted."})
		return
	}
	if errCode != http.StatusCreated {
		abortWithRemoteError(c, errCode, "Convert failed.")
		return
	}

	notifySuccess("Lead created", lead.FirstName+" "+lead.LastName)
	c.JSON(http.StatusCreated, lead)
}

func DeleteColdCallHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Delete cold call failed. Invalid project."})
		return
	}

	if !hasDeleteConfirmation(c) {
		confirmationRequired(c)
		return
	}

	errCode := M.DeleteColdCall(projectID, c.Params.ByName("id"))
	if errCode != http.StatusAccepted {
		abortWithRemoteError(c, errCode, "Delete cold call failed.")
		return
	}

	notifySuccess("Cold call deleted", "")
	c.JSON(http.StatusAccepted, gin.H{"status": "deleted"})
}
