package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	M "github.com/vayron-digital/modulyn-one-sub000/model"
)

// GetCallsHandler serves the calls list with the manual lead join.
// Orphaned lead references render with a null lead, never hidden.
func GetCallsHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Get calls failed. Invalid project."})
		return
	}

	q := M.ParseListQuery(c, M.CallListOptions())

	calls, total, errCode := M.ListCalls(projectID, q)
	if errCode != http.StatusFound {
		abortWithRemoteError(c, errCode, "Get calls failed.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":        M.JoinCallLeads(projectID, calls),
		"total_count": total,
		"page":        q.Page,
		"page_size":   M.DefaultPageSize,
	})
}

func CreateCallHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Create call failed. Invalid project."})
		return
	}

	var call M.Call
	if err := decodeJSONBody(c, &call); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Create call failed. Json decode failed."})
		return
	}

	if valid, msg := M.ValidateCall(&call); !valid {
		abortWithValidationError(c, msg)
		return
	}

	if call.AgentUUID == "" {
		call.AgentUUID = getAgentScope(c)
	}

	created, errCode := M.CreateCall(projectID, &call)
	if errCode != http.StatusCreated {
		abortWithRemoteError(c, errCode, "Create call failed.")
		return
	}

	notifySuccess("Call logged", "")
	c.JSON(http.StatusCreated, created)
}

func UpdateCallHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Update call failed. Invalid project."})
		return
	}

	var partial M.Call
	if err := decodeJSONBody(c, &partial); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Update call failed. Json decode failed."})
		return
	}

	updated, errCode := M.UpdateCall(projectID, c.Params.ByName("id"), &partial)
	if errCode != http.StatusAccepted {
		abortWithRemoteError(c, errCode, "Update call failed.")
		return
	}

	notifySuccess("Call updated", "")
	c.JSON(http.StatusAccepted, updated)
}

func DeleteCallHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Delete call failed. Invalid project."})
		return
	}

	if !hasDeleteConfirmation(c) {
		confirmationRequired(c)
		return
	}

	errCode := M.DeleteCall(projectID, c.Params.ByName("id"))
	if errCode != http.StatusAccepted {
		abortWithRemoteError(c, errCode, "Delete call failed.")
		return
	}

	notifySuccess("Call deleted", "")
	c.JSON(http.StatusAccepted, gin.H{"status": "deleted"})
}

type UploadCallsRequestPayload struct {
	Calls []M.Call `json:"calls"`
}

// UploadCallsHandler bulk-inserts uploaded call logs. Valid rows are
// inserted, invalid rows come back with per-row reasons.
func UploadCallsHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Upload calls failed. Invalid project."})
		return
	}

	var payload UploadCallsRequestPayload
	if err := decodeJSONBody(c, &payload); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Upload calls failed. Json decode failed."})
		return
	}

	if len(payload.Calls) == 0 {
		abortWithValidationError(c, "No calls in upload.")
		return
	}

	created, rowErrors, errCode := M.BulkCreateCalls(projectID, getAgentScope(c), payload.Calls)
	if errCode != http.StatusCreated {
		abortWithRemoteError(c, errCode, "Upload calls failed.")
		return
	}

	notifySuccess("Calls uploaded", "")
	c.JSON(http.StatusCreated, gin.H{"created": created, "errors": rowErrors})
}
