package handler

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	M "github.com/vayron-digital/modulyn-one-sub000/model"
)

// GetLeadsHandler serves the leads list screen payload: the filtered
// page and the assignable-agent lookup, fetched concurrently. The
// lookup is non-critical, its failure degrades to an empty list.
func GetLeadsHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Get leads failed. Invalid project."})
		return
	}

	q := M.ParseListQuery(c, M.LeadListOptions())

	var leads []M.Lead
	var total, listErrCode int
	var agents []M.ProjectAgentInfo

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		leads, total, listErrCode = M.ListLeads(projectID, q)
	}()
	go func() {
		defer wg.Done()
		var errCode int
		agents, errCode = M.GetProjectAgents(projectID)
		if errCode != http.StatusFound {
			log.WithField("project_id", projectID).Warn("Agent lookup failed for leads screen.")
			agents = []M.ProjectAgentInfo{}
		}
	}()
	wg.Wait()

	if listErrCode != http.StatusFound {
		abortWithRemoteError(c, listErrCode, "Get leads failed.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":        leads,
		"total_count": total,
		"page":        q.Page,
		"page_size":   M.DefaultPageSize,
		"agents":      agents,
	})
}

// GetLeadHandler serves the lead detail screen: the lead plus its
// recent calls and notes.
func GetLeadHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Get lead failed. Invalid project."})
		return
	}

	id := c.Params.ByName("id")
	lead, errCode := M.GetLead(projectID, id)
	if errCode != http.StatusFound {
		abortWithRemoteError(c, errCode, "Get lead failed.")
		return
	}

	// Related collections are secondary, they degrade silently.
	callsQuery := M.DefaultListQuery().WithFilter("lead_id", id)
	calls, _, callsErrCode := M.ListCalls(projectID, callsQuery)
	if callsErrCode != http.StatusFound {
		log.WithField("lead_id", id).Warn("Call lookup failed for lead detail.")
		calls = []M.Call{}
	}

	notesQuery := M.DefaultListQuery().WithFilter("lead_id", id)
	notes, _, notesErrCode := M.ListNotes(projectID, notesQuery)
	if notesErrCode != http.StatusFound {
		log.WithField("lead_id", id).Warn("Note lookup failed for lead detail.")
		notes = []M.Note{}
	}

	c.JSON(http.StatusOK, gin.H{"lead": lead, "calls": calls, "notes": notes})
}

func CreateLeadHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Create lead failed. Invalid project."})
		return
	}

	var lead M.Lead
	if err := decodeJSONBody(c, &lead); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Create lead failed. Json decode failed."})
		return
	}

	// Required-field check before any store call.
	if valid, msg := M.ValidateLead(&lead); !valid {
		abortWithValidationError(c, msg)
		return
	}

	lead.CreatedBy = getAgentScope(c)

	created, errCode := M.CreateLead(projectID, &lead)
	if errCode != http.StatusCreated {
		abortWithRemoteError(c, errCode, "Create lead failed.")
		return
	}

	notifySuccess("Lead created", created.FirstName+" "+created.LastName)
	c.JSON(http.StatusCreated, created)
}

func UpdateLeadHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Update lead failed. Invalid project."})
		return
	}

	var partial M.Lead
	if err := decodeJSONBody(c, &partial); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Update lead failed. Json decode failed."})
		return
	}

	updated, errCode := M.UpdateLead(projectID, c.Params.ByName("id"), &partial)
	if errCode != http.StatusAccepted {
		abortWithRemoteError(c, errCode, "Update lead failed.")
		return
	}

	notifySuccess("Lead updated", updated.FirstName+" "+updated.LastName)
	c.JSON(http.StatusAccepted, updated)
}

func DeleteLeadHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Delete lead failed. Invalid project."})
		return
	}

	if !hasDeleteConfirmation(c) {
		confirmationRequired(c)
		return
	}

	errCode := M.DeleteLead(projectID, c.Params.ByName("id"))
	if errCode != http.StatusAccepted {
		abortWithRemoteError(c, errCode, "Delete lead failed.")
		return
	}

	notifySuccess("Lead deleted", "")
	c.JSON(http.StatusAccepted, gin.H{"status": "deleted"})
}
