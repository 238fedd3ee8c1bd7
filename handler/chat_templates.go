package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	M "github.com/vayron-digital/modulyn-one-sub000/model"
)

func GetChatTemplatesHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Get templates failed. Invalid project."})
		return
	}

	templates, errCode := M.ListChatTemplates(projectID)
	if errCode != http.StatusFound {
		abortWithRemoteError(c, errCode, "Get templates failed.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": templates})
}

func CreateChatTemplateHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Create template failed. Invalid project."})
		return
	}

	var template M.ChatTemplate
	if err := decodeJSONBody(c, &template); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Create template failed. Json decode failed."})
		return
	}

	if valid, msg := M.ValidateChatTemplate(&template); !valid {
		abortWithValidationError(c, msg)
		return
	}

	created, errCode := M.CreateChatTemplate(projectID, &template)
	if errCode != http.StatusCreated {
		abortWithRemoteError(c, errCode, "Create template failed.")
		return
	}

	notifySuccess("Template created", created.Title)
	c.JSON(http.StatusCreated, created)
}

// GetChatTemplateLinkHandler resolves a template into the outbound
// deep link for its channel, targeted at ?target= (an email address
// or a phone number, channel dependent).
func GetChatTemplateLinkHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Get link failed. Invalid project."})
		return
	}

	target := c.Query("target")
	if target == "" {
		abortWithValidationError(c, "A target is required.")
		return
	}

	template, errCode := M.GetChatTemplate(projectID, c.Params.ByName("id"))
	if errCode != http.StatusFound {
		abortWithRemoteError(c, errCode, "Get link failed.")
		return
	}

	link, err := M.BuildOutboundLink(template.Channel, target, template.Subject, template.Body)
	if err != nil {
		abortWithValidationError(c, "Invalid target for channel.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"channel": template.Channel, "link": link})
}

func DeleteChatTemplateHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Delete template failed. Invalid project."})
		return
	}

	if !hasDeleteConfirmation(c) {
		confirmationRequired(c)
		return
	}

	errCode := M.DeleteChatTemplate(projectID, c.Params.ByName("id"))
	if errCode != http.StatusAccepted {
		abortWithRemoteError(c, errCode, "Delete template failed.")
		return
	}

	notifySuccess("Template deleted", "")
	c.JSON(http.StatusAccepted, gin.H{"status": "deleted"})
}
