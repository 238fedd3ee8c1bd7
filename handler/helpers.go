package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	C "github.com/vayron-digital/modulyn-one-sub000/config"
	mid "github.com/vayron-digital/modulyn-one-sub000/middleware"
	"github.com/vayron-digital/modulyn-one-sub000/notifier"
	U "github.com/vayron-digital/modulyn-one-sub000/util"
)

// getProjectScope reads the authorized project id for the request.
func getProjectScope(c *gin.Context) uint64 {
	return mid.GetScopeProjectID(c)
}

func getAgentScope(c *gin.Context) string {
	return U.GetScopeByKeyAsString(c, mid.SCOPE_AGENT_UUID)
}

// decodeJSONBody decodes a request payload, rejecting unknown fields.
func decodeJSONBody(c *gin.Context, out interface{}) error {
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(out)
}

// hasDeleteConfirmation - destructive actions need the explicit
// confirm flag granted by the confirm dialog. Without it no mutation
// is issued.
func hasDeleteConfirmation(c *gin.Context) bool {
	return c.Query("confirm") == "true"
}

func notifySuccess(title, message string) {
	services := C.GetServices()
	if services == nil || services.Notifier == nil {
		return
	}
	services.Notifier.Push(notifier.Notification{
		Kind: notifier.KindSuccess, Title: title, Message: message})
}

func notifyError(title, message string) {
	services := C.GetServices()
	if services == nil || services.Notifier == nil {
		return
	}
	services.Notifier.Push(notifier.Notification{
		Kind: notifier.KindError, Title: title, Message: message})
}

// abortWithValidationError surfaces a pre-submit validation failure
// inline and on the notification channel, without any network call
// to the store.
func abortWithValidationError(c *gin.Context, message string) {
	notifyError("Validation failed", message)
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": message})
}

// abortWithRemoteError surfaces a store failure with the raw message
// when available.
func abortWithRemoteError(c *gin.Context, errCode int, fallback string) {
	notifyError("Operation failed", fallback)
	c.AbortWithStatusJSON(errCode, gin.H{"error": fallback})
}

// confirmationRequired rejects an unconfirmed destructive action.
func confirmationRequired(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Confirmation required."})
}
