package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	C "github.com/vayron-digital/modulyn-one-sub000/config"
)

// GetNotificationsHandler returns the active toast stack in arrival
// order. Expired toasts are already gone, dismissal is idempotent.
func GetNotificationsHandler(c *gin.Context) {
	services := C.GetServices()
	if services == nil || services.Notifier == nil {
		c.JSON(http.StatusOK, gin.H{"rows": []interface{}{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"rows": services.Notifier.Active()})
}

func DismissNotificationHandler(c *gin.Context) {
	services := C.GetServices()
	if services != nil && services.Notifier != nil {
		services.Notifier.Dismiss(c.Params.ByName("id"))
	}

	c.JSON(http.StatusAccepted, gin.H{"status": "dismissed"})
}
