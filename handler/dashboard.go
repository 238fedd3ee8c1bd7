package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	M "github.com/vayron-digital/modulyn-one-sub000/model"
)

// GetDashboardHandler serves the summary widget. The route wraps it
// in a widget boundary, a crash here degrades the widget instead of
// the page.
func GetDashboardHandler(c *gin.Context) {
	projectID := getProjectScope(c)
	if projectID == 0 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Get dashboard failed. Invalid project."})
		return
	}

	counts, errCode := M.GetDashboardCounts(projectID)
	if errCode != http.StatusFound {
		abortWithRemoteError(c, errCode, "Get dashboard failed.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"widget": "dashboard_summary", "counts": counts})
}
