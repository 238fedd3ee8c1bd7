package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	C "github.com/vayron-digital/modulyn-one-sub000/config"
)

const appVersion = "1.0.0"

// StatusHandler reports process health with store and cache pings.
func StatusHandler(c *gin.Context) {
	services := C.GetServices()

	status := gin.H{"status": "ok", "version": appVersion, "db": "ok", "redis": "ok"}
	healthy := true

	if services == nil || services.Db == nil || services.Db.DB().Ping() != nil {
		status["db"] = "down"
		healthy = false
	}

	if services == nil || services.Redis == nil {
		status["redis"] = "down"
		healthy = false
	} else {
		conn := services.Redis.Get()
		if _, err := conn.Do("PING"); err != nil {
			status["redis"] = "down"
			healthy = false
		}
		conn.Close()
	}

	if !healthy {
		status["status"] = "degraded"
		c.JSON(http.StatusServiceUnavailable, status)
		return
	}

	c.JSON(http.StatusOK, status)
}
