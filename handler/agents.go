package handler

import (
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	C "github.com/vayron-digital/modulyn-one-sub000/config"
	mid "github.com/vayron-digital/modulyn-one-sub000/middleware"
	M "github.com/vayron-digital/modulyn-one-sub000/model"
	U "github.com/vayron-digital/modulyn-one-sub000/util"
)

// sessionCookieDomain returns the configured API domain without the
// port. Browsers reject a cookie Domain attribute carrying a port.
func sessionCookieDomain() string {
	domain := C.GetConfig().APIDomain
	if host, _, err := net.SplitHostPort(domain); err == nil {
		return host
	}
	return domain
}

type SigninRequestPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func SigninHandler(c *gin.Context) {
	var payload SigninRequestPayload
	if err := decodeJSONBody(c, &payload); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid signin payload."})
		return
	}

	// Pre-submit checks stay local, no store call on failure.
	if !U.IsValidEmail(payload.Email) {
		abortWithValidationError(c, "Invalid email format.")
		return
	}
	if payload.Password == "" {
		abortWithValidationError(c, "Password is required.")
		return
	}

	agent, errCode := M.AuthenticateAgent(payload.Email, payload.Password)
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password."})
		return
	}

	cookie, err := mid.EncodeSessionCookie(agent.UUID, C.SessionCookieExpirySecs*time.Second)
	if err != nil {
		log.WithError(err).Error("Failed to encode session cookie.")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Signin failed."})
		return
	}

	M.UpdateAgentLastLogin(agent.UUID)

	c.SetCookie(C.SessionCookieName, cookie, C.SessionCookieExpirySecs, "/",
		sessionCookieDomain(), !C.IsDevelopment(), true)
	c.JSON(http.StatusOK, agent)
}

func SignoutHandler(c *gin.Context) {
	c.SetCookie(C.SessionCookieName, "", -1, "/",
		sessionCookieDomain(), !C.IsDevelopment(), true)
	c.JSON(http.StatusOK, gin.H{"status": "signed_out"})
}

func GetMeHandler(c *gin.Context) {
	agentUUID := getAgentScope(c)
	if agentUUID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid session."})
		return
	}

	agent, errCode := M.GetAgentByUUID(agentUUID)
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Failed to get agent."})
		return
	}

	// Project memberships are a secondary fetch. A failure degrades
	// to an empty list instead of blocking the session payload.
	projects, errCode := M.GetAgentProjects(agentUUID)
	if errCode != http.StatusFound {
		log.WithField("agent_uuid", agentUUID).Warn("Failed to get agent projects for session payload.")
		projects = []M.Project{}
	}

	c.JSON(http.StatusOK, gin.H{"agent": agent, "projects": projects})
}

func GetSidebarPreferenceHandler(c *gin.Context) {
	agentUUID := getAgentScope(c)
	if agentUUID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid session."})
		return
	}

	pref, errCode := M.GetAgentPreference(agentUUID, M.PreferenceKeySidebar)
	if errCode == http.StatusNotFound {
		// Default, nothing stored yet.
		c.JSON(http.StatusOK, gin.H{"collapsed": false})
		return
	}
	if errCode != http.StatusFound {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Failed to get preference."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"collapsed": pref.Value})
}

type SidebarPreferencePayload struct {
	Collapsed bool `json:"collapsed"`
}

func SetSidebarPreferenceHandler(c *gin.Context) {
	agentUUID := getAgentScope(c)
	if agentUUID == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid session."})
		return
	}

	var payload SidebarPreferencePayload
	if err := decodeJSONBody(c, &payload); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid preference payload."})
		return
	}

	pref, errCode := M.SetAgentPreference(agentUUID, M.PreferenceKeySidebar, payload.Collapsed)
	if errCode != http.StatusCreated && errCode != http.StatusAccepted {
		c.AbortWithStatusJSON(errCode, gin.H{"error": "Failed to save preference."})
		return
	}

	c.JSON(errCode, pref)
}
