package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/xid"
	log "github.com/sirupsen/logrus"

	C "github.com/vayron-digital/modulyn-one-sub000/config"
	M "github.com/vayron-digital/modulyn-one-sub000/model"
	U "github.com/vayron-digital/modulyn-one-sub000/util"
)

// scope constants.
const SCOPE_AGENT_UUID = "agentUUID"
const SCOPE_PROJECT_ID = "projectId"
const SCOPE_IS_ADMIN = "isAdmin"
const SCOPE_REQUEST_ID = "requestId"

// CustomCors for customised cors configuration based on conditions.
func CustomCors() gin.HandlerFunc {
	return func(c *gin.Context) {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowCredentials = true

		if C.IsDevelopment() {
			corsConfig.AllowOrigins = []string{"http://localhost:8080",
				"http://localhost:3000", "http://localhost:5173"}
		} else {
			corsConfig.AllowOrigins = []string{"https://" + C.GetConfig().APPDomain}
		}

		cors.New(corsConfig)(c)
	}
}

// RequestIdGenerator assigns an opaque id to every request, echoed
// on the response for correlation.
func RequestIdGenerator() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := xid.New().String()
		U.SetScope(c, SCOPE_REQUEST_ID, requestID)
		c.Writer.Header().Set("X-Request-Id", requestID)
		c.Next()
	}
}

// Logger writes a structured access record per request.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.WithFields(log.Fields{
			"request_id": U.GetScopeByKeyAsString(c, SCOPE_REQUEST_ID),
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"latency_ms": time.Since(start).Milliseconds(),
		}).Info("Request served.")
	}
}

// SetScopeAgentBySessionCookie - Request scope set from the session
// cookie. Unauthenticated requests are rejected with 401, the client
// redirects to login.
func SetScopeAgentBySessionCookie() gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(C.SessionCookieName)
		if err != nil || cookie == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing session."})
			return
		}

		agentUUID, err := decodeSessionCookie(cookie)
		if err != nil {
			log.WithError(err).Debug("Request failed with invalid session cookie.")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid session."})
			return
		}

		agent, errCode := M.GetAgentByUUID(agentUUID)
		if errCode != http.StatusFound || !agent.IsActive {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid session."})
			return
		}

		U.SetScope(c, SCOPE_AGENT_UUID, agent.UUID)
		c.Next()
	}
}

// IsAuthorizedProjectAgent - Authorizes the request by validating
// the agent's membership on the param project and sets the project
// scope.
func IsAuthorizedProjectAgent() gin.HandlerFunc {
	return func(c *gin.Context) {
		paramProjectID, err := strconv.ParseUint(c.Params.ByName("project_id"), 10, 64)
		if err != nil || paramProjectID == 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "Invalid project id on param."})
			return
		}

		agentUUID := U.GetScopeByKeyAsString(c, SCOPE_AGENT_UUID)
		if agentUUID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access."})
			return
		}

		if !M.IsProjectAgent(paramProjectID, agentUUID) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access. Not a project agent."})
			return
		}

		U.SetScope(c, SCOPE_PROJECT_ID, paramProjectID)
		U.SetScope(c, SCOPE_IS_ADMIN, M.IsProjectAdmin(paramProjectID, agentUUID))
		c.Next()
	}
}

// IsAdmin gates the admin surface on the project mapping role.
func IsAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !U.GetScopeByKeyAsBool(c, SCOPE_IS_ADMIN) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required."})
			return
		}
		c.Next()
	}
}

// SetScopeProjectByPrivateToken - scope set by private token on the
// 'Authorization' header, for server to server inserts.
func SetScopeProjectByPrivateToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Request.Header.Get("Authorization")
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization header."})
			return
		}

		project, errCode := M.GetProjectByPrivateToken(token)
		if errCode != http.StatusFound {
			log.Error("Request failed because of invalid private token.")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token."})
			return
		}

		U.SetScope(c, SCOPE_PROJECT_ID, project.ID)
		c.Next()
	}
}

// GetScopeProjectID reads the project scope set by authorization.
func GetScopeProjectID(c *gin.Context) uint64 {
	value := U.GetScopeByKey(c, SCOPE_PROJECT_ID)
	if value == nil {
		return 0
	}

	projectID, ok := value.(uint64)
	if !ok {
		return 0
	}
	return projectID
}
