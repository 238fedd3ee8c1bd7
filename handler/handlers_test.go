package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	C "github.com/vayron-digital/modulyn-one-sub000/config"
	mid "github.com/vayron-digital/modulyn-one-sub000/middleware"
	U "github.com/vayron-digital/modulyn-one-sub000/util"
)

// setScopeForTest replaces the auth middlewares so handler checks run
// without a store connection.
func setScopeForTest(projectID uint64, agentUUID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		U.SetScope(c, mid.SCOPE_PROJECT_ID, projectID)
		U.SetScope(c, mid.SCOPE_AGENT_UUID, agentUUID)
		c.Next()
	}
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	C.InitForTest(&C.Configuration{AppName: "app_server", Env: C.DEVELOPMENT,
		APPDomain: "app.modulyn.test"})

	r := gin.New()
	p := r.Group("/projects/:project_id")
	p.Use(setScopeForTest(1, "agent-uuid-1"))
	p.POST("/leads", CreateLeadHandler)
	p.DELETE("/leads/:id", DeleteLeadHandler)
	p.POST("/calls", CreateCallHandler)
	p.POST("/calls/upload", UploadCallsHandler)
	p.POST("/notes", CreateNoteHandler)
	p.POST("/coldcalls", CreateColdCallHandler)
	p.POST("/events", CreateEventHandler)
	p.GET("/events/conflicts", GetEventConflictsHandler)
	p.POST("/events/import", ImportEventsHandler)
	p.POST("/templates", CreateChatTemplateHandler)
	p.DELETE("/notes/:id", DeleteNoteHandler)
	p.DELETE("/coldcalls/:id", DeleteColdCallHandler)
	p.DELETE("/events/:id", DeleteEventHandler)
	p.DELETE("/templates/:id", DeleteChatTemplateHandler)

	r.POST("/agents/signin", SigninHandler)
	return r
}

func sendJSON(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestCreateLeadRejectsMissingRequiredFields(t *testing.T) {
	r := setupTestRouter()

	// Missing phone. Rejected before any store call.
	w := sendJSON(r, "POST", "/projects/1/leads",
		`{"first_name": "Amira", "last_name": "Khan"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Phone is required.")

	// Missing first name.
	w = sendJSON(r, "POST", "/projects/1/leads",
		`{"last_name": "Khan", "phone": "+971501234567"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "First name is required.")

	// Unknown fields are rejected at decode.
	w = sendJSON(r, "POST", "/projects/1/leads",
		`{"first_name": "Amira", "last_name": "Khan", "phone": "+971501234567", "favorite_color": "blue"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateCallRejectsInvalidPayload(t *testing.T) {
	r := setupTestRouter()

	w := sendJSON(r, "POST", "/projects/1/calls", `{"type": "telepathy"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Completed without an outcome.
	w = sendJSON(r, "POST", "/projects/1/calls",
		`{"type": "outbound", "status": "completed"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Outcome is required")
}

func TestCreateNoteRequiresContent(t *testing.T) {
	r := setupTestRouter()

	w := sendJSON(r, "POST", "/projects/1/notes", `{"type": "general"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Note content is required.")
}

func TestCreateColdCallRequiresPhone(t *testing.T) {
	r := setupTestRouter()

	w := sendJSON(r, "POST", "/projects/1/coldcalls", `{"name": "Walk-in"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateEventRejectsInvertedTimes(t *testing.T) {
	r := setupTestRouter()

	w := sendJSON(r, "POST", "/projects/1/events",
		`{"title": "Viewing", "start_time": "2026-09-01T11:00:00Z", "end_time": "2026-09-01T10:00:00Z"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "End time must be after start time.")
}

func TestCreateChatTemplateRejectsBadChannel(t *testing.T) {
	r := setupTestRouter()

	w := sendJSON(r, "POST", "/projects/1/templates",
		`{"title": "Follow up", "body": "Hi", "channel": "pigeon"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	r := setupTestRouter()

	// Without confirm=true nothing is deleted, any value but "true"
	// included.
	for _, path := range []string{
		"/projects/1/leads/abc",
		"/projects/1/notes/abc",
		"/projects/1/coldcalls/abc",
		"/projects/1/events/abc",
		"/projects/1/templates/abc",
	} {
		w := sendJSON(r, "DELETE", path, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
		assert.Contains(t, w.Body.String(), "Confirmation required.", path)

		w = sendJSON(r, "DELETE", path+"?confirm=yes", "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestUploadCallsRejectsEmptyBatch(t *testing.T) {
	r := setupTestRouter()

	w := sendJSON(r, "POST", "/projects/1/calls/upload", `{"calls": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No calls in upload.")
}

func TestImportEventsRejectsEmptyBatch(t *testing.T) {
	r := setupTestRouter()

	w := sendJSON(r, "POST", "/projects/1/events/import", `{"events": []}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventConflictsValidatesWindow(t *testing.T) {
	r := setupTestRouter()

	w := sendJSON(r, "GET", "/projects/1/events/conflicts?start=garbage", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// End before start.
	w = sendJSON(r, "GET",
		"/projects/1/events/conflicts?start=2026-09-01T11:00:00Z&end=2026-09-01T10:00:00Z", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSigninValidatesBeforeStore(t *testing.T) {
	r := setupTestRouter()

	w := sendJSON(r, "POST", "/agents/signin", `{"email": "nope", "password": "secret123"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email format.")

	w = sendJSON(r, "POST", "/agents/signin", `{"email": "agent@example.com", "password": ""}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Password is required.")
}

func TestSessionCookieDomainStripsPort(t *testing.T) {
	C.InitForTest(&C.Configuration{AppName: "app_server", Env: C.DEVELOPMENT,
		APIDomain: "localhost:8080"})
	assert.Equal(t, "localhost", sessionCookieDomain())

	C.InitForTest(&C.Configuration{AppName: "app_server", Env: C.DEVELOPMENT,
		APIDomain: "api.modulyn.app"})
	assert.Equal(t, "api.modulyn.app", sessionCookieDomain())
}

func TestValidationFailuresLandOnNotificationChannel(t *testing.T) {
	r := setupTestRouter()

	sendJSON(r, "POST", "/projects/1/notes", `{"type": "general"}`)

	active := C.GetServices().Notifier.Active()
	if assert.NotEmpty(t, active) {
		assert.Equal(t, "Validation failed", active[len(active)-1].Title)
	}
}
