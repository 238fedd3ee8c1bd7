package handler

import (
	"github.com/gin-gonic/gin"

	mid "github.com/vayron-digital/modulyn-one-sub000/middleware"
)

// InitAppRoutes registers the authenticated application surface.
// Group based middlewares are registered here, root middlewares
// (cors, request id, logger, recovery) on the engine in main.
func InitAppRoutes(r *gin.Engine) {
	r.GET("/status", StatusHandler)

	// Session surface. Signin/signup are the only unauthenticated
	// application routes.
	r.POST("/agents/signin", SigninHandler)
	r.POST("/agents/signout", SignoutHandler)

	me := r.Group("/agents/me")
	me.Use(mid.SetScopeAgentBySessionCookie())
	me.GET("", GetMeHandler)
	me.GET("/preferences/sidebar", GetSidebarPreferenceHandler)
	me.PUT("/preferences/sidebar", SetSidebarPreferenceHandler)
	me.GET("/notifications", GetNotificationsHandler)
	me.DELETE("/notifications/:id", DismissNotificationHandler)

	// Project-scoped surface.
	p := r.Group("/projects/:project_id")
	p.Use(mid.SetScopeAgentBySessionCookie(), mid.IsAuthorizedProjectAgent())

	p.GET("/leads", GetLeadsHandler)
	p.POST("/leads", CreateLeadHandler)
	p.GET("/leads/:id", GetLeadHandler)
	p.PUT("/leads/:id", UpdateLeadHandler)
	p.DELETE("/leads/:id", DeleteLeadHandler)

	p.GET("/calls", GetCallsHandler)
	p.POST("/calls", CreateCallHandler)
	p.POST("/calls/upload", UploadCallsHandler)
	p.PUT("/calls/:id", UpdateCallHandler)
	p.DELETE("/calls/:id", DeleteCallHandler)

	p.GET("/notes", GetNotesHandler)
	p.POST("/notes", CreateNoteHandler)
	p.PUT("/notes/:id", UpdateNoteHandler)
	p.PUT("/notes/:id/importance", SetNoteImportanceHandler)
	p.DELETE("/notes/:id", DeleteNoteHandler)

	p.GET("/coldcalls", GetColdCallsHandler)
	p.POST("/coldcalls", CreateColdCallHandler)
	p.PUT("/coldcalls/:id", UpdateColdCallHandler)
	p.POST("/coldcalls/:id/attempt", IncrementColdCallAttemptHandler)
	p.POST("/coldcalls/:id/convert", ConvertColdCallHandler)
	p.DELETE("/coldcalls/:id", DeleteColdCallHandler)

	p.GET("/events", GetEventsHandler)
	p.POST("/events", CreateEventHandler)
	p.GET("/events/conflicts", GetEventConflictsHandler)
	p.GET("/events/export", ExportEventsHandler)
	p.POST("/events/import", ImportEventsHandler)
	p.PUT("/events/:id", UpdateEventHandler)
	p.DELETE("/events/:id", DeleteEventHandler)

	p.GET("/developers", GetDevelopersHandler)
	p.POST("/developers", CreateDeveloperHandler)
	p.DELETE("/developers/:id", DeleteDeveloperHandler)
	p.GET("/developers/:id/brochures", GetBrochuresHandler)
	p.POST("/developers/:id/brochures", UploadBrochureHandler)
	p.POST("/developers/:id/logo", UploadDeveloperLogoHandler)
	p.DELETE("/brochures/:id", DeleteBrochureHandler)

	p.GET("/templates", GetChatTemplatesHandler)
	p.POST("/templates", CreateChatTemplateHandler)
	p.GET("/templates/:id/link", GetChatTemplateLinkHandler)
	p.DELETE("/templates/:id", DeleteChatTemplateHandler)

	p.GET("/dashboard", mid.WrapWidget("dashboard_summary", GetDashboardHandler))
	p.GET("/realtime", RealtimeStreamHandler)

	// Admin surface, gated on the project mapping role.
	admin := p.Group("/admin")
	admin.Use(mid.IsAdmin())
	admin.GET("/users", GetProjectAgentsHandler)
	admin.POST("/users", InviteAgentHandler)
	admin.PUT("/users/:agent_uuid/role", UpdateAgentRoleHandler)
	admin.DELETE("/users/:agent_uuid", RemoveProjectAgentHandler)
}

// InitSDKRoutes registers the private-token server to server
// surface.
func InitSDKRoutes(r *gin.Engine) {
	sdk := r.Group("/sdk")
	sdk.Use(mid.SetScopeProjectByPrivateToken())
	sdk.POST("/leads", CreateLeadHandler)
	sdk.POST("/coldcalls", CreateColdCallHandler)
}
