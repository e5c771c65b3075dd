package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"

	"vectorhire/internal/api/middleware"
	"vectorhire/internal/archive"
	"vectorhire/internal/auth"
	"vectorhire/internal/notify"
	"vectorhire/internal/session"
	"vectorhire/internal/store"
)

// Deps bundles the collaborators the route handlers need.
type Deps struct {
	Store       *store.RecordStore
	Holder      *session.Holder
	AuthService *auth.AuthService
	Evaluator   Evaluator
	Archive     *archive.Client
	Hub         *notify.Hub
	Logger      *slog.Logger
	MaxBytes    int64
	ClamdAddr   string
}

// RegisterRoutes 注册 API 路由，不包含 /api 前缀。
func RegisterRoutes(router *gin.Engine, deps Deps) {
	authHandler := NewAuthHandler(deps.Holder, deps.AuthService, deps.Logger)
	evaluateHandler := NewEvaluateHandler(deps.Store, deps.Evaluator, deps.Archive, deps.Hub, deps.AuthService, deps.Logger, deps.MaxBytes, deps.ClamdAddr)
	applicationHandler := NewApplicationHandler(deps.Store, deps.Archive, deps.Hub, deps.Logger)
	jobHandler := &JobHandler{}
	wsHandler := NewWsHandler(deps.Hub, deps.Logger, nil)

	authMiddleware := middleware.AuthMiddleware(deps.AuthService)
	adminOnly := middleware.RequireRole(session.RoleAdmin)

	v1 := router.Group("/v1")
	{
		v1.GET("/ws", wsHandler.HandleConnection)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/logout", authMiddleware, authHandler.Logout)
			authGroup.GET("/me", authMiddleware, authHandler.Me)
		}

		v1.GET("/jobs", jobHandler.List)
		v1.GET("/jobs/:id", jobHandler.Get)

		v1.POST("/evaluate", evaluateHandler.Evaluate)

		adminGroup := v1.Group("/applications")
		adminGroup.Use(authMiddleware, adminOnly)
		{
			adminGroup.GET("", applicationHandler.List)
			adminGroup.PATCH("/:id", applicationHandler.Update)
			adminGroup.DELETE("/:id", applicationHandler.Delete)
		}

		v1.GET("/jobs/:id/applications", authMiddleware, adminOnly, applicationHandler.ListByJob)
	}
}
