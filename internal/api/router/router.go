package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"vtufest/backend/config"
	"vtufest/backend/internal/api/handler"
	"vtufest/backend/internal/api/middleware"
	"vtufest/backend/internal/model"
	"vtufest/backend/pkg/jwt"
	"vtufest/backend/pkg/response"
)

// Setup 初始化并返回 Gin 路由引擎
// limiter 为 nil 时不限流
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, limiter middleware.RateLimiter, logger *zap.Logger) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	// ── 全局中间件 ──
	r.Use(middleware.RequestID())
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.SecurityHeaders())
	if cfg.Server.BodyLimitBytes > 0 {
		r.Use(middleware.BodyLimit(cfg.Server.BodyLimitBytes))
	}

	r.NoMethod(response.MethodNotAllowed)
	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Route not found")
	})

	// ── 运维 ──
	r.GET("/health", h.Health.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	v1.Use(middleware.JWTAuth(jwtMgr, cfg.Server.LoginRedirectURL))
	if cfg.RateLimit.Enabled && limiter != nil {
		v1.Use(middleware.RateLimit(limiter, cfg.RateLimit.Requests, cfg.RateLimit.Window))
	}
	{
		staff := middleware.RoleAuth(model.RolePrincipal, model.RoleManager)

		// 赛项分配：校长只读，领队可增删
		v1.POST("/assign-events", staff, h.Assignment.Handle)
		v1.POST("/get-events", staff, h.College.Events)
		v1.POST("/check-lock-status", staff, h.College.LockStatus)
		v1.GET("/export/assignments", staff, h.Export.ExportAssignments)

		// 领队
		v1.POST("/assign-manager", middleware.RoleAuth(model.RolePrincipal), h.Manager.Assign)
		v1.POST("/manager-profile", middleware.RoleAuth(model.RoleManager), h.Manager.Profile)
	}

	return r
}
