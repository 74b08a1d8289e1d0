package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"siscof/backend/config"
	"siscof/backend/internal/api/handler"
	"siscof/backend/internal/api/middleware"
	"siscof/backend/pkg/jwt"
	"siscof/backend/pkg/redis"
)

// maxBodyBytes caps request bodies; the API only carries small JSON.
const maxBodyBytes = 1 << 20

// Setup builds the Gin engine with the full route table.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))
	r.Use(middleware.BodyLimit(maxBodyBytes))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// auth (no token required; rate limited)
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// public viewer (no token required)
		public := v1.Group("/public")
		{
			public.GET("/units", h.Public.ListUnits)
			public.GET("/units/:id/calendar.ics", h.Public.UnitCalendar)
			public.GET("/schedules", h.Public.ListSchedules)
			public.GET("/schedules/:id/assignments", h.Public.ListAssignments)
		}

		// authenticated routes
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			authorized.GET("/permissions", h.Permission.GetCapabilities)

			authorized.GET("/roles", h.Catalog.ListRoles)
			authorized.GET("/service-types", h.Catalog.ListServiceTypes)

			churches := authorized.Group("/churches")
			{
				churches.GET("", h.Unit.ListChurches)
				churches.GET("/:id/cells", h.Unit.ListCells)
				churches.PUT("/:id/approval", middleware.AdminOnly(), h.Unit.ApproveChurch)
			}
			authorized.PUT("/cells/:id/approval", middleware.AdminOnly(), h.Unit.ApproveCell)

			authorized.GET("/members", h.Member.ListMembers)
			authorized.GET("/members/:id", h.Member.GetMember)

			schedules := authorized.Group("/schedules")
			{
				schedules.GET("", h.Schedule.ListSchedules)
				schedules.POST("", h.Schedule.CreateSchedule)
				schedules.GET("/:id", h.Schedule.GetSchedule)
				schedules.DELETE("/:id", h.Schedule.DeleteSchedule)

				schedules.GET("/:id/assignments", h.Roster.ListAssignments)
				schedules.POST("/:id/assignments", h.Roster.AddAssignment)
				schedules.POST("/:id/close", h.Roster.CloseSchedule)
				schedules.GET("/:id/export", h.Export.ExportSchedule)
			}

			assignments := authorized.Group("/assignments")
			{
				assignments.PUT("/:id", h.Roster.UpdateAssignment)
				assignments.PUT("/:id/attendance", h.Roster.UpdateAttendance)
				assignments.DELETE("/:id", h.Roster.RemoveAssignment)
			}
		}
	}

	return r
}
