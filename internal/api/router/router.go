package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Dashulik10/Hostel-Organization/config"
	"github.com/Dashulik10/Hostel-Organization/internal/api/handler"
	"github.com/Dashulik10/Hostel-Organization/internal/api/middleware"
	"github.com/Dashulik10/Hostel-Organization/pkg/jwt"
	"github.com/Dashulik10/Hostel-Organization/pkg/redis"
)

// Setup builds the Gin engine with the full route table.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── global middleware ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── health check ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// auth module (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register-student/", h.Auth.RegisterStudent)
			auth.POST("/register-worker/", h.Auth.RegisterWorker)
			auth.POST("/login/", h.Auth.Login)
			auth.POST("/logout/", h.Auth.Logout)
		}

		// public catalog surface
		api.GET("/", h.Event.ListEvents)
		api.GET("/event/:slug", h.Event.GetEvent)

		// calendar feed is public so external clients can subscribe
		api.GET("/calendar/", h.Export.Calendar)

		// authenticated routes
		authorized := api.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.GET("/auth/me/", h.Auth.Me)
			authorized.PUT("/auth/password/", h.Auth.ChangePassword)

			// event catalog
			authorized.POST("/add-event/", middleware.RequireWorker(), h.Event.CreateEvent)
			authorized.PATCH("/edit-event/:slug", middleware.RequireWorker(), h.Event.UpdateEvent)
			authorized.PUT("/edit-event/:slug", middleware.RequireWorker(), h.Event.UpdateEvent)
			authorized.DELETE("/delete-event/:slug", middleware.RequireWorker(), h.Event.DeleteEvent)

			// enrollment ledger
			authorized.POST("/:slug/enroll/", middleware.RequireStudent(), h.Enrollment.Enroll)
			authorized.GET("/event/:slug/add-students/", middleware.RequireWorker(), h.Enrollment.ListAvailableStudents)
			authorized.POST("/event/:slug/add-students/", middleware.RequireWorker(), h.Enrollment.AddStudents)
			authorized.POST("/event/:slug/attendance/", middleware.RequireWorker(), h.Enrollment.MarkAttendance)

			// suw accounting
			authorized.GET("/:slug/mark-suw/", middleware.RequireWorker(), h.Suw.Participants)
			authorized.POST("/:slug/mark-suw/", middleware.RequireWorker(), h.Suw.MarkSuw)
			authorized.GET("/manage-student-suw/", middleware.RequireWorker(), h.Suw.SearchStudents)
			authorized.POST("/manage-student-suw/", middleware.RequireWorker(), h.Suw.AdjustSuw)

			// dormitory blocks
			authorized.GET("/blocks/", h.Block.ListBlocks)
			authorized.POST("/blocks/", middleware.RequireWorker(), h.Block.CreateBlock)

			// exports
			authorized.GET("/export/suw-report/", middleware.RequireWorker(), h.Export.SuwReport)
		}
	}

	return r
}
