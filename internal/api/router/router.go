package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Leela-Pavan/EduTrack/config"
	"github.com/Leela-Pavan/EduTrack/internal/api/handler"
	"github.com/Leela-Pavan/EduTrack/internal/api/middleware"
	"github.com/Leela-Pavan/EduTrack/pkg/jwt"
	"github.com/Leela-Pavan/EduTrack/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.Me)

			// 教师模块
			teachers := authorized.Group("/teachers")
			{
				teachers.GET("", h.Teacher.List)
				teachers.GET("/:id", h.Teacher.Get)
				teachers.POST("", middleware.RoleAuth("admin"), h.Teacher.Create)
				teachers.PUT("/:id", middleware.RoleAuth("admin"), h.Teacher.Update)
				teachers.DELETE("/:id", middleware.RoleAuth("admin"), h.Teacher.Delete)
			}

			// 科目模块
			subjects := authorized.Group("/subjects")
			{
				subjects.GET("", h.Subject.List)
				subjects.GET("/:id", h.Subject.Get)
				subjects.POST("", middleware.RoleAuth("admin"), h.Subject.Create)
				subjects.PUT("/:id", middleware.RoleAuth("admin"), h.Subject.Update)
				subjects.DELETE("/:id", middleware.RoleAuth("admin"), h.Subject.Delete)
			}

			// 教室模块
			classrooms := authorized.Group("/classrooms")
			{
				classrooms.GET("", h.Classroom.List)
				classrooms.GET("/:id", h.Classroom.Get)
				classrooms.POST("", middleware.RoleAuth("admin"), h.Classroom.Create)
				classrooms.PUT("/:id", middleware.RoleAuth("admin"), h.Classroom.Update)
				classrooms.DELETE("/:id", middleware.RoleAuth("admin"), h.Classroom.Delete)
			}

			// 班组模块（含科目分配）
			groups := authorized.Group("/groups")
			{
				groups.GET("", h.Group.List)
				groups.GET("/:id", h.Group.Get)
				groups.POST("", middleware.RoleAuth("admin"), h.Group.Create)
				groups.PUT("/:id", middleware.RoleAuth("admin"), h.Group.Update)
				groups.DELETE("/:id", middleware.RoleAuth("admin"), h.Group.Delete)
				groups.GET("/:id/subjects", h.Group.ListAssignments)
				groups.POST("/:id/subjects", middleware.RoleAuth("admin"), h.Group.AssignSubject)
			}

			// 科目分配（按分配 ID 操作）
			groupSubjects := authorized.Group("/group-subjects")
			{
				groupSubjects.PUT("/:id", middleware.RoleAuth("admin"), h.Group.UpdateAssignment)
				groupSubjects.DELETE("/:id", middleware.RoleAuth("admin"), h.Group.RemoveAssignment)
			}

			// 时间段模块
			timeSlots := authorized.Group("/time-slots")
			{
				timeSlots.GET("", h.TimeSlot.List)
				timeSlots.GET("/:id", h.TimeSlot.Get)
				timeSlots.POST("", middleware.RoleAuth("admin"), h.TimeSlot.Create)
				timeSlots.DELETE("/:id", middleware.RoleAuth("admin"), h.TimeSlot.Delete)
			}

			// 课表模块（生成、查询、统计、导出）
			timetable := authorized.Group("/timetable")
			{
				timetable.POST("/generate", middleware.RoleAuth("admin"), h.Generation.Generate)
				timetable.GET("/generations", h.Generation.History)
				timetable.GET("/generations/latest", h.Generation.Latest)
				timetable.GET("", h.Timetable.View)
				timetable.GET("/conflicts", h.Timetable.Conflicts)
				timetable.GET("/stats", h.Timetable.Stats)
				timetable.PUT("/entries/:id", middleware.RoleAuth("admin"), h.Timetable.UpdateEntry)
				timetable.DELETE("/entries/:id", middleware.RoleAuth("admin"), h.Timetable.DeleteEntry)
				timetable.PUT("/conflicts/:id/resolve", middleware.RoleAuth("admin"), h.Timetable.ResolveConflict)
				timetable.GET("/export", h.Export.ExportTimetable)
			}
		}
	}

	return r
}
