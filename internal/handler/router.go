package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"taskhive/projecthub/internal/config"
	"taskhive/projecthub/internal/handler/middleware"
	jwtpkg "taskhive/projecthub/pkg/jwt"
)

func SetupRouter(
	cfg *config.Config,
	logger *zap.Logger,
	jwtManager *jwtpkg.Manager,
	projectHandler *ProjectHandler,
	membershipHandler *MembershipHandler,
	inviteHandler *InviteHandler,
	taskHandler *TaskHandler,
	noteHandler *NoteHandler,
	userHandler *UserHandler,
) *gin.Engine {
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))

	// Health check
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Public invite preview: the only unauthenticated application route.
	r.GET("/api/v1/invites/:link_id", inviteHandler.Fetch)

	protected := r.Group("/api/v1")
	protected.Use(middleware.JWTAuth(jwtManager))
	{
		protected.GET("/me", userHandler.Me)
		protected.PATCH("/me", userHandler.UpdateName)
		protected.DELETE("/me", userHandler.Delete)

		protected.POST("/projects", projectHandler.Create)
		protected.GET("/projects", projectHandler.ListMine)
		protected.GET("/projects/:project_id", projectHandler.Get)
		protected.PATCH("/projects/:project_id", projectHandler.Update)
		protected.DELETE("/projects/:project_id", projectHandler.Delete)

		protected.GET("/projects/:project_id/members", membershipHandler.List)
		protected.PATCH("/projects/:project_id/members/:membership_id", membershipHandler.ChangeRole)
		protected.DELETE("/projects/:project_id/members/:membership_id", membershipHandler.Remove)

		protected.POST("/projects/:project_id/invites", inviteHandler.Create)
		protected.GET("/projects/:project_id/invites", inviteHandler.List)
		protected.PATCH("/invites/:link_id", inviteHandler.UpdateLimits)
		protected.DELETE("/invites/:link_id", inviteHandler.Delete)
		protected.POST("/invites/:link_id/join", inviteHandler.Join)

		protected.POST("/projects/:project_id/tasks", taskHandler.Create)
		protected.GET("/projects/:project_id/tasks", taskHandler.List)
		protected.GET("/projects/:project_id/tasks/:task_id", taskHandler.Get)
		protected.PATCH("/projects/:project_id/tasks/:task_id", taskHandler.Update)
		protected.DELETE("/projects/:project_id/tasks/:task_id", taskHandler.Delete)
		protected.PUT("/projects/:project_id/tasks/:task_id/assignees/:user_id", taskHandler.Assign)
		protected.DELETE("/projects/:project_id/tasks/:task_id/assignees/:user_id", taskHandler.Unassign)
		protected.POST("/projects/:project_id/tasks/:task_id/stages", taskHandler.AddStage)
		protected.PATCH("/projects/:project_id/tasks/:task_id/stages/:stage_id", taskHandler.UpdateStage)
		protected.DELETE("/projects/:project_id/tasks/:task_id/stages/:stage_id", taskHandler.DeleteStage)

		protected.POST("/projects/:project_id/notes", noteHandler.Create)
		protected.GET("/projects/:project_id/notes", noteHandler.List)
		protected.DELETE("/projects/:project_id/notes/:note_id", noteHandler.Delete)
	}

	return r
}
