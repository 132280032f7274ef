package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Shishlyannikovvv/project-planner/internal/domain"
)

// SetupRouter настраивает все маршруты приложения
func SetupRouter(handler *Handler, jwtSecret string, users domain.UserDirectory) *gin.Engine {
	router := gin.Default()

	api := router.Group("/api/v1")
	api.Use(IdentityMiddleware(jwtSecret, users))
	{
		// Users
		api.GET("/users", handler.ListUsers)
		api.GET("/users/me", handler.GetCurrentUser)
		api.PUT("/users/me", handler.UpdateCurrentUser)
		api.GET("/users/:id", handler.GetUser)

		// Projects
		api.POST("/projects", handler.CreateProject)
		api.GET("/projects", handler.ListProjects)
		api.GET("/projects/:id", handler.GetProject)
		api.PUT("/projects/:id", handler.UpdateProject)
		api.DELETE("/projects/:id", handler.DeleteProject)
		api.GET("/projects/:id/members", handler.ListProjectMembers)
		api.GET("/projects/:id/tasks", handler.ListProjectTasks)
		api.GET("/projects/:id/timeline", handler.GetProjectTimeline)
		api.GET("/projects/:id/workload", handler.GetProjectWorkload)

		// Tasks
		api.POST("/tasks", handler.CreateTask)
		api.GET("/tasks/assigned", handler.ListAssignedTasks)
		api.GET("/tasks/:id", handler.GetTask)
		api.PUT("/tasks/:id", handler.UpdateTask)
		api.DELETE("/tasks/:id", handler.DeleteTask)
		api.POST("/tasks/:id/assign", handler.AssignTask)
		api.GET("/tasks/:id/suggestions", handler.SuggestAssignees)
		api.GET("/tasks/:id/impact", handler.PreviewAssignmentImpact)
		api.POST("/tasks/:id/move", handler.MoveTask)
		api.GET("/tasks/:id/comments", handler.ListTaskComments)
		api.POST("/tasks/:id/comments", handler.CreateComment)

		// Comments
		api.GET("/comments/:id", handler.GetComment)
		api.PUT("/comments/:id", handler.UpdateComment)
		api.DELETE("/comments/:id", handler.DeleteComment)

		// Teams
		api.POST("/teams", handler.CreateTeam)
		api.GET("/teams", handler.ListTeams)
		api.GET("/teams/:id", handler.GetTeam)
		api.PUT("/teams/:id", handler.UpdateTeam)
		api.DELETE("/teams/:id", handler.DeleteTeam)
		api.GET("/teams/:id/members", handler.ListTeamMembers)
		api.POST("/teams/:id/members", handler.AddTeamMember)
		api.PUT("/teams/:id/members/:userId", handler.UpdateTeamMemberRole)
		api.DELETE("/teams/:id/members/:userId", handler.RemoveTeamMember)
		api.POST("/teams/:id/projects", handler.AddTeamToProject)
		api.DELETE("/teams/:id/projects/:projectId", handler.RemoveTeamFromProject)

		// Workload
		api.POST("/workload", handler.Allocate)
		api.GET("/workload/summary", handler.GetWorkloadSummary)
		api.GET("/workload/distribution", handler.GetWorkloadDistribution)
		api.GET("/workload/capacity", handler.GetCapacity)

		// Timeline
		api.GET("/timeline", handler.GetUserTimeline)
	}

	return router
}
