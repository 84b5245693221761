package routes

import (
	"github.com/gin-gonic/gin"

	"portfolio/internal/controllers"
)

func RegisterProjectRoutes(router *gin.Engine, projectController *controllers.ProjectController, adminAuth gin.HandlerFunc) {
	projectRoutes := router.Group("/api/projects")
	{
		projectRoutes.GET("", projectController.GetProjects)
		projectRoutes.POST("", adminAuth, projectController.CreateProject)
		projectRoutes.PUT("/:id", adminAuth, projectController.UpdateProject)
		projectRoutes.DELETE("/:id", adminAuth, projectController.DeleteProject)
	}
}
