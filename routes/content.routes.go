package routes

import (
	"github.com/gin-gonic/gin"

	"portfolio/internal/controllers"
)

func RegisterContentRoutes(router *gin.Engine, contentController *controllers.ContentController, adminAuth gin.HandlerFunc) {
	contentRoutes := router.Group("/api/content")
	{
		contentRoutes.GET("/:name", contentController.GetContent)
		contentRoutes.PUT("/:name", adminAuth, contentController.PutContent)
	}
}
