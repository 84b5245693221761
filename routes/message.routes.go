package routes

import (
	"github.com/gin-gonic/gin"

	"portfolio/internal/controllers"
)

func RegisterMessageRoutes(router *gin.Engine, messageController *controllers.MessageController, adminAuth gin.HandlerFunc) {
	messageRoutes := router.Group("/api/messages")
	{
		// Submission is the public contact form; reading and patching are admin-only.
		messageRoutes.POST("", messageController.CreateMessage)
		messageRoutes.GET("", adminAuth, messageController.ListMessages)
		messageRoutes.PATCH("/:id", adminAuth, messageController.PatchMessage)
	}
}
