package routes

import (
	"github.com/gin-gonic/gin"

	"portfolio/internal/controllers"
)

func RegisterUploadRoutes(router *gin.Engine, uploadController *controllers.UploadController, adminAuth gin.HandlerFunc) {
	router.POST("/api/upload", adminAuth, uploadController.UploadFile)
}
