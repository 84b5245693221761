package routes

import (
	"github.com/gin-gonic/gin"

	"portfolio/internal/controllers"
)

func RegisterAdminRoutes(router *gin.Engine, adminController *controllers.AdminController) {
	router.POST("/api/admin/login", adminController.Login)
}
