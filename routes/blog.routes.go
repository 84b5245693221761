package routes

import (
	"github.com/gin-gonic/gin"

	"portfolio/internal/controllers"
)

func RegisterBlogRoutes(router *gin.Engine, blogController *controllers.BlogController, adminAuth gin.HandlerFunc) {
	blogRoutes := router.Group("/api/blog")
	{
		blogRoutes.GET("", blogController.GetBlog)
		blogRoutes.POST("", adminAuth, blogController.CreateBlog)
		blogRoutes.PUT("/:id", adminAuth, blogController.UpdateBlog)
		blogRoutes.DELETE("/:id", adminAuth, blogController.DeleteBlog)
	}
}
