package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"portfolio/internal/models"
	"portfolio/internal/repository"
)

type BlogController struct {
	repo repository.BlogRepository
	log  zerolog.Logger
}

func NewBlogController(repo repository.BlogRepository, log zerolog.Logger) *BlogController {
	return &BlogController{repo: repo, log: log.With().Str("component", "blog_controller").Logger()}
}

// GetBlog godoc
// @Summary Get blog posts
// @Description List all posts, or fetch a single post via ?id= or ?slug=
// @Tags blog
// @Produce json
// @Param id query string false "Post ID"
// @Param slug query string false "Post slug"
// @Success 200 {object} map[string]interface{} "Posts retrieved successfully"
// @Failure 404 {object} map[string]interface{} "Post not found"
// @Failure 500 {object} map[string]interface{} "Failed to retrieve posts"
// @Router /api/blog [get]
func (bc *BlogController) GetBlog(c *gin.Context) {
	ctx := c.Request.Context()

	if id := c.Query("id"); id != "" {
		doc, err := bc.repo.FindByID(ctx, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": doc})
		return
	}
	if slug := c.Query("slug"); slug != "" {
		doc, err := bc.repo.FindBySlug(ctx, slug)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": doc})
		return
	}

	docs, err := bc.repo.FindAll(ctx)
	if err != nil {
		bc.log.Error().Err(err).Msg("failed to list blog posts")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": docs})
}

// CreateBlog godoc
// @Summary Create a blog post
// @Tags blog
// @Accept json
// @Produce json
// @Param post body models.ArticleInput true "Post data"
// @Success 201 {object} map[string]interface{} "Post created"
// @Failure 400 {object} map[string]interface{} "Missing required fields"
// @Failure 409 {object} map[string]interface{} "Slug already exists"
// @Router /api/blog [post]
func (bc *BlogController) CreateBlog(c *gin.Context) {
	var in models.ArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	article, err := bc.repo.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": article})
}

// UpdateBlog godoc
// @Summary Update a blog post
// @Tags blog
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param post body models.ArticleInput true "Fields to update"
// @Success 200 {object} map[string]interface{} "Post updated"
// @Failure 404 {object} map[string]interface{} "Post not found"
// @Failure 409 {object} map[string]interface{} "Slug already exists"
// @Router /api/blog/{id} [put]
func (bc *BlogController) UpdateBlog(c *gin.Context) {
	var in models.ArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	article, err := bc.repo.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": article})
}

// DeleteBlog godoc
// @Summary Delete a blog post
// @Tags blog
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{} "Post deleted"
// @Failure 404 {object} map[string]interface{} "Post not found"
// @Router /api/blog/{id} [delete]
func (bc *BlogController) DeleteBlog(c *gin.Context) {
	if err := bc.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": nil})
}
