package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"portfolio/internal/repository"
)

type ContentController struct {
	repo repository.ContentRepository
	log  zerolog.Logger
}

func NewContentController(repo repository.ContentRepository, log zerolog.Logger) *ContentController {
	return &ContentController{repo: repo, log: log.With().Str("component", "content_controller").Logger()}
}

// GetContent godoc
// @Summary Get a simple content collection
// @Description Returns the whole JSON document for a named collection
// @Tags content
// @Produce json
// @Param name path string true "Collection name (tools, services, gallery, footer, announcements, social-links, qa, experience, todos)"
// @Success 200 {object} map[string]interface{} "Content retrieved successfully"
// @Failure 404 {object} map[string]interface{} "Unknown collection"
// @Router /api/content/{name} [get]
func (cc *ContentController) GetContent(c *gin.Context) {
	name := c.Param("name")
	if !cc.repo.Exists(name) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "unknown content collection"})
		return
	}

	doc, err := cc.repo.Get(name)
	if err != nil {
		cc.log.Error().Err(err).Str("collection", name).Msg("content read failed")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": doc})
}

// PutContent godoc
// @Summary Replace a simple content collection
// @Description Overwrites the whole JSON document for a named collection
// @Tags content
// @Accept json
// @Produce json
// @Param name path string true "Collection name"
// @Param document body object true "Replacement document"
// @Success 200 {object} map[string]interface{} "Content replaced"
// @Failure 400 {object} map[string]interface{} "Invalid document"
// @Failure 404 {object} map[string]interface{} "Unknown collection"
// @Router /api/content/{name} [put]
func (cc *ContentController) PutContent(c *gin.Context) {
	name := c.Param("name")
	if !cc.repo.Exists(name) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "unknown content collection"})
		return
	}

	var doc interface{}
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}
	if doc == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "document is required"})
		return
	}

	if err := cc.repo.Put(name, doc); err != nil {
		cc.log.Error().Err(err).Str("collection", name).Msg("content write failed")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": doc})
}
