package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"portfolio/internal/models"
	"portfolio/internal/repository"
)

type ProjectController struct {
	repo repository.ProjectRepository
	log  zerolog.Logger
}

func NewProjectController(repo repository.ProjectRepository, log zerolog.Logger) *ProjectController {
	return &ProjectController{repo: repo, log: log.With().Str("component", "project_controller").Logger()}
}

// GetProjects godoc
// @Summary Get projects
// @Description List all projects, or fetch a single project via ?id= or ?slug=
// @Tags projects
// @Produce json
// @Param id query string false "Project ID"
// @Param slug query string false "Project slug"
// @Success 200 {object} map[string]interface{} "Projects retrieved successfully"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Router /api/projects [get]
func (pc *ProjectController) GetProjects(c *gin.Context) {
	ctx := c.Request.Context()

	if id := c.Query("id"); id != "" {
		doc, err := pc.repo.FindByID(ctx, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": doc})
		return
	}
	if slug := c.Query("slug"); slug != "" {
		doc, err := pc.repo.FindBySlug(ctx, slug)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "data": doc})
		return
	}

	docs, err := pc.repo.FindAll(ctx)
	if err != nil {
		pc.log.Error().Err(err).Msg("failed to list projects")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": docs})
}

// CreateProject godoc
// @Summary Create a project
// @Tags projects
// @Accept json
// @Produce json
// @Param project body models.ProjectInput true "Project data"
// @Success 201 {object} map[string]interface{} "Project created"
// @Failure 400 {object} map[string]interface{} "Missing required fields"
// @Failure 409 {object} map[string]interface{} "Slug already exists"
// @Router /api/projects [post]
func (pc *ProjectController) CreateProject(c *gin.Context) {
	var in models.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	project, err := pc.repo.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": project})
}

// UpdateProject godoc
// @Summary Update a project
// @Tags projects
// @Accept json
// @Produce json
// @Param id path string true "Project ID"
// @Param project body models.ProjectInput true "Fields to update"
// @Success 200 {object} map[string]interface{} "Project updated"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Failure 409 {object} map[string]interface{} "Slug already exists"
// @Router /api/projects/{id} [put]
func (pc *ProjectController) UpdateProject(c *gin.Context) {
	var in models.ProjectInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	project, err := pc.repo.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": project})
}

// DeleteProject godoc
// @Summary Delete a project
// @Tags projects
// @Produce json
// @Param id path string true "Project ID"
// @Success 200 {object} map[string]interface{} "Project deleted"
// @Failure 404 {object} map[string]interface{} "Project not found"
// @Router /api/projects/{id} [delete]
func (pc *ProjectController) DeleteProject(c *gin.Context) {
	if err := pc.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": nil})
}
