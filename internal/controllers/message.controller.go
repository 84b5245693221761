package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"portfolio/internal/models"
	"portfolio/internal/repository"
)

type MessageController struct {
	repo repository.MessageRepository
	log  zerolog.Logger
}

func NewMessageController(repo repository.MessageRepository, log zerolog.Logger) *MessageController {
	return &MessageController{repo: repo, log: log.With().Str("component", "message_controller").Logger()}
}

// ListMessages godoc
// @Summary List contact messages
// @Tags messages
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} map[string]interface{} "Messages retrieved successfully"
// @Router /api/messages [get]
func (mc *MessageController) ListMessages(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := mc.repo.List(page, limit)
	if err != nil {
		mc.log.Error().Err(err).Msg("failed to list messages")
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": result})
}

// CreateMessage godoc
// @Summary Submit a contact message
// @Tags messages
// @Accept json
// @Produce json
// @Param message body models.MessageInput true "Message data"
// @Success 201 {object} map[string]interface{} "Message stored"
// @Failure 400 {object} map[string]interface{} "Missing required fields"
// @Router /api/messages [post]
func (mc *MessageController) CreateMessage(c *gin.Context) {
	var in models.MessageInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	msg, err := mc.repo.Create(in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "data": msg})
}

// PatchMessage godoc
// @Summary Update a message's read state
// @Tags messages
// @Accept json
// @Produce json
// @Param id path string true "Message ID"
// @Param patch body repository.MessagePatch true "Fields to update"
// @Success 200 {object} map[string]interface{} "Message updated"
// @Failure 404 {object} map[string]interface{} "Message not found"
// @Router /api/messages/{id} [patch]
func (mc *MessageController) PatchMessage(c *gin.Context) {
	var patch repository.MessagePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	msg, err := mc.repo.Patch(c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": msg})
}
