package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

type UploadController struct {
	uploadDir string
	log       zerolog.Logger
}

func NewUploadController(uploadDir string, log zerolog.Logger) *UploadController {
	return &UploadController{
		uploadDir: uploadDir,
		log:       log.With().Str("component", "upload_controller").Logger(),
	}
}

// sanitizeFilename strips path components and unsafe characters from an
// uploaded filename.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = unsafeFilenameChars.ReplaceAllString(name, "-")
	name = strings.Trim(name, "-.")
	if name == "" {
		name = "upload"
	}
	return name
}

// UploadFile godoc
// @Summary Upload an asset
// @Description Stores a binary upload under a timestamp-prefixed sanitized name and returns its relative URL
// @Tags upload
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File to upload"
// @Success 201 {object} map[string]interface{} "File stored"
// @Failure 400 {object} map[string]interface{} "No file supplied"
// @Router /api/upload [post]
func (uc *UploadController) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "file is required"})
		return
	}

	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitizeFilename(file.Filename))
	dest := filepath.Join(uc.uploadDir, name)

	if err := c.SaveUploadedFile(file, dest); err != nil {
		uc.log.Error().Err(err).Str("file", name).Msg("upload write failed")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "failed to store file"})
		return
	}

	uc.log.Info().Str("file", name).Int64("size", file.Size).Msg("asset uploaded")
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    gin.H{"url": "/uploads/" + name},
	})
}
