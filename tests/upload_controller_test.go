package tests

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portfolio/internal/controllers"
)

func multipartBody(t *testing.T, field, filename, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return &buf, w.FormDataContentType()
}

func TestUploadFile(t *testing.T) {
	dir := t.TempDir()
	controller := controllers.NewUploadController(dir, zerolog.Nop())

	router := setupTestRouter()
	router.POST("/api/upload", controller.UploadFile)

	body, contentType := multipartBody(t, "file", "../weird name!.png", "fake image bytes")
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	envelope := decodeEnvelope(t, w)
	url := envelope["data"].(map[string]interface{})["url"].(string)

	// Path traversal and shell-unfriendly characters never reach the disk.
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.NotContains(t, url, "..")
	assert.NotContains(t, url, " ")
	assert.NotContains(t, url, "!")

	stored := filepath.Join(dir, strings.TrimPrefix(url, "/uploads/"))
	data, err := os.ReadFile(stored)
	require.NoError(t, err)
	assert.Equal(t, "fake image bytes", string(data))
}

func TestUploadWithoutFile(t *testing.T) {
	controller := controllers.NewUploadController(t.TempDir(), zerolog.Nop())

	router := setupTestRouter()
	router.POST("/api/upload", controller.UploadFile)

	req := httptest.NewRequest(http.MethodPost, "/api/upload", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.Equal(t, "file is required", envelope["error"])
}
