package tests

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"portfolio/database"
	"portfolio/internal/config"
	"portfolio/internal/controllers"
)

func TestHealthDegradesWithoutDatabase(t *testing.T) {
	// A manager with no URI fails Acquire immediately, without dialing.
	manager := database.NewManager(config.DatabaseConfig{}, zerolog.Nop())
	controller := controllers.NewHealthController(manager)

	router := setupTestRouter()
	router.GET("/health", controller.Health)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, "database unreachable", envelope["error"])
}
