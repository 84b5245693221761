package tests

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"portfolio/internal/controllers"
	"portfolio/internal/filestore"
	"portfolio/internal/repository"
	"portfolio/tests/mocks"
)

func setupContentControllerWithMock() (*controllers.ContentController, *mocks.MockContentRepository) {
	mockRepo := new(mocks.MockContentRepository)
	controller := controllers.NewContentController(mockRepo, zerolog.Nop())
	return controller, mockRepo
}

func TestGetContent(t *testing.T) {
	tests := []struct {
		name           string
		collection     string
		setupMock      func(*mocks.MockContentRepository)
		expectedStatus int
	}{
		{
			name:       "known collection",
			collection: "tools",
			setupMock: func(m *mocks.MockContentRepository) {
				m.On("Exists", "tools").Return(true)
				m.On("Get", "tools").Return(map[string]interface{}{"tools": []interface{}{}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:       "unknown collection",
			collection: "secrets",
			setupMock: func(m *mocks.MockContentRepository) {
				m.On("Exists", "secrets").Return(false)
			},
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, mockRepo := setupContentControllerWithMock()
			tt.setupMock(mockRepo)

			router := setupTestRouter()
			router.GET("/api/content/:name", controller.GetContent)

			req := httptest.NewRequest(http.MethodGet, "/api/content/"+tt.collection, nil)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockRepo.AssertExpectations(t)
		})
	}
}

func TestPutContent(t *testing.T) {
	tests := []struct {
		name           string
		collection     string
		body           string
		setupMock      func(*mocks.MockContentRepository)
		expectedStatus int
	}{
		{
			name:       "replace document",
			collection: "footer",
			body:       `{"text":"hello"}`,
			setupMock: func(m *mocks.MockContentRepository) {
				m.On("Exists", "footer").Return(true)
				m.On("Put", "footer", map[string]interface{}{"text": "hello"}).Return(nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:       "unknown collection",
			collection: "secrets",
			body:       `{"x":1}`,
			setupMock: func(m *mocks.MockContentRepository) {
				m.On("Exists", "secrets").Return(false)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:       "null document rejected",
			collection: "footer",
			body:       `null`,
			setupMock: func(m *mocks.MockContentRepository) {
				m.On("Exists", "footer").Return(true)
			},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:       "malformed body",
			collection: "footer",
			body:       `{not json`,
			setupMock: func(m *mocks.MockContentRepository) {
				m.On("Exists", "footer").Return(true)
			},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller, mockRepo := setupContentControllerWithMock()
			tt.setupMock(mockRepo)

			router := setupTestRouter()
			router.PUT("/api/content/:name", controller.PutContent)

			req := httptest.NewRequest(http.MethodPut, "/api/content/"+tt.collection, bytes.NewReader([]byte(tt.body)))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			mockRepo.AssertExpectations(t)
		})
	}
}

// End-to-end against a real on-disk store: write a collection through the
// handler, read it back through the handler.
func TestContentRoundTripOnDisk(t *testing.T) {
	store := filestore.New(t.TempDir(), zerolog.Nop())
	repo := repository.NewContentRepository(store, zerolog.Nop())
	controller := controllers.NewContentController(repo, zerolog.Nop())

	router := setupTestRouter()
	router.GET("/api/content/:name", controller.GetContent)
	router.PUT("/api/content/:name", controller.PutContent)

	put := httptest.NewRequest(http.MethodPut, "/api/content/social-links",
		bytes.NewReader([]byte(`[{"name":"GitHub","url":"https://github.com/alex"}]`)))
	put.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, put)
	assert.Equal(t, http.StatusOK, w.Code)

	get := httptest.NewRequest(http.MethodGet, "/api/content/social-links", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, get)
	assert.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	links := envelope["data"].([]interface{})
	first := links[0].(map[string]interface{})
	assert.Equal(t, "GitHub", first["name"])
}
