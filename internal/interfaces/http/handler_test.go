package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"templatebot/internal/entities"
	"templatebot/internal/infrastructure"
	"templatebot/internal/repository"
	"templatebot/internal/usecases"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := repository.NewFileProfileStore(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)
	_, err = store.IncrementGenerated(1)
	require.NoError(t, err)

	catalog := repository.NewTemplateCatalog(&entities.TemplateDefinition{Name: "Invoice"})
	admin, err := usecases.NewAdminUsecase(store, infrastructure.NewSessionTable(), catalog, "hunter2", "test-secret")
	require.NoError(t, err)

	r := gin.New()
	SetupRoutes(r, admin, NewMiddleware("test-secret"))
	return r
}

func doJSON(r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := doJSON(newTestRouter(t), http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLoginAndStats(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{"password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodPost, "/api/auth/login", "", gin.H{"password": "hunter2"})
	require.Equal(t, http.StatusOK, w.Code)
	var loginResp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loginResp))
	require.NotEmpty(t, loginResp.Token)

	w = doJSON(r, http.MethodGet, "/api/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(r, http.MethodGet, "/api/stats", loginResp.Token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats usecases.AdminStats
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 1, stats.Users)
	assert.Equal(t, 1, stats.Generated)
	assert.Equal(t, []string{"Invoice"}, stats.Templates)
}
