package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	_ "projecthub/docs"
	"projecthub/internal/auth"
	"projecthub/internal/config"
	"projecthub/internal/middleware"
	"projecthub/internal/server"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupRouter(t *testing.T) (*gin.Engine, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  "sqlmock_db_0",
		DriverName:           "postgres",
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	tokens, err := auth.NewTokenService(auth.TokenConfig{Secret: []byte("test-secret")})
	require.NoError(t, err)

	return server.NewRouter(&config.Config{GinMode: gin.TestMode}, gormDB, tokens), mock
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestRouter_Health(t *testing.T) {
	router, _ := setupRouter(t)

	resp := get(router, "/health")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status":"ok"}`, resp.Body.String())
	assert.NotEmpty(t, resp.Header().Get(middleware.RequestIDHeader))
}

func TestRouter_GatedRoutesRequireToken(t *testing.T) {
	router, mock := setupRouter(t)

	for _, path := range []string{"/auth_data", "/project", "/task"} {
		resp := get(router, path)

		var body struct {
			Code     int    `json:"code"`
			Messages string `json:"messages"`
		}
		require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body), path)
		assert.Equal(t, http.StatusOK, resp.Code, path)
		assert.Equal(t, 500, body.Code, path)
		assert.Equal(t, "Authentication credentials were not provided.", body.Messages, path)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRouter_Metrics(t *testing.T) {
	router, _ := setupRouter(t)
	get(router, "/health")

	resp := get(router, "/metrics")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "projecthub_http_requests_total")
}

func TestRouter_SwaggerDoc(t *testing.T) {
	router, _ := setupRouter(t)

	resp := get(router, "/swagger/doc.json")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"/project/{id}"`)
}
