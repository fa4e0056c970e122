package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/damacus/media-shelf/internal/config"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/mock"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Minio.Endpoint = "localhost:9000"
	cfg.Minio.AccessKey = "admin"
	cfg.Minio.SecretKey = "password"
	return cfg
}

// newTestServer builds the real server over a mock MinIO client
func newTestServer(t *testing.T, cfg *config.Config) (*echo.Echo, *MockMinioClient) {
	t.Helper()
	client := new(MockMinioClient)
	factory := new(MockMinioFactory)
	factory.On("NewClient", mock.Anything).Return(client, nil)
	factory.On("NewAdminClient", mock.Anything).Return(client, nil)
	return newServer(cfg, factory), client
}

func get(e *echo.Echo, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func postStatus(e *echo.Echo, target string) int {
	req := httptest.NewRequest(http.MethodPost, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec.Code
}
