package server_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskmanager/internal/middleware"
	"taskmanager/internal/model"
	"taskmanager/internal/repository"
	"taskmanager/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepository struct {
	tasks   []model.Task
	deleted []uint64
	pingErr error
}

func (r *stubRepository) List(context.Context) ([]model.Task, error) {
	return r.tasks, nil
}

func (r *stubRepository) GetByID(_ context.Context, id uint64) (*model.Task, error) {
	for _, t := range r.tasks {
		if t.ID == id {
			return &t, nil
		}
	}
	return nil, repository.ErrTaskNotFound
}

func (r *stubRepository) Create(context.Context, *model.Task) error { return nil }

func (r *stubRepository) Update(context.Context, *model.Task) error { return nil }

func (r *stubRepository) Delete(_ context.Context, id uint64) error {
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *stubRepository) Ping(context.Context) error { return r.pingErr }

func setupEngine(t *testing.T, repo *stubRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine, err := server.NewEngine(repo, prometheus.NewRegistry(), zerolog.Nop())
	require.NoError(t, err)
	return engine
}

func do(engine *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, nil)
	resp := httptest.NewRecorder()
	engine.ServeHTTP(resp, req)
	return resp
}

func TestNewEngine_Routes(t *testing.T) {
	repo := &stubRepository{tasks: []model.Task{{ID: 1, Title: "One", Priority: model.PriorityHigh, Status: model.StatusPending}}}
	engine := setupEngine(t, repo)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{"GET", "/", http.StatusOK},
		{"GET", "/editar/1", http.StatusOK},
		{"GET", "/editar/2", http.StatusNotFound},
		{"GET", "/eliminar/1", http.StatusOK},
		{"GET", "/healthz", http.StatusOK},
		{"GET", "/metrics", http.StatusOK},
		{"GET", "/crear", http.StatusNotFound},
		{"GET", "/actualizar/1", http.StatusNotFound},
	}

	for _, tt := range tests {
		resp := do(engine, tt.method, tt.path)
		assert.Equal(t, tt.status, resp.Code, "%s %s", tt.method, tt.path)
		assert.NotEmpty(t, resp.Header().Get(middleware.RequestIDHeader), "%s %s", tt.method, tt.path)
	}
}

func TestNewEngine_DeleteRequiresPost(t *testing.T) {
	repo := &stubRepository{tasks: []model.Task{{ID: 1, Title: "One"}}}
	engine := setupEngine(t, repo)

	resp := do(engine, "GET", "/eliminar/1")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Empty(t, repo.deleted)

	resp = do(engine, "POST", "/eliminar/1")
	assert.Equal(t, http.StatusFound, resp.Code)
	assert.Equal(t, []uint64{1}, repo.deleted)
}

func TestNewEngine_MetricsExposeRequestCounts(t *testing.T) {
	engine := setupEngine(t, &stubRepository{})

	do(engine, "GET", "/")
	resp := do(engine, "GET", "/metrics")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `taskmanager_http_requests_total{method="GET",route="/",status="200"} 1`)
}

func TestNewEngine_HealthReportsDatabaseDown(t *testing.T) {
	engine := setupEngine(t, &stubRepository{pingErr: repository.ErrUnavailable})

	resp := do(engine, "GET", "/healthz")

	assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
}
