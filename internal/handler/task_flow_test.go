package handler_test

import (
	"context"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"
	"testing"

	"taskmanager/internal/model"
	"taskmanager/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memoryRepository keeps tasks in a map with the same not-found semantics
// as the database-backed repository.
type memoryRepository struct {
	mu     sync.Mutex
	nextID uint64
	tasks  map[uint64]model.Task
}

func newMemoryRepository() *memoryRepository {
	return &memoryRepository{nextID: 1, tasks: map[uint64]model.Task{}}
}

func (r *memoryRepository) List(context.Context) ([]model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	tasks := make([]model.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		tasks = append(tasks, t)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (r *memoryRepository) GetByID(_ context.Context, id uint64) (*model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return nil, repository.ErrTaskNotFound
	}
	return &t, nil
}

func (r *memoryRepository) Create(_ context.Context, task *model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	task.ID = r.nextID
	r.nextID++
	r.tasks[task.ID] = *task
	return nil
}

func (r *memoryRepository) Update(_ context.Context, task *model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[task.ID]; !ok {
		return repository.ErrTaskNotFound
	}
	r.tasks[task.ID] = *task
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id uint64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return repository.ErrTaskNotFound
	}
	delete(r.tasks, id)
	return nil
}

func (r *memoryRepository) Ping(context.Context) error {
	return nil
}

func TestTaskLifecycle(t *testing.T) {
	repo := newMemoryRepository()
	router := newRouter(t, repo)

	// Empty list renders without error
	resp := get(router, "/")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "No tasks yet.")

	// Create adds exactly one row with the submitted values
	resp = postForm(router, "/crear", validForm())
	require.Equal(t, http.StatusFound, resp.Code)

	tasks, _ := repo.List(context.Background())
	require.Len(t, tasks, 1)
	created := tasks[0]
	assert.Equal(t, "T", created.Title)
	assert.Equal(t, "D", created.Description)
	assert.Equal(t, "2024-01-01", created.DueDateString())
	assert.Equal(t, "A", created.Assignee)
	assert.Equal(t, model.PriorityHigh, created.Priority)
	assert.Equal(t, model.StatusPending, created.Status)

	got, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, *got)

	resp = get(router, "/")
	assert.Equal(t, 1, strings.Count(resp.Body.String(), `class="list-group-item"`))

	// Update replaces all six fields and keeps the id
	update := url.Values{
		"title":       {"T2"},
		"description": {"D2"},
		"due_date":    {"2024-02-02"},
		"assignee":    {"B"},
		"priority":    {"Low"},
		"status":      {"Completed"},
	}
	resp = postForm(router, "/actualizar/1", update)
	require.Equal(t, http.StatusFound, resp.Code)

	got, err = repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "T2", got.Title)
	assert.Equal(t, "D2", got.Description)
	assert.Equal(t, "2024-02-02", got.DueDateString())
	assert.Equal(t, "B", got.Assignee)
	assert.Equal(t, model.PriorityLow, got.Priority)
	assert.Equal(t, model.StatusCompleted, got.Status)

	// Updating a missing id is reported, not ignored
	resp = postForm(router, "/actualizar/2", update)
	assert.Equal(t, http.StatusNotFound, resp.Code)

	// The confirmation page leaves the row alone
	resp = get(router, "/eliminar/1")
	assert.Equal(t, http.StatusOK, resp.Code)
	tasks, _ = repo.List(context.Background())
	assert.Len(t, tasks, 1)

	// Delete removes it from later listings
	resp = postForm(router, "/eliminar/1", url.Values{})
	require.Equal(t, http.StatusFound, resp.Code)
	tasks, _ = repo.List(context.Background())
	assert.Empty(t, tasks)

	resp = postForm(router, "/eliminar/1", url.Values{})
	assert.Equal(t, http.StatusNotFound, resp.Code)

	resp = get(router, "/editar/1")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestScriptTitleIsEscapedOnEveryPage(t *testing.T) {
	repo := newMemoryRepository()
	router := newRouter(t, repo)

	form := validForm()
	form.Set("title", "<script>alert('x')</script>")
	resp := postForm(router, "/crear", form)
	require.Equal(t, http.StatusFound, resp.Code)

	for _, path := range []string{"/", "/editar/1", "/eliminar/1"} {
		resp = get(router, path)
		require.Equal(t, http.StatusOK, resp.Code, path)
		assert.NotContains(t, resp.Body.String(), "<script>", path)
		assert.Contains(t, resp.Body.String(), "&lt;script&gt;", path)
	}
}
