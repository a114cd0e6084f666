package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"taskmanager/internal/repository"
	"taskmanager/internal/view"
)

type TaskHandler struct {
	taskRepo repository.TaskRepositoryInterface
}

func NewTaskHandler(taskRepo repository.TaskRepositoryInterface) *TaskHandler {
	return &TaskHandler{taskRepo: taskRepo}
}

// parseTaskID reads the :id path parameter. A malformed id cannot name a
// task, so it is answered like a missing one.
func parseTaskID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		renderError(c, http.StatusNotFound, msgNotFound)
		return 0, false
	}
	return id, true
}

// Index renders the task list together with the create form.
func (h *TaskHandler) Index(c *gin.Context) {
	tasks, err := h.taskRepo.List(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.HTML(http.StatusOK, view.IndexPageName, view.NewIndexPage(tasks))
}

func (h *TaskHandler) Create(c *gin.Context) {
	var req TaskRequest
	if err := c.ShouldBind(&req); err != nil {
		h.rejectCreate(c, req, err)
		return
	}

	task, err := req.toTask(0)
	if err != nil {
		h.rejectCreate(c, req, err)
		return
	}

	if err := h.taskRepo.Create(c.Request.Context(), task); err != nil {
		abortWithError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// rejectCreate shows the list page again with the submitted values and
// the validation messages.
func (h *TaskHandler) rejectCreate(c *gin.Context, req TaskRequest, err error) {
	tasks, listErr := h.taskRepo.List(c.Request.Context())
	if listErr != nil {
		abortWithError(c, listErr)
		return
	}

	page := view.NewIndexPage(tasks).WithRejectedForm(req.form(), validationMessages(err))
	c.HTML(http.StatusBadRequest, view.IndexPageName, page)
}

// Edit renders the edit form pre-filled with the stored values.
func (h *TaskHandler) Edit(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.HTML(http.StatusOK, view.EditPageName, view.NewEditPage(*task))
}

// Update replaces all fields of an existing task.
func (h *TaskHandler) Update(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	var req TaskRequest
	if err := c.ShouldBind(&req); err != nil {
		h.rejectUpdate(c, id, req, err)
		return
	}

	task, err := req.toTask(id)
	if err != nil {
		h.rejectUpdate(c, id, req, err)
		return
	}

	if err := h.taskRepo.Update(c.Request.Context(), task); err != nil {
		abortWithError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (h *TaskHandler) rejectUpdate(c *gin.Context, id uint64, req TaskRequest, err error) {
	task, getErr := h.taskRepo.GetByID(c.Request.Context(), id)
	if getErr != nil {
		abortWithError(c, getErr)
		return
	}

	page := view.NewEditPage(*task).WithRejectedForm(req.form(), validationMessages(err))
	c.HTML(http.StatusBadRequest, view.EditPageName, page)
}

// ConfirmDelete asks before deleting. It never mutates anything, so a
// prefetching client following the link is harmless.
func (h *TaskHandler) ConfirmDelete(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	task, err := h.taskRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.HTML(http.StatusOK, view.DeletePageName, view.NewDeletePage(*task))
}

func (h *TaskHandler) Delete(c *gin.Context) {
	id, ok := parseTaskID(c)
	if !ok {
		return
	}

	if err := h.taskRepo.Delete(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}
