package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/kube-rca/taskboard/internal/logging"
	"github.com/kube-rca/taskboard/internal/model"
	"github.com/kube-rca/taskboard/internal/service"
)

// taskService - 서비스 인터페이스. owner는 인증된 subject
type taskService interface {
	CreateTask(ctx context.Context, owner string, req model.CreateTaskRequest) (*model.Task, error)
	ListTasks(ctx context.Context, owner string) ([]model.Task, error)
	GetTask(ctx context.Context, owner, taskID string) (*model.Task, error)
	UpdateTask(ctx context.Context, owner, taskID string, req model.UpdateTaskRequest) error
	DeleteTask(ctx context.Context, owner, taskID string) error
}

// TaskHandler - 태스크 CRUD 핸들러. 모든 라우트는 AuthMiddleware 뒤에 있다
type TaskHandler struct {
	svc taskService
	log logging.Logger
}

func NewTaskHandler(svc taskService, log logging.Logger) *TaskHandler {
	return &TaskHandler{svc: svc, log: log}
}

// CreateTask godoc
// @Summary Create a task
// @Tags tasks
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.CreateTaskRequest true "Task"
// @Success 200 {object} model.Task
// @Failure 400,401,500 {string} string
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}
	var req model.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, msgInvalidBody)
		return
	}

	task, err := h.svc.CreateTask(c.Request.Context(), owner, req)
	if err != nil {
		h.writeTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// ListTasks godoc
// @Summary List the caller's tasks
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Task
// @Failure 401,500 {string} string
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}

	tasks, err := h.svc.ListTasks(c.Request.Context(), owner)
	if err != nil {
		h.writeTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// GetTask godoc
// @Summary Get a task
// @Tags tasks
// @Produce json
// @Security BearerAuth
// @Param task_id path string true "Task ID"
// @Success 200 {object} model.Task
// @Failure 400,401,404,500 {string} string
// @Router /tasks/{task_id} [get]
func (h *TaskHandler) GetTask(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}

	task, err := h.svc.GetTask(c.Request.Context(), owner, c.Param("task_id"))
	if err != nil {
		h.writeTaskError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// UpdateTask godoc
// @Summary Update a task
// @Description Only the fields present in the body are changed.
// @Tags tasks
// @Accept json
// @Produce plain
// @Security BearerAuth
// @Param task_id path string true "Task ID"
// @Param request body model.UpdateTaskRequest true "Fields to change"
// @Success 200 {string} string "Task updated successfully"
// @Failure 400,401,404,500 {string} string
// @Router /tasks/{task_id} [put]
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}
	var req model.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.String(http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := h.svc.UpdateTask(c.Request.Context(), owner, c.Param("task_id"), req); err != nil {
		h.writeTaskError(c, err)
		return
	}
	c.String(http.StatusOK, "Task updated successfully")
}

// DeleteTask godoc
// @Summary Delete a task
// @Tags tasks
// @Produce plain
// @Security BearerAuth
// @Param task_id path string true "Task ID"
// @Success 200 {string} string "Task deleted successfully"
// @Failure 400,401,404,500 {string} string
// @Router /tasks/{task_id} [delete]
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	owner, ok := h.owner(c)
	if !ok {
		return
	}

	if err := h.svc.DeleteTask(c.Request.Context(), owner, c.Param("task_id")); err != nil {
		h.writeTaskError(c, err)
		return
	}
	c.String(http.StatusOK, "Task deleted successfully")
}

func (h *TaskHandler) owner(c *gin.Context) (string, bool) {
	subject, ok := Subject(c)
	if !ok {
		c.String(http.StatusUnauthorized, msgAuthHeaderInvalid)
	}
	return subject, ok
}

func (h *TaskHandler) writeTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrTitleRequired):
		c.String(http.StatusBadRequest, "Title is required")
	case errors.Is(err, service.ErrInvalidStatus):
		c.String(http.StatusBadRequest, "Invalid task status")
	case errors.Is(err, service.ErrInvalidTaskID):
		c.String(http.StatusBadRequest, "Invalid task ID")
	case errors.Is(err, service.ErrNotFound):
		c.String(http.StatusNotFound, "Task not found")
	case errors.Is(err, service.ErrUnauthorized):
		c.String(http.StatusUnauthorized, msgInvalidToken)
	default:
		h.log.Error(c.Request.Context(), "task request failed", "path", c.Request.URL.Path, "error", err)
		c.String(http.StatusInternalServerError, msgInternalError)
	}
}
