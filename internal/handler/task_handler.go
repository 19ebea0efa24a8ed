package handler

import (
	"errors"
	"log"
	"time"

	"projecthub/internal/middleware"
	"projecthub/internal/model"
	"projecthub/internal/repository"
	"projecthub/internal/response"

	"github.com/gin-gonic/gin"
)

type TaskHandler struct {
	tasks    repository.TaskRepositoryInterface
	projects repository.ProjectRepositoryInterface
	users    repository.UserRepositoryInterface
}

func NewTaskHandler(
	tasks repository.TaskRepositoryInterface,
	projects repository.ProjectRepositoryInterface,
	users repository.UserRepositoryInterface,
) *TaskHandler {
	setupValidator()
	return &TaskHandler{
		tasks:    tasks,
		projects: projects,
		users:    users,
	}
}

// TaskRequest is the body of task create and update
type TaskRequest struct {
	Title            string  `json:"title" binding:"required,max=100"`
	Description      *string `json:"description" binding:"omitempty,max=5000"`
	DueDate          string  `json:"due_date" binding:"required"`
	Status           string  `json:"status" binding:"required,oneof=todo in_progress done"`
	Priority         string  `json:"priority" binding:"required,oneof=low medium high"`
	AssignedToUserID uint    `json:"assigned_to_user_id" binding:"required"`
	ProjectID        uint    `json:"project_id" binding:"required"`
}

type TaskProjectResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type TaskUserResponse struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

type TaskResponse struct {
	ID             uint                `json:"id"`
	Project        TaskProjectResponse `json:"project"`
	AssignedToUser *TaskUserResponse   `json:"assigned_to_user"`
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Status         string              `json:"status"`
	Priority       string              `json:"priority"`
	DueDate        string              `json:"due_date"`
}

func newTaskResponse(t model.Task) TaskResponse {
	resp := TaskResponse{
		ID:          t.ID,
		Project:     TaskProjectResponse{ID: t.ProjectID, Name: t.Project.Name},
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     formatTime(t.DueDate),
	}
	if t.AssignedToUser != nil {
		resp.AssignedToUser = &TaskUserResponse{
			ID:       t.AssignedToUser.ID,
			FullName: t.AssignedToUser.FullName,
			Email:    t.AssignedToUser.Email,
		}
	}
	return resp
}

// List returns one page of tasks.
// @Summary  List tasks
// @Tags     Tasks
// @Produce  json
// @Security BearerAuth
// @Param    page     query int false "Page number"
// @Param    per_page query int false "Page size"
// @Success  200 {object} response.Envelope
// @Router   /task [get]
func (h *TaskHandler) List(c *gin.Context) {
	h.respondWithList(c, "")
}

// Create creates a task inside an existing project.
// @Summary  Create task
// @Tags     Tasks
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body TaskRequest true "Task"
// @Success  200 {object} response.Envelope
// @Router   /task [post]
func (h *TaskHandler) Create(c *gin.Context) {
	var req TaskRequest
	dueDate, ok := h.validate(c, &req)
	if !ok {
		return
	}

	task := &model.Task{}
	applyTaskRequest(task, &req, dueDate)

	if err := h.tasks.Create(c.Request.Context(), task); err != nil {
		h.fail(c, "Task creating failure.", err)
		return
	}

	h.respondWithList(c, "Task created successfully.")
}

// Update replaces the fields of an existing task.
// @Summary  Update task
// @Tags     Tasks
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path int         true "Task ID"
// @Param    body body TaskRequest true "Task"
// @Success  200 {object} response.Envelope
// @Router   /task/{id} [put]
func (h *TaskHandler) Update(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.NotFound(c, "Task not found.")
		return
	}

	task, err := h.tasks.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			response.NotFound(c, "Task not found.")
		} else {
			h.fail(c, "Failed to retrieve task.", err)
		}
		return
	}

	var req TaskRequest
	dueDate, ok := h.validate(c, &req)
	if !ok {
		return
	}

	applyTaskRequest(task, &req, dueDate)

	if err := h.tasks.Update(c.Request.Context(), task); err != nil {
		h.fail(c, "Task updating failure.", err)
		return
	}

	h.respondWithList(c, "Task updated successfully.")
}

// Delete removes a task.
// @Summary  Delete task
// @Tags     Tasks
// @Produce  json
// @Security BearerAuth
// @Param    id path int true "Task ID"
// @Success  200 {object} response.Envelope
// @Router   /task/{id} [delete]
func (h *TaskHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.NotFound(c, "Task not found.")
		return
	}

	if err := h.tasks.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			response.NotFound(c, "Task not found.")
			return
		}
		h.fail(c, "Task deleting failure.", err)
		return
	}

	h.respondWithList(c, "Task deleted successfully.")
}

func applyTaskRequest(task *model.Task, req *TaskRequest, dueDate time.Time) {
	task.Title = req.Title
	task.DueDate = dueDate
	task.Status = req.Status
	task.Priority = req.Priority
	task.ProjectID = req.ProjectID
	assignee := req.AssignedToUserID
	task.AssignedToUserID = &assignee
	if req.Description != nil {
		task.Description = *req.Description
	}
}

// validate binds req, checks the due date and that the referenced project and
// assignee exist. It answers the request itself when anything is wrong.
func (h *TaskHandler) validate(c *gin.Context, req *TaskRequest) (time.Time, bool) {
	errs, fatal := bindJSON(c, req)
	if fatal {
		response.Invalid(c, errs)
		return time.Time{}, false
	}

	dueDate := validateDueDate(errs, req.DueDate, time.Now())

	ctx := c.Request.Context()
	if _, bad := errs["assigned_to_user_id"]; !bad {
		exists, err := h.users.Exists(ctx, req.AssignedToUserID)
		if err != nil {
			h.fail(c, "Task validation failure.", err)
			return time.Time{}, false
		}
		if !exists {
			errs.Add("assigned_to_user_id", "Assigned user does not exist.")
		}
	}
	if _, bad := errs["project_id"]; !bad {
		exists, err := h.projects.Exists(ctx, req.ProjectID)
		if err != nil {
			h.fail(c, "Task validation failure.", err)
			return time.Time{}, false
		}
		if !exists {
			errs.Add("project_id", "Project does not exist.")
		}
	}

	if len(errs) > 0 {
		response.Invalid(c, errs)
		return time.Time{}, false
	}
	return dueDate, true
}

func (h *TaskHandler) respondWithList(c *gin.Context, message string) {
	page, err := listPage(c, h.tasks.Count, h.tasks.List, newTaskResponse)
	if err != nil {
		h.fail(c, "Failed to retrieve tasks.", err)
		return
	}
	response.OK(c, page, message)
}

func (h *TaskHandler) fail(c *gin.Context, msg string, err error) {
	log.Printf("❌ [%s] %s %v", middleware.RequestIDFrom(c), msg, err)
	response.Fail(c, response.CodeFailure, msg)
}
