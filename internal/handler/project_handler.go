package handler

import (
	"errors"
	"log"
	"strconv"
	"time"

	"projecthub/internal/middleware"
	"projecthub/internal/model"
	"projecthub/internal/repository"
	"projecthub/internal/response"

	"github.com/gin-gonic/gin"
)

type ProjectHandler struct {
	projects repository.ProjectRepositoryInterface
}

func NewProjectHandler(projects repository.ProjectRepositoryInterface) *ProjectHandler {
	setupValidator()
	return &ProjectHandler{projects: projects}
}

// ProjectRequest is the body of project create and update
type ProjectRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description" binding:"omitempty,max=5000"`
	DueDate     string  `json:"due_date" binding:"required"`
}

type ProjectResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
}

func newProjectResponse(p model.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		DueDate:     formatTime(p.DueDate),
	}
}

// List returns one page of projects.
// @Summary  List projects
// @Tags     Projects
// @Produce  json
// @Security BearerAuth
// @Param    page     query int false "Page number"
// @Param    per_page query int false "Page size"
// @Success  200 {object} response.Envelope
// @Router   /project [get]
func (h *ProjectHandler) List(c *gin.Context) {
	h.respondWithList(c, "")
}

// Create creates a project owned by the authenticated user.
// @Summary  Create project
// @Tags     Projects
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    body body ProjectRequest true "Project"
// @Success  200 {object} response.Envelope
// @Router   /project [post]
func (h *ProjectHandler) Create(c *gin.Context) {
	var req ProjectRequest
	dueDate, ok := h.validate(c, &req)
	if !ok {
		return
	}

	project := &model.Project{
		Name:    req.Name,
		DueDate: dueDate,
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if user, ok := middleware.CurrentUser(c); ok {
		project.CreatorID = &user.ID
	}

	if err := h.projects.Create(c.Request.Context(), project); err != nil {
		h.fail(c, "Project creating failure.", err)
		return
	}

	h.respondWithList(c, "Project created successfully.")
}

// Update replaces the fields of an existing project.
// @Summary  Update project
// @Tags     Projects
// @Accept   json
// @Produce  json
// @Security BearerAuth
// @Param    id   path int            true "Project ID"
// @Param    body body ProjectRequest true "Project"
// @Success  200 {object} response.Envelope
// @Router   /project/{id} [put]
func (h *ProjectHandler) Update(c *gin.Context) {
	project, ok := h.load(c)
	if !ok {
		return
	}

	var req ProjectRequest
	dueDate, ok := h.validate(c, &req)
	if !ok {
		return
	}

	project.Name = req.Name
	project.DueDate = dueDate
	if req.Description != nil {
		project.Description = *req.Description
	}

	if err := h.projects.Update(c.Request.Context(), project); err != nil {
		h.fail(c, "Project updating failure.", err)
		return
	}

	h.respondWithList(c, "Project updated successfully.")
}

// Delete removes a project and its tasks.
// @Summary  Delete project
// @Tags     Projects
// @Produce  json
// @Security BearerAuth
// @Param    id path int true "Project ID"
// @Success  200 {object} response.Envelope
// @Router   /project/{id} [delete]
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		response.NotFound(c, "Project not found.")
		return
	}

	if err := h.projects.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			response.NotFound(c, "Project not found.")
			return
		}
		h.fail(c, "Project deleting failure.", err)
		return
	}

	h.respondWithList(c, "Project deleted successfully.")
}

func (h *ProjectHandler) load(c *gin.Context) (*model.Project, bool) {
	id, err := parseID(c)
	if err != nil {
		response.NotFound(c, "Project not found.")
		return nil, false
	}

	project, err := h.projects.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrProjectNotFound) {
			response.NotFound(c, "Project not found.")
		} else {
			h.fail(c, "Failed to retrieve project.", err)
		}
		return nil, false
	}
	return project, true
}

// validate binds req and checks the due date, answering the request on failure.
func (h *ProjectHandler) validate(c *gin.Context, req *ProjectRequest) (time.Time, bool) {
	errs, fatal := bindJSON(c, req)
	if fatal {
		response.Invalid(c, errs)
		return time.Time{}, false
	}

	dueDate := validateDueDate(errs, req.DueDate, time.Now())
	if len(errs) > 0 {
		response.Invalid(c, errs)
		return time.Time{}, false
	}
	return dueDate, true
}

func (h *ProjectHandler) respondWithList(c *gin.Context, message string) {
	page, err := listPage(c, h.projects.Count, h.projects.List, newProjectResponse)
	if err != nil {
		h.fail(c, "Failed to retrieve projects.", err)
		return
	}
	response.OK(c, page, message)
}

func (h *ProjectHandler) fail(c *gin.Context, msg string, err error) {
	log.Printf("❌ [%s] %s %v", middleware.RequestIDFrom(c), msg, err)
	response.Fail(c, response.CodeFailure, msg)
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, err
	}
	if id == 0 {
		return 0, errors.New("id must be positive")
	}
	return uint(id), nil
}
