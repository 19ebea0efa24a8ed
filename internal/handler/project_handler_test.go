package handler_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"projecthub/internal/handler"
	"projecthub/internal/middleware"
	"projecthub/internal/model"
	"projecthub/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func userWith(id uint, perms ...model.PermissionName) *model.User {
	user := &model.User{ID: id, Email: fmt.Sprintf("user%d@example.com", id)}
	for i, p := range perms {
		user.Permissions = append(user.Permissions, model.Permission{ID: uint(i + 1), Name: p})
	}
	return user
}

func setupProjectTest(t *testing.T, actor *model.User) (*gin.Engine, *MockProjectRepository, string) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestID())

	projects := new(MockProjectRepository)
	users := new(MockUserRepository)
	tokens := newTokens(t)
	users.On("GetByID", mock.Anything, actor.ID).Return(actor, nil)

	h := handler.NewProjectHandler(projects)
	r.GET("/project", middleware.Authorize(tokens, users, model.PermViewProjects), h.List)
	r.POST("/project", middleware.Authorize(tokens, users, model.PermCreateProject), h.Create)
	r.PUT("/project/:id", middleware.Authorize(tokens, users, model.PermUpdateProject), h.Update)
	r.DELETE("/project/:id", middleware.Authorize(tokens, users, model.PermDeleteProject), h.Delete)

	token, err := tokens.Issue(actor.ID)
	require.NoError(t, err)
	return r, projects, "Bearer " + token
}

func projectManager() *model.User {
	return userWith(1,
		model.PermViewProjects,
		model.PermCreateProject,
		model.PermUpdateProject,
		model.PermDeleteProject,
	)
}

func makeProjects(from, to int) []model.Project {
	var out []model.Project
	for i := from; i <= to; i++ {
		out = append(out, model.Project{
			ID:      uint(i),
			Name:    fmt.Sprintf("Project %d", i),
			DueDate: time.Date(2030, 1, 1, 12, 0, 0, 0, time.UTC),
		})
	}
	return out
}

func TestProjectCreate_FutureDueDate(t *testing.T) {
	// Arrange
	router, projects, bearer := setupProjectTest(t, projectManager())
	due := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)

	projects.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Project) bool {
		return p.Name == "Launch" &&
			p.DueDate.Equal(due) &&
			p.CreatorID != nil && *p.CreatorID == 1
	})).Return(nil)
	projects.On("Count", mock.Anything).Return(int64(1), nil)
	projects.On("List", mock.Anything, 0, 5).Return([]model.Project{{ID: 1, Name: "Launch", DueDate: due}}, nil)

	// Act
	_, body := doJSON(router, http.MethodPost, "/project", map[string]string{
		"name":     "Launch",
		"due_date": due.Format(time.RFC3339),
	}, "Authorization", bearer)

	// Assert
	assert.Equal(t, 200, body.Code)
	assert.Equal(t, "Project created successfully.", body.message())
	page := body.page()
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 5, page.PerPage)
	assert.Equal(t, int64(1), page.Total)
	require.Len(t, page.Data, 1)
	assert.JSONEq(t,
		fmt.Sprintf(`{"id":1,"name":"Launch","description":"","due_date":%q}`, due.Format(time.RFC3339)),
		string(page.Data[0]))
	projects.AssertExpectations(t)
}

func TestProjectCreate_PastDueDate(t *testing.T) {
	router, projects, bearer := setupProjectTest(t, projectManager())

	_, body := doJSON(router, http.MethodPost, "/project", map[string]string{
		"name":     "Retro",
		"due_date": "2001-01-01 10:00:00",
	}, "Authorization", bearer)

	assert.Equal(t, 401, body.Code)
	assert.Equal(t, []string{"Due date must be in the future."}, body.fieldErrors()["due_date"])
	projects.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProjectCreate_AcceptedDueDateFormats(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Time
	}{
		{"2099-01-01T10:00:00Z", time.Date(2099, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"2099-01-01T10:00:00+02:00", time.Date(2099, 1, 1, 8, 0, 0, 0, time.UTC)},
		{"2099-01-01 10:00:30", time.Date(2099, 1, 1, 10, 0, 30, 0, time.UTC)},
		{"2099-01-01T10:00:30", time.Date(2099, 1, 1, 10, 0, 30, 0, time.UTC)},
		{"2099-01-01T10:00", time.Date(2099, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"2099-01-01 10:00", time.Date(2099, 1, 1, 10, 0, 0, 0, time.UTC)},
		{"2099-01-01", time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			router, projects, bearer := setupProjectTest(t, projectManager())
			projects.On("Create", mock.Anything, mock.MatchedBy(func(p *model.Project) bool {
				return p.DueDate.Equal(tt.want)
			})).Return(nil)
			projects.On("Count", mock.Anything).Return(int64(0), nil)
			projects.On("List", mock.Anything, 0, 5).Return([]model.Project{}, nil)

			_, body := doJSON(router, http.MethodPost, "/project", map[string]string{
				"name":     "Launch",
				"due_date": tt.raw,
			}, "Authorization", bearer)

			assert.Equal(t, 200, body.Code, string(body.Messages))
			projects.AssertExpectations(t)
		})
	}
}

func TestProjectCreate_BadDueDateFormat(t *testing.T) {
	router, projects, bearer := setupProjectTest(t, projectManager())

	_, body := doJSON(router, http.MethodPost, "/project", map[string]string{
		"name":     "Retro",
		"due_date": "next tuesday",
	}, "Authorization", bearer)

	assert.Equal(t, 401, body.Code)
	assert.Contains(t, body.fieldErrors(), "due_date")
	projects.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProjectCreate_WithoutPermission(t *testing.T) {
	router, projects, bearer := setupProjectTest(t, userWith(1, model.PermViewProjects))

	_, body := doJSON(router, http.MethodPost, "/project", map[string]string{
		"name":     "Launch",
		"due_date": time.Now().Add(time.Hour).Format(time.RFC3339),
	}, "Authorization", bearer)

	assert.Equal(t, 500, body.Code)
	assert.Equal(t, "You do not have permission to perform this action.", body.message())
	projects.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProjectList_Pagination(t *testing.T) {
	router, projects, bearer := setupProjectTest(t, projectManager())
	projects.On("Count", mock.Anything).Return(int64(12), nil)
	projects.On("List", mock.Anything, 0, 5).Return(makeProjects(1, 5), nil)
	projects.On("List", mock.Anything, 10, 5).Return(makeProjects(11, 12), nil)

	_, first := doJSON(router, http.MethodGet, "/project", nil, "Authorization", bearer)
	_, third := doJSON(router, http.MethodGet, "/project?page=3&per_page=5", nil, "Authorization", bearer)

	assert.Equal(t, 200, first.Code)
	assert.Len(t, first.page().Data, 5)
	assert.Equal(t, int64(12), first.page().Total)
	assert.Equal(t, 1, first.page().CurrentPage)

	assert.Equal(t, 200, third.Code)
	assert.Len(t, third.page().Data, 2)
	assert.Equal(t, 3, third.page().CurrentPage)
	projects.AssertExpectations(t)
}

func TestProjectList_PageOutOfRange(t *testing.T) {
	router, projects, bearer := setupProjectTest(t, projectManager())
	projects.On("Count", mock.Anything).Return(int64(12), nil)
	projects.On("List", mock.Anything, 10, 5).Return(makeProjects(11, 12), nil)

	_, body := doJSON(router, http.MethodGet, "/project?page=99", nil, "Authorization", bearer)

	assert.Equal(t, 3, body.page().CurrentPage)
	assert.Len(t, body.page().Data, 2)
}

func TestProjectUpdate_NotFound(t *testing.T) {
	router, projects, bearer := setupProjectTest(t, projectManager())
	projects.On("GetByID", mock.Anything, uint(42)).Return(nil, repository.ErrProjectNotFound)

	_, body := doJSON(router, http.MethodPut, "/project/42", map[string]string{
		"name":     "Renamed",
		"due_date": time.Now().Add(time.Hour).Format(time.RFC3339),
	}, "Authorization", bearer)

	assert.Equal(t, 404, body.Code)
	assert.Equal(t, "Project not found.", body.message())
	projects.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProjectUpdate_Success(t *testing.T) {
	router, projects, bearer := setupProjectTest(t, projectManager())
	existing := &model.Project{ID: 2, Name: "Old", Description: "keep"}
	projects.On("GetByID", mock.Anything, uint(2)).Return(existing, nil)
	projects.On("Update", mock.Anything, mock.MatchedBy(func(p *model.Project) bool {
		return p.ID == 2 && p.Name == "Renamed" && p.Description == "keep"
	})).Return(nil)
	projects.On("Count", mock.Anything).Return(int64(1), nil)
	projects.On("List", mock.Anything, 0, 5).Return(makeProjects(2, 2), nil)

	_, body := doJSON(router, http.MethodPut, "/project/2", map[string]string{
		"name":     "Renamed",
		"due_date": time.Now().Add(time.Hour).Format(time.RFC3339),
	}, "Authorization", bearer)

	assert.Equal(t, 200, body.Code)
	assert.Equal(t, "Project updated successfully.", body.message())
	projects.AssertExpectations(t)
}

func TestProjectDelete_NotFound(t *testing.T) {
	router, projects, bearer := setupProjectTest(t, projectManager())
	projects.On("Delete", mock.Anything, uint(42)).Return(repository.ErrProjectNotFound)

	_, body := doJSON(router, http.MethodDelete, "/project/42", nil, "Authorization", bearer)

	assert.Equal(t, 404, body.Code)
	assert.Equal(t, "Project not found.", body.message())
}

func TestProjectDelete_Success(t *testing.T) {
	router, projects, bearer := setupProjectTest(t, projectManager())
	projects.On("Delete", mock.Anything, uint(3)).Return(nil)
	projects.On("Count", mock.Anything).Return(int64(0), nil)
	projects.On("List", mock.Anything, 0, 5).Return([]model.Project{}, nil)

	_, body := doJSON(router, http.MethodDelete, "/project/3", nil, "Authorization", bearer)

	assert.Equal(t, 200, body.Code)
	assert.Equal(t, "Project deleted successfully.", body.message())
	assert.Equal(t, 1, body.page().CurrentPage)
	assert.Empty(t, body.page().Data)
}

func TestProjectDelete_InvalidID(t *testing.T) {
	router, projects, bearer := setupProjectTest(t, projectManager())

	_, body := doJSON(router, http.MethodDelete, "/project/abc", nil, "Authorization", bearer)

	assert.Equal(t, 404, body.Code)
	projects.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
