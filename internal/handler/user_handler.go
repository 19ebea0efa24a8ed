package handler

import (
	"errors"
	"log"
	"strings"

	"projecthub/internal/auth"
	"projecthub/internal/middleware"
	"projecthub/internal/model"
	"projecthub/internal/repository"
	"projecthub/internal/response"

	"github.com/gin-gonic/gin"
)

// TokenIssuer signs access tokens for a user id.
type TokenIssuer interface {
	Issue(userID uint) (string, error)
}

type UserHandler struct {
	users  repository.UserRepositoryInterface
	roles  repository.RoleRepositoryInterface
	tokens TokenIssuer
}

func NewUserHandler(users repository.UserRepositoryInterface, roles repository.RoleRepositoryInterface, tokens TokenIssuer) *UserHandler {
	setupValidator()
	return &UserHandler{users: users, roles: roles, tokens: tokens}
}

type SignupRequest struct {
	FullName string `json:"full_name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type SigninRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type RoleResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type UserResponse struct {
	ID       uint          `json:"id"`
	FullName string        `json:"full_name"`
	Email    string        `json:"email"`
	Role     *RoleResponse `json:"role"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

func newUserResponse(u *model.User) UserResponse {
	resp := UserResponse{
		ID:       u.ID,
		FullName: u.FullName,
		Email:    u.Email,
	}
	if u.Role != nil {
		resp.Role = &RoleResponse{ID: u.Role.ID, Name: u.Role.Name}
	}
	return resp
}

// Signup registers a member account and returns an access token.
// @Summary  Sign up
// @Tags     Users
// @Accept   json
// @Produce  json
// @Param    body body SignupRequest true "New account"
// @Success  200 {object} response.Envelope
// @Router   /signup [post]
func (h *UserHandler) Signup(c *gin.Context) {
	var req SignupRequest
	errs, fatal := bindJSON(c, &req)
	if fatal {
		response.Invalid(c, errs)
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if _, bad := errs["email"]; !bad {
		existing, err := h.users.FindByEmail(c.Request.Context(), req.Email)
		if err != nil {
			h.fail(c, "Sign up failure.", err)
			return
		}
		if existing != nil {
			errs.Add("email", "This email is already taken.")
		}
	}
	if len(errs) > 0 {
		response.Invalid(c, errs)
		return
	}

	member, err := h.roles.FindByName(c.Request.Context(), model.RoleMember)
	if err != nil {
		h.fail(c, "Sign up failure.", err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.fail(c, "Sign up failure.", err)
		return
	}

	user := &model.User{
		FullName:    req.FullName,
		Email:       req.Email,
		Password:    hash,
		RoleID:      &member.ID,
		Role:        member,
		Permissions: member.Permissions,
	}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			response.Invalid(c, response.ValidationErrors{"email": {"This email is already taken."}})
			return
		}
		h.fail(c, "Sign up failure.", err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.fail(c, "Sign up failure.", err)
		return
	}

	response.OK(c, AuthResponse{Token: token, User: newUserResponse(user)}, "Sign up successful.")
}

// Signin exchanges credentials for an access token.
// @Summary  Sign in
// @Tags     Users
// @Accept   json
// @Produce  json
// @Param    body body SigninRequest true "Credentials"
// @Success  200 {object} response.Envelope
// @Router   /signin [post]
func (h *UserHandler) Signin(c *gin.Context) {
	var req SigninRequest
	if errs, _ := bindJSON(c, &req); len(errs) > 0 {
		response.Invalid(c, errs)
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		h.fail(c, "Sign in failure.", err)
		return
	}
	if user == nil || !auth.CheckPassword(user.Password, req.Password) {
		response.Fail(c, response.CodeFailure, "Invalid credentials.")
		return
	}

	// reload with role for the response body
	user, err = h.users.GetByID(c.Request.Context(), user.ID)
	if err != nil || user == nil {
		h.fail(c, "Sign in failure.", err)
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.fail(c, "Sign in failure.", err)
		return
	}

	response.OK(c, AuthResponse{Token: token, User: newUserResponse(user)}, "Sign in successful.")
}

// AuthData returns the authenticated user.
// @Summary  Current user
// @Tags     Users
// @Produce  json
// @Security BearerAuth
// @Success  200 {object} response.Envelope
// @Router   /auth_data [get]
func (h *UserHandler) AuthData(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		response.Fail(c, response.CodeFailure, "Authentication credentials were not provided.")
		return
	}
	response.OK(c, newUserResponse(user), "Authenticated successfully.")
}

func (h *UserHandler) fail(c *gin.Context, msg string, err error) {
	log.Printf("❌ [%s] %s %v", middleware.RequestIDFrom(c), msg, err)
	response.Fail(c, response.CodeFailure, msg)
}
