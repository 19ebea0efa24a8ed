package middleware

import (
	"context"
	"errors"
	"log"
	"strings"

	"projecthub/internal/auth"
	"projecthub/internal/model"
	"projecthub/internal/obs"
	"projecthub/internal/response"

	"github.com/gin-gonic/gin"
)

// UserKey is the gin context key holding the authenticated *model.User.
const UserKey = "user"

const bearerPrefix = "Bearer "

// TokenVerifier decodes a bearer token into a user id.
type TokenVerifier interface {
	Verify(token string) (uint, error)
}

// UserLookup resolves a user id; a nil user with a nil error means unknown.
type UserLookup interface {
	GetByID(ctx context.Context, id uint) (*model.User, error)
}

var failureMessages = map[error]string{
	auth.ErrMissingCredentials: "Authentication credentials were not provided.",
	auth.ErrExpiredToken:       "Token has expired.",
	auth.ErrMalformedToken:     "Invalid token.",
	auth.ErrUnknownUser:        "User does not exist.",
	auth.ErrForbidden:          "You do not have permission to perform this action.",
}

var failureReasons = map[error]string{
	auth.ErrMissingCredentials: "missing_credentials",
	auth.ErrExpiredToken:       "expired_token",
	auth.ErrMalformedToken:     "malformed_token",
	auth.ErrUnknownUser:        "unknown_user",
	auth.ErrForbidden:          "forbidden",
}

// Authorize authenticates the bearer token and, when required is not empty,
// checks that the user holds that permission. Every failure is answered with
// the same failure envelope; only the message differs.
func Authorize(tokens TokenVerifier, users UserLookup, required model.PermissionName) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := authenticate(c, tokens, users, required)
		if err != nil {
			reject(c, err)
			return
		}

		c.Set(UserKey, user)
		c.Request = c.Request.WithContext(auth.ContextWithUser(c.Request.Context(), user))
		c.Next()
	}
}

func authenticate(c *gin.Context, tokens TokenVerifier, users UserLookup, required model.PermissionName) (*model.User, error) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, bearerPrefix) {
		return nil, auth.ErrMissingCredentials
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" {
		return nil, auth.ErrMissingCredentials
	}

	userID, err := tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	user, err := users.GetByID(c.Request.Context(), userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, auth.ErrUnknownUser
	}

	if required != "" && !user.HasPermission(required) {
		return nil, auth.ErrForbidden
	}
	return user, nil
}

func reject(c *gin.Context, err error) {
	for kind, msg := range failureMessages {
		if errors.Is(err, kind) {
			obs.AuthFailure(failureReasons[kind])
			response.Abort(c, response.CodeFailure, msg)
			return
		}
	}

	obs.AuthFailure("store_failure")
	log.Printf("❌ [%s] authorization lookup failed: %v", RequestIDFrom(c), err)
	response.Abort(c, response.CodeFailure, "Authentication failure.")
}

// CurrentUser returns the user attached by Authorize.
func CurrentUser(c *gin.Context) (*model.User, bool) {
	v, exists := c.Get(UserKey)
	if !exists {
		return nil, false
	}
	user, ok := v.(*model.User)
	return user, ok && user != nil
}
