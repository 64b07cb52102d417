package utils

import (
	"github.com/gin-gonic/gin"
)

// UserClaims is the session identity extracted from the access token. A nil
// *UserClaims is the explicit "unauthenticated" state: handlers that serve
// both public and signed-in traffic check GetUser(c) == nil once instead of
// null-checking fields.
type UserClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
}

type contextKey string

const UserContextKey contextKey = "user"

// GetUser returns the session claims set by the auth middleware, or nil when
// the request is unauthenticated.
func GetUser(c *gin.Context) *UserClaims {
	user, exists := c.Get(string(UserContextKey))
	if !exists {
		return nil
	}
	if claims, ok := user.(*UserClaims); ok {
		return claims
	}
	return nil
}

// ViewerID returns the session user id, or zero for anonymous viewers. Zero
// never matches a real row, so "has the viewer liked this" subqueries come
// back false for anonymous traffic.
func ViewerID(c *gin.Context) uint {
	if u := GetUser(c); u != nil {
		return u.UserID
	}
	return 0
}
