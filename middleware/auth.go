package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/voz-urbana/api-go/utils"

	"github.com/dgrijalva/jwt-go"
	"github.com/gin-gonic/gin"
)

func parseClaims(authHeader string) *utils.UserClaims {
	bearerToken := strings.Split(authHeader, " ")
	if len(bearerToken) != 2 {
		return nil
	}

	claims := jwt.MapClaims{}
	parsedToken, err := jwt.ParseWithClaims(bearerToken[1], claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !parsedToken.Valid {
		return nil
	}

	userID, ok := claims["user_id"].(float64)
	if !ok {
		return nil
	}
	username, _ := claims["username"].(string)

	return &utils.UserClaims{
		UserID:   uint(userID),
		Username: username,
	}
}

// AuthMiddleware rejects requests without a valid Bearer token.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		claims := parseClaims(authHeader)
		if claims == nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set(string(utils.UserContextKey), claims)
		c.Next()
	}
}

// OptionalAuth attaches session claims when a valid token is present but lets
// anonymous requests through. Public reads use it so per-viewer fields
// (userHasLiked, isAttending) resolve for signed-in users.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			if claims := parseClaims(authHeader); claims != nil {
				c.Set(string(utils.UserContextKey), claims)
			}
		}
		c.Next()
	}
}
