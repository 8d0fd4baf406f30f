package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"medbook-api/internal/application/ports"
	"medbook-api/internal/infrastructure/jwt"
)

const (
	CtxUserID = "userID"
	CtxUser   = "user"
)

// AuthMiddleware validates the bearer access token, loads the subject user
// (soft-deleted accounts resolve to nothing and are rejected) and refuses
// tokens issued before the user's last password change.
func AuthMiddleware(jwtService *jwt.Service, userService ports.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"message": "missing Authorization header"},
			)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"message": "invalid token format"},
			)
			return
		}

		claims, err := jwtService.ValidateToken(tokenStr)
		if err != nil {
			msg := "Invalid token!"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has been expired!"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msg})
			return
		}
		if claims.Type != jwt.TypeAccess {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token!"})
			return
		}

		u, err := userService.FindByID(c.Request.Context(), claims.UserID)
		if err != nil || u == nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"message": "The user belonging to this token does no longer exist."},
			)
			return
		}

		if claims.IssuedAt != nil && u.StaleToken(claims.IssuedAt.Unix()) {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				gin.H{"message": "User recently changed password! Please log in again."},
			)
			return
		}

		c.Set(CtxUserID, u.ID)
		c.Set(CtxUser, u)

		c.Next()
	}
}
