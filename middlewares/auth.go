package middlewares

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/myhuemungusD/skatehubbamvp/utils"
)

// AuthMiddleware verifies the bearer JWT and sets the caller's uid and
// normalized role set into the context. Role claims arrive as a singular
// "role" or a "roles" collection; handlers only ever see the flattened set.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token format"})
			c.Abort()
			return
		}

		claims, err := utils.ParseToken(jwtSecret, parts[1])
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		uid, _ := claims["sub"].(string)
		if uid == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token missing subject"})
			c.Abort()
			return
		}

		c.Set("uid", uid)
		c.Set("roles", utils.NormalizeRoles(claims))
		c.Next()
	}
}

// CallerUID returns the authenticated uid set by AuthMiddleware.
func CallerUID(c *gin.Context) string {
	uid, _ := c.Get("uid")
	s, _ := uid.(string)
	return s
}

// CallerRoles returns the normalized role set set by AuthMiddleware.
func CallerRoles(c *gin.Context) []string {
	roles, _ := c.Get("roles")
	s, _ := roles.([]string)
	return s
}
