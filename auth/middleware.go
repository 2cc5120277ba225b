package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const identityKey = "auth.email"

// RequireAuth is the request-level authorization gate. It extracts the bearer
// token from the Authorization header, verifies it, and stores the subject
// email in the request context. Requests without a valid token are aborted
// with 401 and never reach the handler.
func RequireAuth(svc *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access"})
			return
		}

		tokenStr := strings.TrimPrefix(header, "Bearer ")
		email, err := svc.VerifyToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized access"})
			return
		}

		c.Set(identityKey, email)
		c.Next()
	}
}

// CallerEmail returns the verified identity stored by RequireAuth, or the
// empty string on unauthenticated requests.
func CallerEmail(c *gin.Context) string {
	val, exists := c.Get(identityKey)
	if !exists {
		return ""
	}
	email, _ := val.(string)
	return email
}
