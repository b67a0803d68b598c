package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"busticket/internal/repositories"
)

// RequireAdmin gates the admin routes. The token claim is not trusted on
// its own; the users row is re-checked so a revoked admin loses access
// as soon as the flag is cleared.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		rc := RequestContext(c)
		if rc.UserID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token tidak ditemukan"})
			return
		}
		if !rc.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "akses khusus admin"})
			return
		}
		isAdmin, err := (repositories.UserRepository{}).IsAdmin(rc.UserID)
		if err != nil || !isAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "akses khusus admin"})
			return
		}
		c.Next()
	}
}
