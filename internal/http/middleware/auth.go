package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	intconfig "busticket/internal/config"
	"busticket/internal/domain"
)

const (
	userIDKey  = "user_id"
	isAdminKey = "is_admin"
)

// Auth validates the Bearer token and stores the caller's identity in
// the gin context. Requests without a valid token get 401.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token tidak ditemukan"})
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))

		token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return intconfig.JWTSecretBytes(), nil
		})
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token tidak valid atau kedaluwarsa"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token tidak valid"})
			return
		}

		uid, ok := claims["user_id"].(float64)
		if !ok || uid <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token tidak valid"})
			return
		}

		isAdmin, _ := claims["is_admin"].(bool)

		c.Set(userIDKey, int64(uid))
		c.Set(isAdminKey, isAdmin)
		c.Next()
	}
}

// RequestContext rebuilds the caller identity stored by Auth.
func RequestContext(c *gin.Context) domain.RequestContext {
	rc := domain.RequestContext{}
	if v, ok := c.Get(userIDKey); ok {
		if id, ok := v.(int64); ok {
			rc.UserID = id
		}
	}
	if v, ok := c.Get(isAdminKey); ok {
		if b, ok := v.(bool); ok {
			rc.IsAdmin = b
		}
	}
	return rc
}
