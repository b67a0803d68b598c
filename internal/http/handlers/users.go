package handlers

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"busticket/internal/http/middleware"
	"busticket/internal/repositories"
)

// GET /api/me
func GetProfile(c *gin.Context) {
	rc := middleware.RequestContext(c)
	user, err := (repositories.UserRepository{}).GetByID(rc.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			RespondError(c, http.StatusNotFound, "user tidak ditemukan", nil)
			return
		}
		RespondError(c, http.StatusInternalServerError, "gagal membaca user", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
