package handlers

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	intconfig "busticket/internal/config"
	"busticket/internal/repositories"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

func issueToken(userID int64, isAdmin bool) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  userID,
		"is_admin": isAdmin,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	})
	return token.SignedString(intconfig.JWTSecretBytes())
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	user, hash, err := (repositories.UserRepository{}).GetByEmail(email)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "email atau password salah"})
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "email atau password salah"})
		return
	}

	tokenString, err := issueToken(user.ID, user.IsAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membuat token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": tokenString,
		"user":  user,
	})
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nama wajib diisi"})
		return
	}
	if !emailRe.MatchString(email) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email tidak valid"})
		return
	}
	if len(req.Password) < 6 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password minimal 6 karakter"})
		return
	}

	repo := repositories.UserRepository{}
	taken, err := repo.EmailTaken(email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal cek user: " + err.Error()})
		return
	}
	if taken {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email sudah terdaftar"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal meng-hash password"})
		return
	}

	id, err := repo.Create(name, email, strings.TrimSpace(req.Phone), string(hash))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal menyimpan user: " + err.Error()})
		return
	}

	tokenString, err := issueToken(id, false)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "gagal membuat token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "registrasi berhasil",
		"token":   tokenString,
		"user": gin.H{
			"id":      id,
			"name":    name,
			"email":   email,
			"phone":   strings.TrimSpace(req.Phone),
			"isAdmin": false,
		},
	})
}
