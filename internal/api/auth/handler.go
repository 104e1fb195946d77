package auth

import (
	"errors"
	"net/http"
	"regexp"
	"time"

	"fictionhub/config"
	"fictionhub/database"
	"fictionhub/internal/api/respond"
	"fictionhub/internal/app/http/middleware"
	"fictionhub/internal/domain/apperr"
	"fictionhub/internal/domain/users"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func isPasswordStrong(password string) bool {
	if len(password) < 8 {
		return false
	}
	hasLetter := false
	hasDigit := false
	for _, c := range password {
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z':
			hasLetter = true
		case '0' <= c && c <= '9':
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.\-]{3,150}$`)

func issueToken(user users.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.JWT_SECRET))
}

func Register(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Email    string `json:"email" binding:"omitempty,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !usernamePattern.MatchString(input.Username) {
		respond.Err(c, apperr.Validation("Username must be 3-150 characters of letters, digits, _ . -"))
		return
	}
	if !isPasswordStrong(input.Password) {
		respond.Err(c, apperr.Validation("Password must be at least 8 characters long and contain both letters and numbers"))
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
		return
	}

	user := users.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hashed),
	}
	if err := database.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			respond.Err(c, apperr.Conflict("Username already taken"))
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	token, err := issueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"user": user, "access": token})
}

func Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user users.User
	if err := database.DB.Where("username = ?", input.Username).First(&user).Error; err != nil {
		respond.Err(c, apperr.Unauthenticated("Invalid username or password"))
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		respond.Err(c, apperr.Unauthenticated("Invalid username or password"))
		return
	}

	token, err := issueToken(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to issue token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user, "access": token})
}

func Me(c *gin.Context) {
	p := middleware.CurrentPrincipal(c)
	if !p.Authenticated() {
		respond.Err(c, apperr.Unauthenticated("Authentication required"))
		return
	}

	var user users.User
	if err := database.DB.First(&user, p.ID).Error; err != nil {
		respond.Err(c, apperr.NotFound("user not found"))
		return
	}
	c.JSON(http.StatusOK, user)
}
