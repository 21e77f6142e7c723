package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/farellandr/linkpay/config"
	"github.com/farellandr/linkpay/internal/helpers"
)

type AuthHandler struct {
	cfg *config.AuthConfig
}

func NewAuthHandler(cfg *config.AuthConfig) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login checks the single shared admin secret and issues a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if !h.passwordMatches(req.Password) {
		helpers.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials.")
		return
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "admin",
		"sub":  "admin",
		"exp":  time.Now().Add(24 * time.Hour).Unix(),
	})

	tokenString, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": tokenString,
	})
}

// passwordMatches accepts either a bcrypt hash or a plain secret in
// configuration; plain comparison is constant-time.
func (h *AuthHandler) passwordMatches(submitted string) bool {
	if strings.HasPrefix(h.cfg.AdminPassword, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(h.cfg.AdminPassword), []byte(submitted)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(h.cfg.AdminPassword), []byte(submitted)) == 1
}

// Verify lets the admin frontend check a stored token before rendering.
func (h *AuthHandler) Verify(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Token is valid.",
	})
}
