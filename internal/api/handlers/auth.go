package handlers

import (
	"net/http"

	"brand-portal/internal/api/middleware"
	"brand-portal/internal/auth"
	"brand-portal/internal/config"
	"brand-portal/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthHandler struct {
	users *service.UserService
	cfg   *config.Config
	log   *zap.SugaredLogger
}

func NewAuthHandler(users *service.UserService, cfg *config.Config, log *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{users: users, cfg: cfg, log: log}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Username and password are required."})
		return
	}

	user, err := h.users.Authenticate(input.Username, input.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	token, err := auth.GenerateToken(user, h.cfg)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	refreshToken, err := auth.GenerateRefreshToken(user, h.cfg)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "Login successful",
		"token":        token,
		"refreshToken": refreshToken,
		"user":         user,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	// stateless tokens: nothing to revoke server-side
	c.JSON(http.StatusOK, gin.H{"message": "Logout successful"})
}

func (h *AuthHandler) ValidateToken(c *gin.Context) {
	var input struct {
		Token string `json:"token"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token."})
		return
	}

	claims, err := auth.ParseToken(input.Token, h.cfg.JWT.Secret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token."})
		return
	}

	user, err := h.users.ActiveByID(claims.UserID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := c.ShouldBindJSON(&input); err != nil || input.RefreshToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Refresh token required."})
		return
	}

	userID, err := auth.ParseRefreshToken(input.RefreshToken, h.cfg.JWT.RefreshSecret)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid refresh token."})
		return
	}

	user, err := h.users.ActiveByID(userID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid refresh token."})
		return
	}

	token, err := auth.GenerateToken(user, h.cfg)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	refreshToken, err := auth.GenerateRefreshToken(user, h.cfg)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":        token,
		"refreshToken": refreshToken,
	})
}

func (h *AuthHandler) Profile(c *gin.Context) {
	ident := middleware.Identity(c)

	user, err := h.users.Get(ident, ident.UserID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"user": user})
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var input struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Current and new passwords are required."})
		return
	}

	if err := h.users.ChangePassword(middleware.Identity(c), input.CurrentPassword, input.NewPassword); err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully."})
}
