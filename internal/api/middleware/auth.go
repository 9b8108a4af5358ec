package middleware

import (
	"errors"
	"net/http"
	"strings"

	"brand-portal/internal/auth"
	"brand-portal/internal/config"
	"brand-portal/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const identityKey = "identity"

// JWTAuth verifies the bearer token and resolves the caller's user row.
// The row lookup enforces status, so revoked accounts fail even with a
// still-valid token.
func JWTAuth(db *gorm.DB, cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authentication required."})
			return
		}

		claims, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "), cfg.JWT.Secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token."})
			return
		}

		var user models.User
		err = db.Where("id = ? AND status = ?", claims.UserID, models.StatusActive).First(&user).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token."})
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error."})
			return
		}

		c.Set(identityKey, auth.IdentityOf(&user))
		c.Next()
	}
}

// AdminOnly rejects non-admin callers. Must run after JWTAuth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Identity(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Admin access required."})
			return
		}
		c.Next()
	}
}

// Identity returns the caller resolved by JWTAuth.
func Identity(c *gin.Context) auth.Identity {
	if v, ok := c.Get(identityKey); ok {
		if ident, ok := v.(auth.Identity); ok {
			return ident
		}
	}
	return auth.Identity{}
}
