package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allnightmarel0Ng/cinema-auth-service/internal/auth"
	"github.com/allnightmarel0Ng/cinema-auth-service/internal/logger"
)

// Login accepts an OAuth2-style password form (username/password
// fields) and returns a bearer token. Unknown username and wrong
// password are reported identically.
func (h *Handler) Login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")
	if username == "" || password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "username and password are required"})
		return
	}

	token, identity, err := h.authority.Login(c.Request.Context(), username, password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			c.JSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect username or password"})
		case errors.Is(err, auth.ErrBackendUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "auth backend unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
		}
		return
	}

	logger.Info("login", map[string]any{
		"user_id": identity.ID,
		"ip":      c.ClientIP(),
	})

	c.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
		"user_id":      identity.ID,
	})
}
