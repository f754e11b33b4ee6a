package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allnightmarel0Ng/cinema-auth-service/internal/auth/credentials"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a user account. It does not log the user in:
// registration is not authentication.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request"})
		return
	}

	identity, err := h.registrar.Register(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, credentials.ErrAlreadyRegistered):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Username already exists"})
		case errors.Is(err, credentials.ErrPasswordTooShort):
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Password too short"})
		default:
			c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "auth backend unavailable"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":       identity.ID,
		"username": identity.Username,
	})
}
