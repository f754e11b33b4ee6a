package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/allnightmarel0Ng/cinema-auth-service/internal/auth"
)

// Authority is the session authority consumed by the HTTP layer.
type Authority interface {
	Login(ctx context.Context, username, password string) (string, auth.Identity, error)
	Authorize(ctx context.Context, token string) (auth.Identity, error)
	Logout(ctx context.Context, token string) error
}

// Registrar creates new users in the credential store.
type Registrar interface {
	Register(ctx context.Context, username, password string) (auth.Identity, error)
}

type Handler struct {
	authority Authority
	registrar Registrar
}

func NewHandler(authority Authority, registrar Registrar) *Handler {
	return &Handler{
		authority: authority,
		registrar: registrar,
	}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
	r.GET("/authorize", h.Authorize)
	r.POST("/logout", h.Logout)
}

// Authorize resolves a bearer token to its owning identity.
func (h *Handler) Authorize(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid or expired token"})
		return
	}

	identity, err := h.authority.Authorize(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, auth.ErrBackendUnavailable) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "auth backend unavailable"})
			return
		}
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid or expired token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user_id":  identity.ID,
		"username": identity.Username,
	})
}

// Logout revokes the token. Deletion is unconditional: signature and
// expiry are never inspected here.
func (h *Handler) Logout(c *gin.Context) {
	token := c.Query("token")

	err := h.authority.Logout(c.Request.Context(), token)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"detail": "Successfully logged out"})
	case errors.Is(err, auth.ErrNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid token"})
	case errors.Is(err, auth.ErrBackendUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": "auth backend unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal error"})
	}
}
