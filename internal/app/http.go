package app

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/allnightmarel0Ng/cinema-auth-service/internal/auth"
	"github.com/allnightmarel0Ng/cinema-auth-service/internal/auth/credentials"
	"github.com/allnightmarel0Ng/cinema-auth-service/internal/auth/handler"
	"github.com/allnightmarel0Ng/cinema-auth-service/internal/config"
	"github.com/allnightmarel0Ng/cinema-auth-service/internal/middleware"
	"github.com/allnightmarel0Ng/cinema-auth-service/internal/session"
	"github.com/allnightmarel0Ng/cinema-auth-service/internal/token"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	tokens, err := token.New(cfg.JWTSecret, cfg.JWTAlgorithm)
	if err != nil {
		return nil, nil, err
	}

	sessionStore := session.NewRedisStore(infra.Redis.Client)
	credentialService := credentials.NewService(infra.DB)

	authority := auth.NewAuthority(
		credentialService,
		tokens,
		sessionStore,
		cfg.TokenTTL,
	)

	authHandler := handler.NewHandler(authority, credentialService)
	authMiddleware := middleware.NewAuthMiddleware(authority)

	// ----------------------------
	// Router
	// ----------------------------

	router := gin.New()
	router.Use(gin.Recovery())

	// ----------------------------
	// Public Routes
	// ----------------------------

	authHandler.RegisterRoutes(router)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ----------------------------
	// Protected API Routes
	// ----------------------------

	api := router.Group("/api")
	api.Use(middleware.GinRequireAuth(authMiddleware))

	api.GET("/me", func(c *gin.Context) {
		identity, _ := middleware.IdentityFromContext(c.Request.Context())
		c.JSON(200, gin.H{
			"user_id":  identity.ID,
			"username": identity.Username,
		})
	})

	// ----------------------------
	// Cleanup
	// ----------------------------

	cleanup := func() error {
		if err := infra.Redis.Close(); err != nil {
			return err
		}
		return infra.DB.Close()
	}

	return router, cleanup, nil
}
