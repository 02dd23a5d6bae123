package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"planhub-backend-go/internal/core"
	"planhub-backend-go/internal/middleware"
	"planhub-backend-go/internal/token"
)

// SetupRoutes configures all the application routes with their handlers and
// middleware. Global middleware (request id, logging, recovery, CORS) are
// applied to the router before this function is called, in main.
func SetupRoutes(
	router *gin.Engine,
	logger *zap.Logger,
	codec *token.Codec,
	tokenTTL time.Duration,
	userService core.UserService,
) {
	authMW := middleware.NewAuthMiddleware(codec)

	authHandler := NewAuthHandler(codec, tokenTTL)
	userHandler := NewUserHandler(userService)

	apiGroup := router.Group("/api")
	{
		authGroup := apiGroup.Group("/auth")
		{
			// Token issuance is unauthenticated; the credential check
			// happens upstream at the identity provider.
			authGroup.POST("/generate-token", authHandler.GenerateToken)
			authGroup.GET("/verify", authMW.VerifyToken(), authHandler.Verify)
			authGroup.POST("/logout", authMW.VerifyToken(), authHandler.Logout)
		}

		userGroup := apiGroup.Group("/user", authMW.VerifyToken())
		{
			userGroup.GET("/profile", userHandler.GetProfile)
			userGroup.PUT("/profile", userHandler.UpdateProfile)
			userGroup.POST("/create", userHandler.CreateUser)
			userGroup.PUT("/plan", userHandler.ChangePlan)
			userGroup.GET("/stats", userHandler.Stats)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "PlanHub backend is healthy."})
	})

	logger.Info("API routes configured successfully under /api and /health.")
}
