package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"planhub-backend-go/internal/api"
	"planhub-backend-go/internal/config"
	"planhub-backend-go/internal/core"
	"planhub-backend-go/internal/db"
	"planhub-backend-go/internal/middleware"
	"planhub-backend-go/internal/token"
)

func main() {
	// Best effort; in deployed environments configuration comes from real
	// environment variables and no .env file exists.
	_ = godotenv.Load()

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()

	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("Failed to load application configuration", zap.Error(err))
	}
	zapLogger.Info("Application configuration loaded successfully.")

	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	firestoreClient, err := db.NewFirestoreClient(initCtx, appConfig)
	if err != nil {
		zapLogger.Fatal("Failed to initialize Firestore client", zap.Error(err))
	}
	defer firestoreClient.Close()
	zapLogger.Info("Firestore client initialized successfully.")

	tokenCodec, err := token.NewCodec(appConfig.TokenSecret)
	if err != nil {
		zapLogger.Fatal("Failed to initialize token codec", zap.Error(err))
	}

	userRepo := db.NewFirestoreUserRepository(firestoreClient)
	auditRepo := db.NewFirestoreAuditRepository(firestoreClient)

	auditService := core.NewAuditService(auditRepo, zapLogger)
	userService := core.NewUserService(userRepo, auditService)
	zapLogger.Info("Repositories and core services initialized successfully.")

	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()

	// Order matters: request id first so the logger can pick it up, recovery
	// after the logger so panics still produce a request log line.
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))

	if appConfig.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(appConfig))
		zapLogger.Info("CORS Middleware enabled", zap.String("clientURL", appConfig.ClientURL))
	} else {
		zapLogger.Warn("CORS Middleware skipped: CLIENT_URL is not configured.")
	}

	api.SetupRoutes(router, zapLogger, tokenCodec, appConfig.TokenTTL, userService)

	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))

	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown during graceful shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting gracefully.")
}
