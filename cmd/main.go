package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fathima-sithara/onboarding-service/internal/config"
	"github.com/fathima-sithara/onboarding-service/internal/database"
	"github.com/fathima-sithara/onboarding-service/internal/handlers"
	"github.com/fathima-sithara/onboarding-service/internal/middleware"
	"github.com/fathima-sithara/onboarding-service/internal/repository"
	"github.com/fathima-sithara/onboarding-service/internal/routes"
	"github.com/fathima-sithara/onboarding-service/internal/services"
	"github.com/fathima-sithara/onboarding-service/internal/token"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// Load .env file for local development; production sets env vars directly.
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	var logger *zap.Logger
	if cfg.App.Env == "development" {
		logger, _ = zap.NewDevelopment()
	} else {
		logger, _ = zap.NewProduction()
	}
	defer func() {
		_ = logger.Sync()
	}()
	sugar := logger.Sugar()
	sugar.Infof("Starting onboarding-service in %s environment on port %d", cfg.App.Env, cfg.App.Port)

	db, mongoClient, err := database.ConnectMongo(cfg.Mongo.URI, cfg.Mongo.Database, sugar)
	if err != nil {
		sugar.Fatal(err)
	}

	userRepo := repository.NewMongoUserRepo(db, "users")
	cardRepo := repository.NewMongoCardRepo(db, "cards")

	tokens := token.NewManager(cfg.App.JWT.Secret)
	otp := services.NewFixedOTPVerifier(cfg.Security.OTPCode)
	validate := validator.New()

	authSvc := services.NewAuthService(userRepo, tokens, logger)
	userSvc := services.NewUserService(userRepo, cardRepo, otp, logger)

	authHandler := handlers.NewAuthHandler(authSvc, validate, logger)
	userHandler := handlers.NewUserHandler(userSvc, validate, logger)

	app := fiber.New()
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.App.CORSOrigin,
		AllowCredentials: true,
	}))
	app.Use(middleware.RequestLogger(logger))

	routes.Setup(app, authHandler, userHandler, tokens, userRepo)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.App.Port)
		sugar.Infof("Server listening on %s", addr)
		if err := app.Listen(addr); err != nil {
			sugar.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	sugar.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		sugar.Errorf("Fiber app shutdown error: %v", err)
	}
	if err := mongoClient.Disconnect(ctx); err != nil {
		sugar.Errorf("MongoDB disconnect error: %v", err)
	}

	sugar.Info("Graceful shutdown complete")
}
