package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"careerbridge/internal/app"
	"careerbridge/internal/config"
	"careerbridge/internal/database"
	apphttp "careerbridge/internal/http"
	"careerbridge/internal/http/handlers"
	httpmw "careerbridge/internal/http/middleware"
	"careerbridge/internal/observability"
	"careerbridge/internal/repository/mongodb"
	"careerbridge/internal/security"
	"careerbridge/internal/storage"
)

func main() {
	cfg := config.Load()
	logger := observability.NewLogger()

	client := database.NewMongo(cfg.MongoURI)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()
	db := client.Database(cfg.MongoDatabase)

	indexCtx, cancelIndexes := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureIndexes(indexCtx, db); err != nil {
		cancelIndexes()
		log.Fatalf("failed to create indexes: %v", err)
	}
	cancelIndexes()

	studentRepo := mongodb.NewStudentRepository(db)
	companyRepo := mongodb.NewCompanyRepository(db)
	opportunityRepo := mongodb.NewOpportunityRepository(db)
	applicationRepo := mongodb.NewApplicationRepository(db)

	tokenProvider := security.NewTokenProvider(cfg.JWTSecret)
	fileStore, err := storage.NewFileStore(cfg.UploadDir, cfg.PublicBaseURL)
	if err != nil {
		log.Fatalf("failed to init file store: %v", err)
	}

	authService := app.NewAuthService(studentRepo, companyRepo, tokenProvider, cfg.TokenTTL)
	profileService := app.NewProfileService(studentRepo, companyRepo)
	opportunityService := app.NewOpportunityService(opportunityRepo, companyRepo, studentRepo, applicationRepo)
	applicationService := app.NewApplicationService(applicationRepo, opportunityRepo, studentRepo)

	var limiter httpmw.Limiter
	if cfg.RedisAddr != "" {
		limiter = httpmw.NewRedisLimiter(redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}))
		logger.Info("rate limiting backed by redis", "addr", cfg.RedisAddr)
	} else {
		limiter = httpmw.NewRateLimiter()
	}

	router := apphttp.NewRouter(apphttp.RouterDependencies{
		AuthHandler:        handlers.NewAuthHandler(authService),
		OpportunityHandler: handlers.NewOpportunityHandler(opportunityService),
		ApplicationHandler: handlers.NewApplicationHandler(applicationService, fileStore),
		ProfileHandler:     handlers.NewProfileHandler(profileService, opportunityService, fileStore),
		AuthMiddleware:     httpmw.NewAuthMiddleware(tokenProvider),
		Limiter:            limiter,
		UploadDir:          fileStore.Dir(),
		BodyLimitBytes:     cfg.BodyLimitBytes,
		ReadTimeout:        cfg.RequestTimeout,
	})

	go func() {
		logger.Info("API started", "port", cfg.HTTPPort)
		if err := router.Listen(":" + cfg.HTTPPort); err != nil {
			log.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	if err := router.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Fatal(err)
	}
}
