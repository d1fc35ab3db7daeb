package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	apperrors "bookstore-api/common/errors"
	"bookstore-api/common/logger"
	"bookstore-api/controllers"
	"bookstore-api/database"
	"bookstore-api/middleware"
	"bookstore-api/models"
	"bookstore-api/repository"
	"bookstore-api/routes"
	"bookstore-api/services"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger.Initialize(cfg.Env)
	defer logger.Log.Sync() //nolint:errcheck

	if err := database.Connect(); err != nil {
		logger.Log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close() //nolint:errcheck

	if err := models.Migrate(database.DB); err != nil {
		logger.Log.Fatal("Failed to run migrations", zap.Error(err))
	}

	redisClient := database.NewRedisClient(cfg.RedisURL)
	if redisClient == nil {
		logger.Log.Warn("Redis unavailable, catalog cache disabled")
	}
	cache := services.NewCacheManager(redisClient)

	// Downloads fall back to stored file URLs when no bucket is configured.
	var downloader services.Downloader = services.PassthroughStorage{}
	if cfg.S3Bucket != "" {
		awsCfg, awsErr := awsconfig.LoadDefaultConfig(context.Background(),
			awsconfig.WithRegion(cfg.AWSRegion))
		if awsErr != nil {
			logger.Log.Warn("AWS config unavailable, serving raw file URLs", zap.Error(awsErr))
		} else {
			downloader = services.NewS3Storage(awsCfg, cfg.S3Bucket)
		}
	}

	userRepo := repository.NewGormUserRepository(database.DB)
	categoryRepo := repository.NewGormCategoryRepository(database.DB)
	bookRepo := repository.NewGormBookRepository(database.DB)
	cartRepo := repository.NewGormCartRepository(database.DB)
	orderRepo := repository.NewGormOrderRepository(database.DB)
	libraryRepo := repository.NewGormLibraryRepository(database.DB)
	checkoutStore := repository.NewGormCheckoutStore(database.DB)

	tokens := services.NewTokenService(cfg.JWTSecret)
	payments := services.NewSimulatedPaymentProvider()
	downloadTTL := time.Duration(cfg.DownloadTTLSecs) * time.Second

	authService := services.NewAuthService(userRepo, tokens, logger.Log)
	bookService := services.NewBookService(bookRepo, categoryRepo, libraryRepo, cache, logger.Log)
	cartService := services.NewCartService(cartRepo, bookRepo, libraryRepo, logger.Log)
	orderService := services.NewOrderService(orderRepo, cartRepo, checkoutStore, payments, cache, logger.Log)
	libraryService := services.NewLibraryService(libraryRepo, downloader, downloadTTL, logger.Log)
	sellerService := services.NewSellerService(bookRepo, categoryRepo, orderRepo, cache, logger.Log)

	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.RequestLogger())
	r.Use(apperrors.ErrorMiddleware())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORSMiddleware())

	// 30-second request timeout
	r.Use(func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 30*time.Second)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})

	routes.Register(r, tokens, routes.Controllers{
		Auth:    controllers.NewAuthController(authService),
		Books:   controllers.NewBookController(bookService),
		Cart:    controllers.NewCartController(cartService),
		Orders:  controllers.NewOrderController(orderService),
		Library: controllers.NewLibraryController(libraryService),
		Seller:  controllers.NewSellerController(sellerService),
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Server failed", zap.Error(err))
		}
	}()

	logger.Log.Info("Bookstore API started", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	<-quit
	logger.Log.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal("Server forced to shutdown", zap.Error(err))
	}
	logger.Log.Info("Server exited cleanly")
}
