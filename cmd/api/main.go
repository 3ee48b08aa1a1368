package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"taskhub/internal/config"
	"taskhub/internal/database"
	"taskhub/internal/domain"
	"taskhub/internal/middleware"
	"taskhub/internal/modules/auth"
	"taskhub/internal/modules/task"
	"taskhub/internal/modules/user"
	jwtsvc "taskhub/internal/pkg/jwt"
	"taskhub/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := newLogger(cfg.AppEnv)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("db connect failed", zap.Error(err))
	}
	if err := database.Migrate(db, &domain.User{}, &domain.RefreshToken{}, &domain.Task{}); err != nil {
		logger.Fatal("db migrate failed", zap.Error(err))
	}

	tokens, err := jwtsvc.New(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTTL, cfg.RefreshTTL)
	if err != nil {
		logger.Fatal("token service", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(db)
	refreshRepo := repository.NewRefreshTokenRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := auth.NewService(userRepo, refreshRepo, tokens)
	authHandler := auth.NewHandler(authService, cfg.CookieSecure, cfg.CookieSameSite, cfg.CookiePath)

	userService := user.NewService(userRepo, refreshRepo)
	userHandler := user.NewHandler(userService)

	taskService := task.NewService(taskRepo)
	taskHandler := task.NewHandler(taskService)

	if cfg.AppEnv == "prod" || cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Server is healthy!"})
	})

	root := r.Group("/")
	{
		// public
		authHandler.RegisterRoutes(root)

		// protected
		protected := root.Group("/")
		protected.Use(middleware.JWTAuth(tokens))
		{
			userHandler.RegisterRoutes(protected)
			taskHandler.RegisterRoutes(protected)
		}
	}

	logger.Info("listening", zap.String("addr", cfg.ListenAddr))
	if err := r.Run(cfg.ListenAddr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(appEnv string) (*zap.Logger, error) {
	if appEnv == "prod" || appEnv == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
