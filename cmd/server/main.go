package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/yukikurage/warbler/internal/cache"
	"github.com/yukikurage/warbler/internal/config"
	"github.com/yukikurage/warbler/internal/constants"
	"github.com/yukikurage/warbler/internal/database"
	"github.com/yukikurage/warbler/internal/handlers"
	"github.com/yukikurage/warbler/internal/logger"
	"github.com/yukikurage/warbler/internal/middleware"
	"github.com/yukikurage/warbler/internal/repository"
	"github.com/yukikurage/warbler/internal/services"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Init(!cfg.IsProduction()); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		logger.L().Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		logger.L().Fatal("Failed to run migrations", zap.Error(err))
	}

	// Redis backs the stats cache and the rate limiter; both are skipped when it is down
	rdb := cache.Connect(cfg.RedisAddr(), cfg.RedisPassword)

	store, err := newSessionStore(cfg)
	if err != nil {
		logger.L().Fatal("Failed to create session store", zap.Error(err))
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})

	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	followRepo := repository.NewFollowRepository(db)
	likeRepo := repository.NewLikeRepository(db)

	statsCache := cache.New(rdb)
	authService := services.NewAuthService(userRepo)
	svc := handlers.Services{
		Auth:     authService,
		Users:    services.NewUserService(userRepo, statsCache),
		Follows:  services.NewFollowService(followRepo, userRepo, statsCache),
		Likes:    services.NewLikeService(likeRepo, messageRepo, userRepo, statsCache),
		Messages: services.NewMessageService(messageRepo, statsCache),
		Feed:     services.NewFeedService(messageRepo, followRepo),
	}

	r := gin.New()
	r.Use(
		middleware.Recovery(),
		middleware.RequestLogger(),
		middleware.Metrics(),
		sessions.Sessions(constants.SessionCookieName, store),
	)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Warbler API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("", middleware.LoadCurrentUser(authService))
	handlers.RegisterRoutes(api, svc, rdb, cfg.LoginRateLimit)

	addr := ":" + cfg.Port
	logger.Info("Server starting", zap.String("addr", addr))
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.L().Fatal("Failed to start server", zap.Error(err))
	}
}

func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	if cfg.SessionStore == "cookie" {
		return cookie.NewStore([]byte(cfg.SessionSecret)), nil
	}

	return redisStore.NewStore(
		10,    // Redis pool size
		"tcp", // network type
		cfg.RedisAddr(),
		cfg.RedisPassword,
		[]byte(cfg.SessionSecret),
	)
}
