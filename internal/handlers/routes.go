package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/yukikurage/warbler/internal/middleware"
	"github.com/yukikurage/warbler/internal/services"
)

// Services bundles what the API routes depend on.
type Services struct {
	Auth     *services.AuthService
	Users    *services.UserService
	Follows  *services.FollowService
	Likes    *services.LikeService
	Messages *services.MessageService
	Feed     *services.FeedService
}

// RegisterRoutes mounts the JSON API under /api.
// Signup and login are limited to authLimit requests per minute per client when rdb is set.
func RegisterRoutes(r gin.IRouter, svc Services, rdb *redis.Client, authLimit int) {
	authHandler := NewAuthHandler(svc.Auth)
	userHandler := NewUserHandler(svc.Users, svc.Follows, svc.Likes, svc.Feed)
	messageHandler := NewMessageHandler(svc.Messages, svc.Likes)
	feedHandler := NewFeedHandler(svc.Feed)

	authLimiter := middleware.RateLimit(rdb, authLimit, time.Minute)

	api := r.Group("/api")
	{
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authLimiter, authHandler.Signup)
			auth.POST("/login", authLimiter, authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		api.GET("/notices", feedHandler.Notices)
		api.GET("/timeline", feedHandler.Timeline)

		users := api.Group("/users")
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetProfile)
			users.GET("/:id/likes", userHandler.Likes)
			users.GET("/:id/following", middleware.RequireAuth(), userHandler.Following)
			users.GET("/:id/followers", middleware.RequireAuth(), userHandler.Followers)

			users.POST("/follow/:id", middleware.RequireAuth(), userHandler.Follow)
			users.POST("/stop-following/:id", middleware.RequireAuth(), userHandler.StopFollowing)
			users.PATCH("/profile", middleware.RequireAuth(), userHandler.UpdateProfile)
			users.POST("/delete", middleware.RequireAuth(), userHandler.DeleteAccount)
		}

		messages := api.Group("/messages")
		{
			messages.GET("/:id", messageHandler.GetMessage)
			messages.POST("", middleware.RequireAuth(), messageHandler.CreateMessage)
			messages.POST("/:id/delete", middleware.RequireAuth(), middleware.RequireMessageOwner(svc.Messages), messageHandler.DeleteMessage)
			// ToggleLike answers signed-out visitors itself with a login redirect
			messages.POST("/:id/like", messageHandler.ToggleLike)
		}
	}
}
