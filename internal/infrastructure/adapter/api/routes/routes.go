package routes

import (
	"time"

	coreport "github.com/amirhossein-jamali/socialhub/internal/domain/port/core"
	"github.com/amirhossein-jamali/socialhub/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/socialhub/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Handlers groups the HTTP handlers mounted by SetupRoutes
type Handlers struct {
	Wallet   *handler.WalletHandler
	Commerce *handler.CommerceHandler
	Social   *handler.SocialHandler
	Watch    *handler.WatchHandler
	User     *handler.UserHandler
	Health   *handler.HealthHandler
}

// Dependencies are the cross-cutting services the authenticated group needs
type Dependencies struct {
	Tokens *middleware.TokenService
	Users  usecase.UserUseCase
	Logger coreport.Logger

	// Redis enables per-user rate limiting when set
	Redis      redis.Cmdable
	RateLimit  int
	RateWindow time.Duration
}

// SetupRoutes configures all the routes for the API
func SetupRoutes(router *gin.Engine, h Handlers, deps Dependencies) {
	router.GET("/health", h.Health.Health)

	api := router.Group("/api/v1")
	api.Use(middleware.Auth(deps.Tokens, deps.Logger))
	if deps.Redis != nil && deps.RateLimit > 0 {
		api.Use(middleware.RateLimit(deps.Redis, deps.RateLimit, deps.RateWindow, deps.Logger))
	}
	api.Use(middleware.Presence(deps.Users, deps.Logger))

	wallet := api.Group("/wallet")
	{
		wallet.GET("", h.Wallet.GetBalance)
		wallet.GET("/transactions", h.Wallet.History)
		wallet.POST("/transfer", h.Wallet.Transfer)
	}

	api.GET("/products", h.Commerce.ListProducts)
	api.POST("/products", h.Commerce.CreateProduct)
	api.GET("/products/:productId", h.Commerce.GetProduct)
	api.DELETE("/products/:productId", h.Commerce.DeleteProduct)

	cart := api.Group("/cart")
	{
		cart.GET("", h.Commerce.GetCart)
		cart.POST("/items", h.Commerce.AddToCart)
		cart.DELETE("/items/:productId", h.Commerce.RemoveFromCart)
		cart.POST("/checkout", h.Commerce.Checkout)
	}
	api.GET("/purchases", h.Commerce.ListPurchases)
	api.POST("/subscription", h.Commerce.BuySubscription)
	api.DELETE("/subscription", h.Commerce.CancelSubscription)

	friends := api.Group("/friends")
	{
		friends.GET("", h.Social.ListFriends)
		friends.DELETE("/:userId", h.Social.RemoveFriend)
		friends.GET("/requests", h.Social.ListPendingRequests)
		friends.POST("/requests", h.Social.SendFriendRequest)
		friends.POST("/requests/:requestId/accept", h.Social.AcceptFriendRequest)
		friends.DELETE("/requests/:requestId", h.Social.RejectFriendRequest)
	}
	api.POST("/follows/:userId", h.Social.Follow)
	api.DELETE("/follows/:userId", h.Social.Unfollow)
	api.GET("/followers", h.Social.ListFollowers)
	api.GET("/following", h.Social.ListFollowing)
	api.GET("/blocks", h.Social.ListBlocked)
	api.POST("/blocks/:userId", h.Social.Block)
	api.DELETE("/blocks/:userId", h.Social.Unblock)

	rooms := api.Group("/rooms")
	{
		rooms.POST("", h.Watch.CreateRoom)
		rooms.GET("", h.Watch.ListRooms)
		rooms.GET("/:roomId", h.Watch.GetRoom)
		rooms.POST("/:roomId/join", h.Watch.JoinRoom)
		rooms.POST("/:roomId/leave", h.Watch.LeaveRoom)
		rooms.POST("/:roomId/play", h.Watch.Play)
		rooms.POST("/:roomId/pause", h.Watch.Pause)
		rooms.POST("/:roomId/seek", h.Watch.Seek)
		rooms.GET("/:roomId/participants", h.Watch.ListParticipants)
		rooms.POST("/:roomId/invite", h.Watch.Invite)
	}

	users := api.Group("/users/:userId")
	{
		users.GET("", h.User.GetUser)
		users.GET("/presence", h.User.GetPresence)
		users.GET("/relationship", h.Social.Relationship)
	}
	api.PUT("/me/settings", h.User.UpdateSettings)

	admin := api.Group("/admin", middleware.RequireAdmin())
	{
		admin.POST("/users/:userId/credit", h.Wallet.Credit)
		admin.PUT("/users/:userId/subscription", h.Commerce.SetSubscription)
		admin.POST("/users/:userId/approve", h.User.ApproveUser)
		admin.DELETE("/rooms/:roomId", h.Watch.DeleteRoom)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger, timeProvider coreport.TimeProvider) {
	// Order matters: recovery wraps everything, request ids precede logging
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.Logger(logger, timeProvider))
	router.Use(middleware.CORS())
}
