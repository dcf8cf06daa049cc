package server

import (
	auction "auction-backend/internal/auctionService"
	"auction-backend/internal/auth"
	"auction-backend/internal/config"
	user "auction-backend/internal/userService"
	auctionhandler "auction-backend/services/auction/handler"
	authhandler "auction-backend/services/auth/handler"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(cfg *config.Config, tokens *auth.TokenManager, auctionService *auction.AuctionService, userService *user.UserService) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORS.AllowOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
	}))

	auctionHandler := auctionhandler.NewAuctionHandler(auctionService)
	userHandler := authhandler.NewUserHandler(userService)

	v1 := router.Group("/api/v1")

	// Reads are open to anyone; writes check the caller identity set here
	auctions := v1.Group("/auction", OptionalAuth(tokens))
	{
		auctions.GET("/", auctionHandler.ListAuctionsHandler)
		auctions.POST("/", auctionHandler.CreateAuctionHandler)
		auctions.GET("/:id/", auctionHandler.GetAuctionHandler)
		auctions.PUT("/:id/", auctionHandler.UpdateAuctionHandler)
		auctions.PATCH("/:id/", auctionHandler.PatchAuctionHandler)
		auctions.DELETE("/:id/", auctionHandler.CancelAuctionHandler)
	}

	authGroup := v1.Group("/auth")
	{
		authGroup.POST("/register/", userHandler.RegisterHandler)
		authGroup.POST("/login/", userHandler.LoginHandler)
		authGroup.POST("/token/refresh/", userHandler.RefreshHandler)

		private := authGroup.Group("", RequireAuth(tokens))
		{
			private.POST("/logout/", userHandler.LogoutHandler)
			private.GET("/profile/", userHandler.ProfileHandler)
			private.PUT("/profile/", userHandler.UpdateProfileHandler)
			private.POST("/change-password/", userHandler.ChangePasswordHandler)
		}
	}

	return router
}
