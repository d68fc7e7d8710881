package server

import (
	"errors"
	"net/http"

	auction "auction-marketplace/internal/auctionService"
	auth "auction-marketplace/internal/authService"
	bidding "auction-marketplace/internal/biddingService"
	"auction-marketplace/internal/metrics"
	users "auction-marketplace/internal/userService"
	adminhandler "auction-marketplace/services/admin/handler"
	auctionhandler "auction-marketplace/services/auction/handler"
	authhandler "auction-marketplace/services/auth/handler"
	biddinghandler "auction-marketplace/services/bidding/handler"
	"auction-marketplace/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var errRouteNotFound = errors.New("route not found")

// Services bundles everything the router exposes
type Services struct {
	DB       *gorm.DB
	Bidding  *bidding.BiddingService
	Auctions *auction.AuctionService
	Auth     *auth.AuthService
	Users    *users.UserService
}

// SetupRouter configures all Gin routes for the application
func SetupRouter(svc Services, maxUploadSize int64) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	if maxUploadSize > 0 {
		router.MaxMultipartMemory = maxUploadSize
	}

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestIDMiddleware)     // correlate logs and responses
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(MetricsMiddleware)
	router.Use(AuthMiddleware(svc.Auth))

	router.GET("/healthz", healthHandler(svc.DB))
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	auctionHandler := auctionhandler.NewAuctionHandler(svc.Auctions)
	auctions := router.Group("/auctions")
	{
		auctions.GET("", auctionHandler.BrowseHandler)
		auctions.GET("/categories", auctionHandler.CategoriesHandler)
		auctions.GET("/search", auctionHandler.SearchHandler)
		auctions.GET("/:id", auctionHandler.DetailHandler)
		auctions.POST("/:id/like", auctionHandler.LikeHandler)
		auctions.POST("/:id/dislike", auctionHandler.DislikeHandler)
	}

	biddingHandler := biddinghandler.NewBiddingHandler(svc.Bidding)
	bids := router.Group("/bidding")
	{
		bids.POST("/place/:id", biddingHandler.PlaceBidHandler)
		bids.POST("/validate", biddingHandler.ValidateBidHandler)
		bids.GET("/history/:id", biddingHandler.BidHistoryHandler)
		bids.GET("/top/:id", biddingHandler.TopBidsHandler)
		bids.GET("/winning/:id", biddingHandler.WinningBidHandler)
		bids.GET("/my-bids", biddingHandler.MyBidsHandler)
	}

	authHandler := authhandler.NewAuthHandler(svc.Auth)
	session := router.Group("/auth")
	{
		session.POST("/register", authHandler.RegisterHandler)
		session.POST("/login", authHandler.LoginHandler)
		session.POST("/logout", authHandler.LogoutHandler)
		session.GET("/me", authHandler.MeHandler)
	}

	adminHandler := adminhandler.NewAdminHandler(svc.Auctions, svc.Bidding, svc.Users, maxUploadSize)
	admin := router.Group("/admin")
	{
		admin.GET("/dashboard", adminHandler.DashboardHandler)
		admin.GET("/auctions", adminHandler.ListAuctionsHandler)
		admin.POST("/auctions", adminHandler.CreateAuctionHandler)
		admin.PUT("/auctions/:id", adminHandler.UpdateAuctionHandler)
		admin.DELETE("/auctions/:id", adminHandler.DeleteAuctionHandler)
		admin.POST("/auctions/:id/image", adminHandler.UploadImageHandler)
		admin.GET("/bids", adminHandler.ListBidsHandler)
		admin.DELETE("/bids/:id", adminHandler.DeleteBidHandler)
		admin.GET("/users", adminHandler.ListUsersHandler)
		admin.DELETE("/users/:id", adminHandler.DeleteUserHandler)
	}

	router.NoRoute(func(c *gin.Context) {
		utils.JSONError(c, http.StatusNotFound, errRouteNotFound, "route not found")
	})

	return router
}

// healthHandler answers 200 while the database accepts connections
func healthHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db != nil {
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.PingContext(c.Request.Context())
			}
			if err != nil {
				utils.JSONError(c, http.StatusServiceUnavailable, err, "database unavailable")
				utils.Error("health check failed", map[string]any{"error": err.Error()})
				return
			}
		}
		utils.JSONResponse(c, http.StatusOK, gin.H{"status": "ok"}, "service healthy")
	}
}
