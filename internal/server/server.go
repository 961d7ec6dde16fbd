package server

import (
	"strings"
	"time"

	"anoa.com/bookloop/internal/client/googlebooks"
	"anoa.com/bookloop/internal/client/nytimes"
	"anoa.com/bookloop/internal/config"
	"anoa.com/bookloop/internal/handler"
	"anoa.com/bookloop/internal/middleware"
	"anoa.com/bookloop/internal/repository"
	"anoa.com/bookloop/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	bookRepo := repository.NewBookRepository(db)
	reviewRepo := repository.NewReviewRepository(db)
	interactionRepo := repository.NewInteractionRepository(db)
	pointsRepo := repository.NewPointsRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)
	streakRepo := repository.NewStreakRepository(db)
	readlistRepo := repository.NewReadlistRepository(db)
	followRepo := repository.NewFollowRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	meiliHost := cfg.MeiliSearchHost
	if !strings.HasPrefix(meiliHost, "http") {
		meiliHost = "http://" + meiliHost + ":7700"
	}
	meiliClient := meilisearch.New(meiliHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	searchSvc := service.NewSearchService(meiliClient)

	catalogClient := googlebooks.NewClient(cfg.GoogleBooksBaseURL, cfg.GoogleBooksAPIKey)
	bestsellerClient := nytimes.NewClient(cfg.NYTBaseURL, cfg.NYTAPIKey)

	notificationSvc := service.NewNotificationService(notificationRepo, redisClient)
	pointsSvc := service.NewPointsService(pointsRepo, notificationSvc)
	counters := service.NewActivityCounters(interactionRepo, reviewRepo)
	achievementSvc := service.NewAchievementService(achievementRepo, counters, pointsSvc, notificationSvc)
	streakSvc := service.NewStreakService(streakRepo)
	challengeSvc := service.NewChallengeService(challengeRepo, pointsSvc, notificationSvc)

	bookSvc := service.NewBookService(bookRepo, catalogClient, bestsellerClient, searchSvc)
	ratingSvc := service.NewRatingService(interactionRepo, bookSvc, bookRepo)
	favoriteSvc := service.NewFavoriteService(interactionRepo, bookSvc, bookRepo, achievementSvc)
	statusSvc := service.NewStatusService(interactionRepo, bookSvc, achievementSvc, streakSvc, challengeSvc)
	reviewSvc := service.NewReviewService(reviewRepo, bookRepo, achievementSvc, redisClient, cfg.RateLimitReview)
	readlistSvc := service.NewReadlistService(readlistRepo, bookSvc)
	followSvc := service.NewFollowService(followRepo, userRepo, notificationSvc)
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, time.Duration(cfg.JWTTTLMinutes)*time.Minute)

	authHandler := handler.NewAuthHandler(authSvc)
	bookHandler := handler.NewBookHandler(bookSvc, ratingSvc, favoriteSvc, statusSvc)
	reviewHandler := handler.NewReviewHandler(reviewSvc)
	gamificationHandler := handler.NewGamificationHandler(pointsSvc, achievementSvc, streakSvc)
	readlistHandler := handler.NewReadlistHandler(readlistSvc)
	followHandler := handler.NewFollowHandler(followSvc)
	challengeHandler := handler.NewChallengeHandler(challengeSvc)
	notificationHandler := handler.NewNotificationHandler(notificationSvc, redisClient)

	router := gin.New()

	setupCORS(router, cfg.AllowedOrigins)

	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(cfg.JWTSecret)

	api := router.Group("/api")

	// Public routes (no auth required)
	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	api.GET("/books/search", bookHandler.Search)
	api.GET("/books/bestsellers", bookHandler.Bestsellers)
	api.GET("/books/local-search", bookHandler.SearchLocal)
	api.GET("/books/:catalogID/ratings", bookHandler.RatingStats)
	api.GET("/books/id/:bookID/reviews", reviewHandler.ListForBook)
	api.GET("/reviews/:id", reviewHandler.Get)
	api.GET("/readlists/:id", readlistHandler.Get)
	api.GET("/leaderboard", gamificationHandler.Leaderboard)
	api.GET("/challenges", challengeHandler.ListActive)
	api.GET("/users/search", followHandler.Search)
	api.GET("/users/:userID/followers", followHandler.Followers)
	api.GET("/users/:userID/following", followHandler.Following)
	api.GET("/users/:userID/follow-counts", followHandler.Counts)

	// Protected routes (apply auth middleware explicitly)
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	protected.Use(middleware.WriteRateLimit(redisClient, cfg.RateLimitGlobal))
	{
		// Profile routes
		protected.GET("/profile", authHandler.Profile)
		protected.PUT("/profile", authHandler.UpdateProfile)

		// Book routes
		protected.POST("/books", bookHandler.Register)
		protected.POST("/books/rate", bookHandler.Rate)
		protected.POST("/books/favorites", bookHandler.AddFavorite)
		protected.DELETE("/books/favorites/:catalogID", bookHandler.RemoveFavorite)
		protected.GET("/books/favorites", bookHandler.ListFavorites)
		protected.POST("/books/status", bookHandler.SetStatus)
		protected.GET("/books/status", bookHandler.ListStatuses)
		protected.GET("/books/:catalogID/status", bookHandler.BookStatus)

		// Review routes
		protected.POST("/reviews", reviewHandler.Create)
		protected.PUT("/reviews/:id", reviewHandler.Update)
		protected.DELETE("/reviews/:id", reviewHandler.Delete)

		// Gamification routes
		protected.GET("/gamification/points", gamificationHandler.Account)
		protected.GET("/gamification/history", gamificationHandler.History)
		protected.GET("/gamification/achievements", gamificationHandler.Achievements)
		protected.GET("/gamification/streak", gamificationHandler.Streak)

		// Readlist routes
		protected.POST("/readlists", readlistHandler.Create)
		protected.GET("/readlists", readlistHandler.ListMine)
		protected.PUT("/readlists/:id", readlistHandler.Update)
		protected.DELETE("/readlists/:id", readlistHandler.Delete)
		protected.POST("/readlists/:id/books", readlistHandler.AddBook)
		protected.DELETE("/readlists/:id/books/:bookID", readlistHandler.RemoveBook)

		// Follow routes
		protected.POST("/users/:userID/follow", followHandler.Follow)
		protected.DELETE("/users/:userID/follow", followHandler.Unfollow)

		// Challenge routes
		protected.POST("/challenges", challengeHandler.Create)
		protected.POST("/challenges/:id/join", challengeHandler.Join)
		protected.GET("/challenges/mine", challengeHandler.Mine)

		// Notification routes
		protected.GET("/notifications", notificationHandler.List)
		protected.GET("/notifications/unread-count", notificationHandler.UnreadCount)
		protected.PUT("/notifications/:id/read", notificationHandler.MarkAsRead)
		protected.PUT("/notifications/read-all", notificationHandler.MarkAllAsRead)
		protected.GET("/notifications/ws", notificationHandler.HandleWebSocket)
	}

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
