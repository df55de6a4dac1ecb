package main

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/casbin/casbin/v2"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/myhuemungusD/skatehubbamvp/config"
	"github.com/myhuemungusD/skatehubbamvp/controllers"
	"github.com/myhuemungusD/skatehubbamvp/db"
	"github.com/myhuemungusD/skatehubbamvp/middlewares"
	"github.com/myhuemungusD/skatehubbamvp/routes"
	"github.com/myhuemungusD/skatehubbamvp/services"
)

func main() {
	cfg, err := config.LoadConfig("./config/config.yml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()
	store, err := db.Connect(ctx, cfg.Database.URI)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer store.Disconnect(ctx)
	log.Println("Connected to MongoDB")

	// Redis is optional; without it the leaderboard reads straight from
	// the store on every request.
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Printf("Redis unavailable, leaderboard cache disabled: %v", err)
			rdb = nil
		}
	}

	enforcer, err := middlewares.InitCasbin(cfg.Database.URI)
	if err != nil {
		log.Fatalf("Failed to initialize RBAC: %v", err)
	}

	cache := services.NewLeaderboardCache(rdb, 5*time.Minute)
	users := services.NewUserService(store)
	if err := users.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create user indexes: %v", err)
	}
	notify := services.NewNotifyService(store, cfg.App.BaseURL)
	games := services.NewGameService(store, users, notify)
	reviews := services.NewReviewService(store, cache)
	submissions := services.NewSubmissionService(store)
	invites := services.NewInviteService(store, users, games, notify,
		time.Duration(cfg.Invites.TTLHours)*time.Hour)
	leaderboard := services.NewLeaderboardService(store, cache)

	sweeper, err := invites.StartSweeper(time.Duration(cfg.Invites.SweepMinutes) * time.Minute)
	if err != nil {
		log.Fatalf("Failed to start invite sweeper: %v", err)
	}
	defer func() { _ = sweeper.Shutdown() }()

	router := setupRouter(cfg, enforcer,
		controllers.NewAuthController(users, cfg.JWT.Secret, cfg.JWT.ExpiryMinutes),
		controllers.NewGameController(games),
		controllers.NewInviteController(invites),
		controllers.NewReviewController(reviews),
		controllers.NewSubmissionController(submissions),
		controllers.NewLeaderboardController(leaderboard),
	)

	port := strconv.Itoa(cfg.Server.Port)
	log.Printf("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func setupRouter(
	cfg *config.Config,
	enforcer *casbin.Enforcer,
	authCtrl *controllers.AuthController,
	gameCtrl *controllers.GameController,
	inviteCtrl *controllers.InviteController,
	reviewCtrl *controllers.ReviewController,
	submissionCtrl *controllers.SubmissionController,
	leaderboardCtrl *controllers.LeaderboardController,
) *gin.Engine {
	router := gin.Default()
	router.SetTrustedProxies([]string{"127.0.0.1", "localhost"})

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:5173", cfg.App.BaseURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	routes.SetupAuthRoutes(router, authCtrl)

	auth := router.Group("/")
	auth.Use(middlewares.AuthMiddleware(cfg.JWT.Secret))
	{
		routes.SetupProfileRoutes(auth, authCtrl)
		routes.SetupGameRoutes(auth, gameCtrl, inviteCtrl)
		routes.SetupChallengeRoutes(auth, enforcer, submissionCtrl)
		routes.SetupReviewRoutes(auth, enforcer, reviewCtrl, submissionCtrl)
		routes.SetupLeaderboardRoutes(auth, leaderboardCtrl)
	}

	return router
}
