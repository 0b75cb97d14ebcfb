package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/learnsphere/learnsphere-backend/internal/cache"
	"github.com/learnsphere/learnsphere-backend/internal/clients/classcentral"
	"github.com/learnsphere/learnsphere-backend/internal/clients/gemini"
	"github.com/learnsphere/learnsphere-backend/internal/clients/reddit"
	"github.com/learnsphere/learnsphere-backend/internal/db"
	"github.com/learnsphere/learnsphere-backend/internal/handlers"
	"github.com/learnsphere/learnsphere-backend/internal/logger"
	"github.com/learnsphere/learnsphere-backend/internal/repos"
	"github.com/learnsphere/learnsphere-backend/internal/sentiment"
	"github.com/learnsphere/learnsphere-backend/internal/server"
	"github.com/learnsphere/learnsphere-backend/internal/services"
	"github.com/learnsphere/learnsphere-backend/internal/utils"
)

func main() {
	_ = godotenv.Load()

	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// DB
	sqliteService, err := db.NewSQLiteService(log)
	if err != nil {
		log.Error("SQLite init failed", "error", err)
		os.Exit(1)
	}
	if err = sqliteService.AutoMigrateAll(); err != nil {
		log.Error("SQLite auto migration failed", "error", err)
		os.Exit(1)
	}
	theDB := sqliteService.DB()

	// Cache: Redis when configured, GORM-backed otherwise.
	var store cache.Store
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		redisStore, err := cache.NewRedisStore(log)
		if err != nil {
			log.Warn("Redis init failed, falling back to DB cache", "error", err)
			store = cache.NewGormStore(theDB, log)
		} else {
			store = redisStore
		}
	} else {
		store = cache.NewGormStore(theDB, log)
	}

	// Repos
	log.Info("Setting up Repos from main...")
	queryRepo := repos.NewQueryRepo(theDB, log)
	chatLogRepo := repos.NewChatLogRepo(theDB, log)
	timelineRepo := repos.NewTimelineRepo(theDB, log)

	// Clients
	log.Info("Setting up Clients from main...")
	courseClient := classcentral.NewClient(log)
	forumClient := reddit.NewClient(log)
	geminiClient, err := gemini.NewClient(context.Background(), log)
	if err != nil {
		log.Error("Could not init Gemini client", "error", err)
		os.Exit(1)
	}
	scorer := sentiment.NewVaderScorer()

	// Services
	log.Info("Setting up Services from main...")
	recService := services.NewRecommendationService(theDB, log, store, courseClient, forumClient, scorer, queryRepo)
	timelineService := services.NewTimelineService(theDB, log, store, geminiClient, timelineRepo, chatLogRepo)

	// Handlers
	log.Info("Setting up handlers from main...")
	recommendHandler := handlers.NewRecommendHandler(log, recService, timelineService)
	timelineHandler := handlers.NewTimelineHandler(log, timelineService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		RecommendHandler: recommendHandler,
		TimelineHandler:  timelineHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	fmt.Printf("Server listening on :%s\n", port)
	if err := router.Run(":" + port); err != nil {
		log.Warn("Server failed", "error", err)
	}
}
