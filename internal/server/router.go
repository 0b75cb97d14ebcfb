package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/learnsphere/learnsphere-backend/internal/handlers"
)

type RouterConfig struct {
	RecommendHandler *handlers.RecommendHandler
	TimelineHandler  *handlers.TimelineHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "X-User-ID"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Discovery & ranking
		api.POST("/recommend", cfg.RecommendHandler.Recommend)
		api.GET("/queries", cfg.RecommendHandler.ListQueries)
		// Timeline & chat
		api.GET("/timeline/:course", cfg.TimelineHandler.GetTimeline)
		api.POST("/chat/:course", cfg.TimelineHandler.Chat)
		api.POST("/chat/:course/assist", cfg.TimelineHandler.Assist)
		api.GET("/chat/:course/history", cfg.TimelineHandler.History)
	}

	return router
}
