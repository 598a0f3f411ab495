package main

import (
	"fmt"
	"os"
	"time"

	"bidwise/internal/api/handlers"
	"bidwise/internal/api/middleware"
	"bidwise/internal/data"
	"bidwise/internal/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	env := os.Getenv("API_ENV")

	var log *zap.Logger
	var err error
	if env == "production" {
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	port := os.Getenv("API_PORT")
	if port == "" {
		port = "8080"
	}
	datasetPath := os.Getenv("DATASET_PATH")
	if datasetPath == "" {
		datasetPath = "data/train.csv"
	}
	modelDir := os.Getenv("MODEL_DIR")
	if modelDir == "" {
		modelDir = "models"
	}
	cacheTTL := time.Hour
	if raw := os.Getenv("RESULT_CACHE_TTL"); raw != "" {
		if parsed, err := time.ParseDuration(raw); err == nil {
			cacheTTL = parsed
		} else {
			log.Warn("invalid RESULT_CACHE_TTL, using default", zap.String("value", raw))
		}
	}

	// The replay log is materialized once at boot; simulation runs never do
	// I/O inside the loop.
	impressions, err := data.LoadImpressions(datasetPath)
	if err != nil {
		log.Fatal("load dataset", zap.String("path", datasetPath), zap.Error(err))
	}
	log.Info("dataset loaded", zap.String("path", datasetPath), zap.Int("rows", len(impressions)))

	campaigns := store.NewCampaigns()
	cache := store.NewResultCache(cacheTTL)

	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(middleware.CORS())
	router.Use(middleware.Logger(log))
	router.Use(middleware.ErrorHandler())

	campaignHandler := handlers.NewCampaignHandler(campaigns, cache)
	simulationHandler := handlers.NewSimulationHandler(campaigns, cache, impressions, modelDir, log)
	analyticsHandler := handlers.NewAnalyticsHandler(impressions, modelDir)
	strategyHandler := handlers.NewStrategyHandler()

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	{
		api.POST("/campaigns", campaignHandler.CreateCampaign)
		api.GET("/campaigns", campaignHandler.ListCampaigns)
		api.GET("/campaigns/:id", campaignHandler.GetCampaign)
		api.DELETE("/campaigns/:id", campaignHandler.DeleteCampaign)

		api.GET("/campaigns/:id/metrics", simulationHandler.GetMetrics)
		api.GET("/campaigns/:id/analytics", simulationHandler.GetAnalytics)
		api.POST("/campaigns/:id/simulate", simulationHandler.RunSimulation)

		api.GET("/strategies", strategyHandler.ListStrategies)

		api.GET("/eda", analyticsHandler.EDA)
		api.GET("/analytics/hourly", analyticsHandler.HourlyTrend)
		api.GET("/analytics/market-price", analyticsHandler.MarketPriceHistogram)
		api.GET("/analytics/feature-importance", analyticsHandler.FeatureImportance)
		api.GET("/analytics/confidence", analyticsHandler.Confidence)
	}

	addr := fmt.Sprintf(":%s", port)
	log.Info("starting API server", zap.String("addr", addr))
	if err := router.Run(addr); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
