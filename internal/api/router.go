package api

import (
	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/fpl-optimizer/internal/api/handlers"
	"github.com/jstittsworth/fpl-optimizer/internal/api/middleware"
	"github.com/jstittsworth/fpl-optimizer/internal/predictor"
	"github.com/jstittsworth/fpl-optimizer/internal/services"
	"github.com/jstittsworth/fpl-optimizer/pkg/config"
)

// SetupRoutes registers all API routes on the given group.
func SetupRoutes(rg *gin.RouterGroup, cfg *config.Config, cache *services.CacheService) {
	optimizerHandler := handlers.NewOptimizerHandler(cache, cfg)
	analysisHandler := handlers.NewAnalysisHandler(predictor.NewStrategicScorer())

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)

	rg.POST("/optimize", rateLimiter.Middleware(), optimizerHandler.OptimizeSquad)
	rg.POST("/predict", analysisHandler.PredictPoints)
	rg.POST("/analyze/fixtures", analysisHandler.AnalyzeFixtures)
}
