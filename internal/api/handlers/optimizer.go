package handlers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/jstittsworth/fpl-optimizer/internal/optimizer"
	"github.com/jstittsworth/fpl-optimizer/internal/services"
	"github.com/jstittsworth/fpl-optimizer/pkg/config"
	"github.com/jstittsworth/fpl-optimizer/pkg/utils"
)

type OptimizerHandler struct {
	cache  *services.CacheService // nil when REDIS_URL is unset
	config *config.Config
}

func NewOptimizerHandler(cache *services.CacheService, cfg *config.Config) *OptimizerHandler {
	return &OptimizerHandler{
		cache:  cache,
		config: cfg,
	}
}

// OptimizeRequest carries the full player catalog plus per-call overrides.
// Every override is optional; omitted fields fall back to the standard FPL
// rule set (and the service-level default budget knobs).
type OptimizeRequest struct {
	Players []optimizer.Player `json:"players" binding:"required"`

	Budget         *float64 `json:"budget"`
	MinBudgetUsage *float64 `json:"min_budget_usage"`

	PositionQuotas map[optimizer.Position]int            `json:"position_quotas"`
	StartingBands  map[optimizer.Position]optimizer.Band `json:"starting_bands"`

	MaxPerTeam         *int                                 `json:"max_per_team"`
	TeamCountOverrides map[string]int                       `json:"team_count_overrides"`
	TeamPositionCaps   map[string]map[optimizer.Position]int `json:"team_position_caps"`

	ExpensiveThreshold      *float64 `json:"expensive_threshold"`
	VeryExpensiveThreshold  *float64 `json:"very_expensive_threshold"`
	MaxVeryExpensiveOnBench *int     `json:"max_very_expensive_on_bench"`

	ForcedIncludeIDs []int `json:"forced_include_ids"`
	ForcedExcludeIDs []int `json:"forced_exclude_ids"`

	PositionWeights map[optimizer.Position]float64 `json:"position_weights"`
}

// OptimizeSquad runs one squad optimization for the posted catalog.
func (h *OptimizerHandler) OptimizeSquad(c *gin.Context) {
	var req OptimizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	if len(req.Players) > h.config.MaxCatalogSize {
		utils.SendValidationError(c, "Catalog too large",
			fmt.Sprintf("Maximum allowed: %d players", h.config.MaxCatalogSize))
		return
	}

	cfg := h.buildOptimizerConfig(req)

	// Identical catalog+config requests are pure, so a cached result is
	// exact, not approximate.
	var cacheKey string
	if h.cache != nil {
		if hash, err := services.HashRequest(req); err == nil {
			cacheKey = services.SquadCacheKey(hash)
			var cached optimizer.Result
			if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil {
				utils.SendSuccess(c, &cached)
				return
			}
		}
	}

	result, err := optimizer.Optimize(req.Players, cfg)
	if err != nil {
		if isConfigError(err) {
			utils.SendValidationError(c, "Invalid optimization config", err.Error())
			return
		}
		logrus.WithError(err).Error("Squad optimization failed")
		utils.SendInternalError(c, "Optimization failed")
		return
	}

	if h.cache != nil && cacheKey != "" && result.Status == optimizer.StatusOptimal {
		expiration := time.Duration(h.config.CacheExpirationSeconds) * time.Second
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := h.cache.Set(ctx, cacheKey, result, expiration); err != nil {
			logrus.WithError(err).Warn("Failed to cache optimization result")
		}
	}

	utils.SendSuccess(c, result)
}

// buildOptimizerConfig layers request overrides onto the defaults.
func (h *OptimizerHandler) buildOptimizerConfig(req OptimizeRequest) optimizer.Config {
	cfg := optimizer.DefaultConfig()
	cfg.Budget = h.config.DefaultBudget
	cfg.MinBudgetUsage = h.config.DefaultMinBudgetUsage

	if req.Budget != nil {
		cfg.Budget = *req.Budget
	}
	if req.MinBudgetUsage != nil {
		cfg.MinBudgetUsage = *req.MinBudgetUsage
	}
	if len(req.PositionQuotas) > 0 {
		cfg.PositionQuotas = req.PositionQuotas
	}
	if len(req.StartingBands) > 0 {
		cfg.StartingBands = req.StartingBands
	}
	if req.MaxPerTeam != nil {
		cfg.MaxPerTeam = *req.MaxPerTeam
	}
	cfg.TeamCountOverrides = req.TeamCountOverrides
	cfg.TeamPositionCaps = req.TeamPositionCaps
	if req.ExpensiveThreshold != nil {
		cfg.ExpensiveThreshold = *req.ExpensiveThreshold
	}
	if req.VeryExpensiveThreshold != nil {
		cfg.VeryExpensiveThreshold = *req.VeryExpensiveThreshold
	}
	if req.MaxVeryExpensiveOnBench != nil {
		cfg.MaxVeryExpensiveOnBench = *req.MaxVeryExpensiveOnBench
	}
	cfg.ForcedIncludeIDs = req.ForcedIncludeIDs
	cfg.ForcedExcludeIDs = req.ForcedExcludeIDs
	if len(req.PositionWeights) > 0 {
		for pos, w := range req.PositionWeights {
			cfg.PositionWeights[pos] = w
		}
	}
	return cfg
}

func isConfigError(err error) bool {
	return strings.Contains(err.Error(), "invalid config") ||
		strings.Contains(err.Error(), "no candidate players")
}
