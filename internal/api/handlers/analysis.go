package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/jstittsworth/fpl-optimizer/internal/predictor"
	"github.com/jstittsworth/fpl-optimizer/pkg/utils"
)

type AnalysisHandler struct {
	scorer predictor.ScoreSource
}

func NewAnalysisHandler(scorer predictor.ScoreSource) *AnalysisHandler {
	return &AnalysisHandler{scorer: scorer}
}

type analysisRequest struct {
	Players []predictor.PlayerStats `json:"players" binding:"required"`
}

// PredictPoints scores a raw stats pool and returns the optimizer-ready
// catalog, so callers can inspect or adjust scores before optimizing.
func (h *AnalysisHandler) PredictPoints(c *gin.Context) {
	var req analysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	predictions := h.scorer.PredictPoints(req.Players)
	utils.SendSuccess(c, predictor.BuildCatalog(req.Players, predictions))
}

// AnalyzeFixtures ranks teams by upcoming fixture ease and recommends the
// top picks per position.
func (h *AnalysisHandler) AnalyzeFixtures(c *gin.Context) {
	var req analysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request body", err.Error())
		return
	}

	predictions := h.scorer.PredictPoints(req.Players)
	utils.SendSuccess(c, predictor.AnalyzeFixtures(req.Players, predictions))
}
