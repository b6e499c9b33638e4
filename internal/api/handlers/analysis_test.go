package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jstittsworth/fpl-optimizer/internal/optimizer"
	"github.com/jstittsworth/fpl-optimizer/internal/predictor"
)

func newAnalysisRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := NewAnalysisHandler(predictor.NewStrategicScorer())
	router.POST("/predict", handler.PredictPoints)
	router.POST("/analyze/fixtures", handler.AnalyzeFixtures)
	return router
}

func analysisStats() []predictor.PlayerStats {
	return []predictor.PlayerStats{
		{ID: 1, Name: "Saka", Team: "Arsenal", Position: optimizer.Midfielder,
			Cost: 10.0, Form: 7.0, TotalPoints: 190, PointsPerGame: 6.5, Minutes: 2600, Ownership: 45,
			FDRAttack: 2, FDRDefence: 3, FDROverall: 2},
		{ID: 2, Name: "Watkins", Team: "Aston Villa", Position: optimizer.Forward,
			Cost: 9.0, Form: 6.1, TotalPoints: 170, PointsPerGame: 5.9, Minutes: 2800, Ownership: 35,
			FDRAttack: 4, FDRDefence: 4, FDROverall: 4},
	}
}

func TestPredictPointsEndpoint(t *testing.T) {
	router := newAnalysisRouter()

	w := postJSON(t, router, "/predict", gin.H{"players": analysisStats()})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := decodeEnvelope(t, w)
	require.True(t, env.Success)

	var catalog []optimizer.Player
	require.NoError(t, json.Unmarshal(env.Data, &catalog))
	require.Len(t, catalog, 2)
	for _, p := range catalog {
		assert.Greater(t, p.PredictedPoints, 0.0, "prediction for %s", p.Name)
	}
}

func TestPredictPointsInvalidBody(t *testing.T) {
	router := newAnalysisRouter()
	w := postJSON(t, router, "/predict", gin.H{"players": nil})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAnalyzeFixturesEndpoint(t *testing.T) {
	router := newAnalysisRouter()

	w := postJSON(t, router, "/analyze/fixtures", gin.H{"players": analysisStats()})

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	env := decodeEnvelope(t, w)
	require.True(t, env.Success)

	var analysis predictor.FixtureAnalysis
	require.NoError(t, json.Unmarshal(env.Data, &analysis))
	require.Len(t, analysis.TeamRankings, 2)
	assert.Equal(t, "Arsenal", analysis.TeamRankings[0].Team, "easier fixtures rank first")
	assert.Len(t, analysis.Recommendations[optimizer.Midfielder], 1)
	assert.Len(t, analysis.Recommendations[optimizer.Forward], 1)
}

func TestHealthEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", Health)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}
