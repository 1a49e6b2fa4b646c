package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"drinkjoy/backend/internal/domain"
	"drinkjoy/backend/internal/scoring"
)

// handleRecommendations runs the primary engine over the catalog and
// returns the composed, ranked list.
func (s *Server) handleRecommendations(c *gin.Context) {
	var req RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}

	start := time.Now()
	drinks, likes, err := s.loadInputs()
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	reading := s.currentWeather(c, req.Preferences)

	engine := scoring.NewEngine(s.safety)
	items := engine.Compose(drinks, req.Preferences, reading, likes, req.Limit)

	c.JSON(http.StatusOK, RecommendResponse{
		SessionID:        uuid.NewString(),
		Items:            candidatesToDTO(items, likes),
		WeatherUsed:      reading != nil,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	})
}

// handleMoreOptions runs the supplementary pass, either within the
// requested category or across all of them.
func (s *Server) handleMoreOptions(c *gin.Context) {
	var req MoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}

	start := time.Now()
	drinks, likes, err := s.loadInputs()
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}

	engine := scoring.NewEngine(s.safety)
	var items []domain.ScoredCandidate
	if req.AllCategories {
		items = engine.AdditionalDrinksFromAllCategories(drinks, req.Preferences, req.ExcludeIDs, likes, req.Limit)
	} else {
		items = engine.AdditionalDrinks(drinks, req.Preferences, req.ExcludeIDs, likes, req.Limit)
	}

	c.JSON(http.StatusOK, RecommendResponse{
		SessionID:        uuid.NewString(),
		Items:            candidatesToDTO(items, likes),
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	})
}

// handleChatMatches scores the catalog with the chat-side classifier and
// returns the three quality tiers.
func (s *Server) handleChatMatches(c *gin.Context) {
	var req ChatMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}

	start := time.Now()
	drinks, likes, err := s.loadInputs()
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}

	matches := s.chat.Classify(drinks, req.Preferences())
	perfect, good, other := tiersToDTO(matches, likes)

	c.JSON(http.StatusOK, ChatMatchResponse{
		SessionID:        uuid.NewString(),
		PerfectMatches:   perfect,
		GoodMatches:      good,
		OtherMatches:     other,
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	})
}

// loadInputs fetches the catalog snapshot and the popularity map. A likes
// failure degrades to an empty map; the catalog is required.
func (s *Server) loadInputs() ([]domain.Drink, map[string]int, error) {
	drinks, err := s.catalog.All()
	if err != nil {
		return nil, nil, err
	}
	likes, err := s.db.LikeCounts()
	if err != nil {
		logrus.WithError(err).Warn("load like counts")
		likes = map[string]int{}
	}
	return drinks, likes, nil
}

// currentWeather fetches the weather reading when the caller opted in.
// Fetch failures degrade to no reading; scoring skips the weather bonus.
func (s *Server) currentWeather(c *gin.Context, prefs domain.Preferences) *domain.WeatherReading {
	if !prefs.UseWeather || s.weatherClient == nil {
		return nil
	}
	reading, err := s.weatherClient.Current(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Warn("fetch current weather")
		return nil
	}
	return reading
}
