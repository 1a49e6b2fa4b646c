package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"drinkjoy/backend/internal/catalog"
	"drinkjoy/backend/internal/domain"
	"drinkjoy/backend/internal/scoring"
	"drinkjoy/backend/internal/store"
	"drinkjoy/backend/internal/weather"
)

// Config defines server dependencies.
type Config struct {
	DBPath            string
	AllergenTermsPath string
	AllowedOrigins    []string
	SilentDB          bool
	WeatherConfig     weather.Config
	DisableWeather    bool
}

// Server wires HTTP handlers with persistence and scoring.
type Server struct {
	db             *store.Database
	catalog        *catalog.Service
	safety         *scoring.SafetyFilter
	chat           *scoring.ChatClassifier
	weatherClient  *weather.Client
	allowedOrigins []string
	allergenPath   string
}

// NewServer constructs the API server.
func NewServer(cfg Config) (*Server, error) {
	if cfg.DBPath == "" {
		return nil, errors.New("db path required")
	}
	db, err := store.Open(cfg.DBPath, cfg.SilentDB)
	if err != nil {
		return nil, err
	}

	safety, err := scoring.NewSafetyFilter(cfg.AllergenTermsPath)
	if err != nil {
		return nil, fmt.Errorf("safety filter: %w", err)
	}
	if err := safety.Validate(); err != nil {
		return nil, fmt.Errorf("safety filter: %w", err)
	}

	var weatherClient *weather.Client
	if cfg.DisableWeather {
		logrus.Info("weather lookups disabled via configuration")
	} else {
		weatherClient = weather.NewClient(cfg.WeatherConfig)
		logrus.WithFields(logrus.Fields{
			"lat": cfg.WeatherConfig.Latitude,
			"lon": cfg.WeatherConfig.Longitude,
			"ttl": cfg.WeatherConfig.CacheTTL,
		}).Info("weather lookups enabled")
	}

	server := &Server{
		db:             db,
		catalog:        catalog.NewService(db),
		safety:         safety,
		chat:           scoring.NewChatClassifier(safety),
		weatherClient:  weatherClient,
		allowedOrigins: cfg.AllowedOrigins,
		allergenPath:   cfg.AllergenTermsPath,
	}
	return server, nil
}

// Close releases the underlying database.
func (s *Server) Close() error {
	return s.db.Close()
}

// Router configures gin routes.
func (s *Server) Router() (*gin.Engine, error) {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowCredentials = true
	if len(s.allowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = s.allowedOrigins
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	corsCfg.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	r.Use(cors.New(corsCfg))

	r.GET("/api/healthz", s.handleHealth)
	r.GET("/api/config", s.handleConfig)

	api := r.Group("/api")
	{
		api.GET("/drinks", s.handleListDrinks)
		api.GET("/drinks/:id", s.handleGetDrink)
		api.POST("/drinks", s.handleSaveDrink)
		api.PUT("/drinks/:id", s.handleUpdateDrink)
		api.DELETE("/drinks/:id", s.handleDeleteDrink)
		api.POST("/drinks/:id/like", s.handleLike)
		api.GET("/drinks/:id/likes", s.handleLikes)
		api.POST("/recommendations", s.handleRecommendations)
		api.POST("/recommendations/more", s.handleMoreOptions)
		api.POST("/chat/matches", s.handleChatMatches)
	}

	return r, nil
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleConfig(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"allergen_terms_path": s.allergenPath,
		"catalog_size":        s.catalog.Count(),
		"weather_enabled":     s.weatherClient != nil,
	})
}

func (s *Server) handleListDrinks(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	if page < 0 {
		page = 0
	}
	pageSize, _ := strconv.Atoi(c.Query("pageSize"))
	if pageSize <= 0 {
		pageSize = 25
	}
	offset := page * pageSize

	rows, total, err := s.db.ListDrinks(c.Query("category"), offset, pageSize)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}

	likes, err := s.db.LikeCounts()
	if err != nil {
		logrus.WithError(err).Warn("load like counts")
		likes = map[string]int{}
	}

	dtos := make([]DrinkDTO, 0, len(rows))
	for _, row := range rows {
		dto := DrinkFromDomain(row.ToDomain(), likes[row.ID])
		dto.CreatedAt = row.CreatedAt
		dtos = append(dtos, dto)
	}
	c.JSON(http.StatusOK, DrinksResponse{Items: dtos, Total: total})
}

func (s *Server) handleGetDrink(c *gin.Context) {
	rec, err := s.db.GetDrink(c.Param("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.renderError(c, http.StatusNotFound, fmt.Errorf("drink %s not found", c.Param("id")))
		} else {
			s.renderError(c, http.StatusInternalServerError, err)
		}
		return
	}
	likes, err := s.db.Likes(rec.ID)
	if err != nil {
		logrus.WithError(err).Warn("load drink likes")
	}
	c.JSON(http.StatusOK, DrinkFromDomain(rec.ToDomain(), likes))
}

func (s *Server) handleSaveDrink(c *gin.Context) {
	var drink domain.Drink
	if err := c.ShouldBindJSON(&drink); err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	if err := validateDrink(drink); err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	if err := s.catalog.Save(drink); err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusCreated, DrinkFromDomain(drink, 0))
}

func (s *Server) handleUpdateDrink(c *gin.Context) {
	var drink domain.Drink
	if err := c.ShouldBindJSON(&drink); err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	drink.ID = c.Param("id")
	if err := validateDrink(drink); err != nil {
		s.renderError(c, http.StatusBadRequest, err)
		return
	}
	if _, err := s.db.GetDrink(drink.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.renderError(c, http.StatusNotFound, fmt.Errorf("drink %s not found", drink.ID))
		} else {
			s.renderError(c, http.StatusInternalServerError, err)
		}
		return
	}
	if err := s.catalog.Save(drink); err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	likes, _ := s.db.Likes(drink.ID)
	c.JSON(http.StatusOK, DrinkFromDomain(drink, likes))
}

func (s *Server) handleDeleteDrink(c *gin.Context) {
	if err := s.catalog.Delete(c.Param("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.renderError(c, http.StatusNotFound, fmt.Errorf("drink %s not found", c.Param("id")))
		} else {
			s.renderError(c, http.StatusInternalServerError, err)
		}
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleLike(c *gin.Context) {
	id := c.Param("id")
	if _, err := s.db.GetDrink(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.renderError(c, http.StatusNotFound, fmt.Errorf("drink %s not found", id))
		} else {
			s.renderError(c, http.StatusInternalServerError, err)
		}
		return
	}
	total, err := s.db.AddLike(id)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drink_id": id, "likes": total})
}

func (s *Server) handleLikes(c *gin.Context) {
	id := c.Param("id")
	total, err := s.db.Likes(id)
	if err != nil {
		s.renderError(c, http.StatusInternalServerError, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"drink_id": id, "likes": total})
}

func validateDrink(d domain.Drink) error {
	if strings.TrimSpace(d.ID) == "" {
		return errors.New("drink id required")
	}
	if strings.TrimSpace(d.Name) == "" {
		return errors.New("drink name required")
	}
	if !domain.ValidCategory(string(d.Category)) {
		return fmt.Errorf("unknown category %q", d.Category)
	}
	if d.ABV < 0 {
		return errors.New("abv must be non-negative")
	}
	return nil
}

func (s *Server) renderError(c *gin.Context, status int, err error) {
	if err == nil {
		err = errors.New("unknown error")
	}
	if status >= http.StatusInternalServerError {
		logrus.WithError(err).WithField("path", c.FullPath()).Error("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
