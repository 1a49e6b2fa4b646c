package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"drinkjoy/backend/internal/api"
	"drinkjoy/backend/internal/weather"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		logrus.WithError(err).Warn("load .env file")
	}

	baseDir, err := os.Getwd()
	if err != nil {
		logrus.Fatalf("determine working directory: %v", err)
	}

	dataDir := filepath.Join(baseDir, "data")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		logrus.Fatalf("create data directory: %v", err)
	}

	weatherCfg := weather.Config{
		Latitude:  40.7128,
		Longitude: -74.0060,
	}
	if v := strings.TrimSpace(os.Getenv("WEATHER_LAT")); v != "" {
		if lat, err := strconv.ParseFloat(v, 64); err == nil {
			weatherCfg.Latitude = lat
		}
	}
	if v := strings.TrimSpace(os.Getenv("WEATHER_LON")); v != "" {
		if lon, err := strconv.ParseFloat(v, 64); err == nil {
			weatherCfg.Longitude = lon
		}
	}
	if v := strings.TrimSpace(os.Getenv("WEATHER_BASE_URL")); v != "" {
		weatherCfg.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("WEATHER_TIMEOUT")); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			weatherCfg.Timeout = d
		}
	}
	if v := strings.TrimSpace(os.Getenv("WEATHER_CACHE_TTL")); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			weatherCfg.CacheTTL = d
		}
	}

	cfg := api.Config{
		DBPath:            filepath.Join(dataDir, "drinkjoy.db"),
		AllergenTermsPath: strings.TrimSpace(os.Getenv("ALLERGEN_TERMS_PATH")),
		AllowedOrigins: []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"https://drinkjoy.app",
		},
		WeatherConfig:  weatherCfg,
		DisableWeather: strings.EqualFold(strings.TrimSpace(os.Getenv("DISABLE_WEATHER")), "true"),
	}

	if override := strings.TrimSpace(os.Getenv("DRINKJOY_DB_PATH")); override != "" {
		cfg.DBPath = override
	}
	if origins := strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")); origins != "" {
		cfg.AllowedOrigins = strings.Split(origins, ",")
	}

	server, err := api.NewServer(cfg)
	if err != nil {
		logrus.Fatalf("create server: %v", err)
	}

	router, err := server.Router()
	if err != nil {
		logrus.Fatalf("configure router: %v", err)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logrus.Infof("starting drinkjoy backend on :%s", port)
	if err := router.Run(":" + port); err != nil {
		logrus.Fatalf("server exited: %v", err)
	}
}
