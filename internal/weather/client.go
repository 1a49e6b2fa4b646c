package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"drinkjoy/backend/internal/domain"
)

// Config drives the weather client behaviour.
type Config struct {
	BaseURL   string
	Latitude  float64
	Longitude float64
	Timeout   time.Duration
	CacheTTL  time.Duration
}

// Client fetches the current weather from the Open-Meteo API with basic
// caching. Fetch failures are the caller's concern; the scoring layer
// degrades to no weather bonus when a reading is unavailable.
type Client struct {
	httpClient *http.Client
	baseURL    string
	latitude   float64
	longitude  float64
	cacheTTL   time.Duration

	cacheMu sync.Mutex
	cached  *domain.WeatherReading
	fetched time.Time
}

// ErrUnavailable is returned when the upstream returns no usable reading.
var ErrUnavailable = errors.New("weather reading unavailable")

// NewClient constructs a weather client.
func NewClient(cfg Config) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = "https://api.open-meteo.com/v1/forecast"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ttl := cfg.CacheTTL
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		latitude:   cfg.Latitude,
		longitude:  cfg.Longitude,
		cacheTTL:   ttl,
	}
}

// Current returns the current weather reading, serving a cached value while
// it is fresh.
func (c *Client) Current(ctx context.Context) (*domain.WeatherReading, error) {
	if c == nil {
		return nil, errors.New("weather client is nil")
	}

	c.cacheMu.Lock()
	if c.cached != nil && time.Since(c.fetched) < c.cacheTTL {
		reading := *c.cached
		c.cacheMu.Unlock()
		return &reading, nil
	}
	c.cacheMu.Unlock()

	reading, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	c.cacheMu.Lock()
	c.cached = reading
	c.fetched = time.Now()
	c.cacheMu.Unlock()
	return reading, nil
}

func (c *Client) fetch(ctx context.Context) (*domain.WeatherReading, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(c.latitude, 'f', 4, 64))
	params.Set("longitude", strconv.FormatFloat(c.longitude, 'f', 4, 64))
	params.Set("current_weather", "true")

	endpoint := c.baseURL + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		// back off briefly and retry once
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(2 * time.Second):
		}
		resp.Body.Close()
		retryReq, retryErr := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if retryErr != nil {
			return nil, retryErr
		}
		retryReq.Header = req.Header.Clone()
		resp, err = c.httpClient.Do(retryReq)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather api status %d", resp.StatusCode)
	}

	var payload forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode weather response: %w", err)
	}
	if payload.CurrentWeather == nil {
		return nil, ErrUnavailable
	}

	return &domain.WeatherReading{
		TempC:     payload.CurrentWeather.Temperature,
		Condition: conditionLabel(payload.CurrentWeather.WeatherCode),
	}, nil
}

type forecastResponse struct {
	CurrentWeather *struct {
		Temperature float64 `json:"temperature"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
}

// conditionLabel collapses WMO weather codes into the coarse labels the
// scoring rules understand.
func conditionLabel(code int) string {
	switch {
	case code == 0:
		return "clear"
	case code >= 1 && code <= 3:
		return "cloudy"
	case code >= 45 && code <= 48:
		return "fog"
	case (code >= 51 && code <= 67) || (code >= 80 && code <= 82):
		return "rain"
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return "snow"
	case code >= 95:
		return "storm"
	default:
		return "cloudy"
	}
}
