// Package yahoofinance provides a client for the Yahoo Finance API via RapidAPI.
package yahoofinance

import (
	"os"
	"time"
)

// Config holds configuration for the Yahoo Finance API client.
type Config struct {
	RapidAPIKey  string        // RapidAPI key for authentication
	RapidAPIHost string        // RapidAPI host header value
	BaseURL      string        // Base URL for the API
	Timeout      time.Duration // HTTP request timeout; also bounds every provider call
}

// LoadConfig loads Yahoo Finance configuration from environment variables.
func LoadConfig() Config {
	return Config{
		RapidAPIKey:  os.Getenv("RAPIDAPI_KEY"),
		RapidAPIHost: os.Getenv("RAPIDAPI_HOST"),
		BaseURL:      os.Getenv("RAPIDAPI_BASE_URL"),
		Timeout:      10 * time.Second,
	}
}
