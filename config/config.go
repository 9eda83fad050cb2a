package config

import (
	"os"
	"strconv"
	"strings"
)

type ConfigStruct struct {
	Options Options
	Catalog CatalogConfig
	Sentry  SentryConfig
}

type CatalogConfig struct {
	Country      string
	Language     string
	SearchLimit  int
	ReviewsLimit int
}

type SentryConfig struct {
	DSN     string
	Release string
}

type Options struct {
	Port        string
	LogLevel    string
	CORSOrigins []string
}

func (s *SentryConfig) IsEnabled() bool {
	return s.DSN != ""
}

func (o *Options) AllowAllOrigins() bool {
	return len(o.CORSOrigins) == 0
}

var Config *ConfigStruct

func NewConfig() {
	config := &ConfigStruct{
		Options: Options{
			Port:        getPort(),
			LogLevel:    os.Getenv("LOG_LEVEL"),
			CORSOrigins: getCORSOrigins(),
		},
		Catalog: CatalogConfig{
			Country:      getString("PLAY_COUNTRY", "id"),
			Language:     getString("PLAY_LANGUAGE", "id"),
			SearchLimit:  getSearchLimit(),
			ReviewsLimit: getReviewsLimit(),
		},
		Sentry: SentryConfig{
			DSN:     os.Getenv("SENTRY_DSN"),
			Release: os.Getenv("RELEASE"),
		},
	}

	Config = config
}

func getString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getPort() string {
	port := os.Getenv("PORT")
	if port == "" {
		return "5000"
	}
	if n, err := strconv.Atoi(port); err != nil || n <= 0 || n > 65535 {
		return "5000"
	}
	return port
}

func getCORSOrigins() []string {
	raw := os.Getenv("CORS_ORIGINS")
	if raw == "" || raw == "*" {
		return nil
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func getSearchLimit() int {
	limitStr := os.Getenv("SEARCH_LIMIT")
	if limitStr == "" {
		return 10
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return 10
	}
	if limit > 250 {
		return 250 // Play Store search never returns more than this
	}
	return limit
}

func getReviewsLimit() int {
	limitStr := os.Getenv("REVIEWS_LIMIT")
	if limitStr == "" {
		return 100
	}
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return 100
	}
	if limit > 500 {
		return 500
	}
	return limit
}
