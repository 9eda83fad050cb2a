package config

import (
	"reflect"
	"testing"
)

func TestGetPort(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want string
	}{
		{"empty", "", "5000"},
		{"invalid", "abc", "5000"},
		{"zero", "0", "5000"},
		{"too_large", "70000", "5000"},
		{"valid", "8080", "8080"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("PORT", tt.env)
			if got := getPort(); got != tt.want {
				t.Errorf("getPort() = %q; want %q", got, tt.want)
			}
		})
	}
}

func TestGetSearchLimit(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int
	}{
		{"empty", "", 10},
		{"invalid", "foo", 10},
		{"zero", "0", 10},
		{"negative", "-10", 10},
		{"min", "1", 1},
		{"mid", "50", 50},
		{"max", "250", 250},
		{"over", "251", 250},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SEARCH_LIMIT", tt.env)
			if got := getSearchLimit(); got != tt.want {
				t.Errorf("getSearchLimit() = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestGetReviewsLimit(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want int
	}{
		{"empty", "", 100},
		{"invalid", "foo", 100},
		{"zero", "0", 100},
		{"min", "1", 1},
		{"max", "500", 500},
		{"over", "1000", 500},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("REVIEWS_LIMIT", tt.env)
			if got := getReviewsLimit(); got != tt.want {
				t.Errorf("getReviewsLimit() = %d; want %d", got, tt.want)
			}
		})
	}
}

func TestGetCORSOrigins(t *testing.T) {
	tests := []struct {
		name string
		env  string
		want []string
	}{
		{"empty", "", nil},
		{"wildcard", "*", nil},
		{"single", "http://localhost:3000", []string{"http://localhost:3000"}},
		{"list", " http://a.test , ,http://b.test", []string{"http://a.test", "http://b.test"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CORS_ORIGINS", tt.env)
			if got := getCORSOrigins(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("getCORSOrigins() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestNewConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "PLAY_COUNTRY", "PLAY_LANGUAGE", "SEARCH_LIMIT", "REVIEWS_LIMIT", "SENTRY_DSN"} {
		t.Setenv(key, "")
	}
	NewConfig()

	if Config.Catalog.Country != "id" || Config.Catalog.Language != "id" {
		t.Errorf("locale = %s/%s; want id/id", Config.Catalog.Country, Config.Catalog.Language)
	}
	if Config.Catalog.SearchLimit != 10 {
		t.Errorf("SearchLimit = %d; want 10", Config.Catalog.SearchLimit)
	}
	if Config.Catalog.ReviewsLimit != 100 {
		t.Errorf("ReviewsLimit = %d; want 100", Config.Catalog.ReviewsLimit)
	}
	if Config.Sentry.IsEnabled() {
		t.Error("sentry should be disabled without a DSN")
	}
	if !Config.Options.AllowAllOrigins() {
		t.Error("expected all origins allowed by default")
	}
}

func TestNewConfigOverrides(t *testing.T) {
	t.Setenv("PLAY_COUNTRY", "us")
	t.Setenv("PLAY_LANGUAGE", " en ")
	t.Setenv("SENTRY_DSN", "https://key@sentry.example/1")
	NewConfig()

	if Config.Catalog.Country != "us" || Config.Catalog.Language != "en" {
		t.Errorf("locale = %s/%s; want us/en", Config.Catalog.Country, Config.Catalog.Language)
	}
	if !Config.Sentry.IsEnabled() {
		t.Error("sentry should be enabled with a DSN")
	}
}
