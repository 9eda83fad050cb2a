package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware())
	router.GET("/api/app/:id", func(c *gin.Context) {
		c.Status(http.StatusTeapot)
	})
	router.GET("/metrics", gin.WrapH(Handler()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/app/com.example", nil))
	if w.Code != http.StatusTeapot {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusTeapot)
	}

	RecordProviderCall("search", 120*time.Millisecond, nil)
	RecordProviderCall("search", 80*time.Millisecond, errors.New("boom"))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body, _ := io.ReadAll(w.Body)
	text := string(body)

	for _, want := range []string{
		`playcatalog_http_requests_total{method="GET",route="/api/app/:id",status="418"} 1`,
		`playcatalog_provider_calls_total{operation="search",outcome="ok"} 1`,
		`playcatalog_provider_calls_total{operation="search",outcome="error"} 1`,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}
