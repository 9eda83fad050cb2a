package handlers

// handlers forward catalog requests to the provider and return its data
// unmodified. Any provider failure becomes a 500 with an {error} envelope.

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"playcatalog/config"
	"playcatalog/metrics"
	"playcatalog/models"
	"playcatalog/pages"
	"playcatalog/playstore"
	"playcatalog/sentryhelper"
)

// Provider is the catalog data source the gateway forwards to.
type Provider interface {
	Search(ctx context.Context, opts playstore.SearchOptions) ([]models.SearchResult, error)
	App(ctx context.Context, opts playstore.AppOptions) (*models.AppDetail, error)
	Reviews(ctx context.Context, opts playstore.ReviewsOptions) ([]models.Review, error)
	Media(ctx context.Context, opts playstore.AppOptions) (*models.MediaContent, error)
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type Manager struct {
	Provider Provider
	Catalog  config.CatalogConfig
	logger   *log.Entry
}

func NewManager(provider Provider, catalog config.CatalogConfig) *Manager {
	return &Manager{
		Provider: provider,
		Catalog:  catalog,
		logger:   log.WithFields(log.Fields{"module": "handlers"}),
	}
}

// NewRouter builds the gateway engine. Extra middleware (sentry, cors) runs
// after recovery and before the request logger.
func NewRouter(m *Manager, middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware...)
	router.Use(RequestID(), AccessLog(), metrics.Middleware())

	router.GET("/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(pages.Index))
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	m.RegisterRoutes(router.Group("/api"))
	return router
}

func (m *Manager) RegisterRoutes(r gin.IRouter) {
	r.GET("/search", m.Search)
	r.GET("/app/:id", m.AppDetail)
	r.GET("/reviews/:id", m.Reviews)
	r.GET("/app-media", m.AppMedia)
}

func (m *Manager) Search(c *gin.Context) {
	query := c.Query("query")

	start := time.Now()
	results, err := m.Provider.Search(c.Request.Context(), playstore.SearchOptions{
		Term:     query,
		Num:      m.Catalog.SearchLimit,
		Country:  m.Catalog.Country,
		Language: m.Catalog.Language,
	})
	metrics.RecordProviderCall("search", time.Since(start), err)
	if err != nil {
		m.fail(c, "search", err, map[string]string{"query": query})
		return
	}

	c.JSON(http.StatusOK, results)
}

func (m *Manager) AppDetail(c *gin.Context) {
	id := c.Param("id")

	start := time.Now()
	detail, err := m.Provider.App(c.Request.Context(), playstore.AppOptions{
		AppID:    id,
		Country:  m.Catalog.Country,
		Language: m.Catalog.Language,
	})
	metrics.RecordProviderCall("app", time.Since(start), err)
	if err != nil {
		m.fail(c, "app", err, map[string]string{"app_id": id})
		return
	}

	c.JSON(http.StatusOK, detail)
}

func (m *Manager) Reviews(c *gin.Context) {
	id := c.Param("id")

	start := time.Now()
	reviews, err := m.Provider.Reviews(c.Request.Context(), playstore.ReviewsOptions{
		AppID:    id,
		Sort:     playstore.SortNewest,
		Num:      m.Catalog.ReviewsLimit,
		Country:  m.Catalog.Country,
		Language: m.Catalog.Language,
	})
	metrics.RecordProviderCall("reviews", time.Since(start), err)
	if err != nil {
		m.fail(c, "reviews", err, map[string]string{"app_id": id})
		return
	}

	c.JSON(http.StatusOK, reviews)
}

func (m *Manager) AppMedia(c *gin.Context) {
	id := c.Query("appId")

	start := time.Now()
	media, err := m.Provider.Media(c.Request.Context(), playstore.AppOptions{
		AppID:    id,
		Country:  m.Catalog.Country,
		Language: m.Catalog.Language,
	})
	metrics.RecordProviderCall("media", time.Since(start), err)
	if err != nil {
		m.fail(c, "media", err, map[string]string{"app_id": id})
		return
	}

	c.JSON(http.StatusOK, media)
}

func (m *Manager) fail(c *gin.Context, operation string, err error, tags map[string]string) {
	m.logger.WithFields(log.Fields{
		"function":   operation,
		"request_id": c.GetString(requestIDKey),
		"error":      err,
	}).Error("catalog provider call failed")

	tags["operation"] = operation
	sentryhelper.CaptureException(c, err, tags)

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
}
