package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	appConfig "playcatalog/config"
	"playcatalog/handlers"
	"playcatalog/logging"
	"playcatalog/playstore"
	"playcatalog/sentry"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Error loading .env file: %v", err)
	}
	appConfig.NewConfig()
	logging.Init(appConfig.Config.Options.LogLevel, nil)
	sentry.Init(appConfig.Config.Sentry)
	defer sentry.Flush()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatal(err)
	}
}

func corsMiddleware(opts appConfig.Options) gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	if opts.AllowAllOrigins() {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = opts.CORSOrigins
	}
	corsConfig.ExposeHeaders = []string{handlers.RequestIDHeader}
	return cors.New(corsConfig)
}

func run(ctx context.Context) error {
	if appConfig.Config.Options.LogLevel != "debug" && appConfig.Config.Options.LogLevel != "trace" {
		gin.SetMode(gin.ReleaseMode)
	}

	manager := handlers.NewManager(playstore.New(), appConfig.Config.Catalog)
	router := handlers.NewRouter(manager,
		sentry.GetSentryGin(),
		corsMiddleware(appConfig.Config.Options),
	)

	port := appConfig.Config.Options.Port
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("Server running on port %s (country=%s, language=%s)",
			port, appConfig.Config.Catalog.Country, appConfig.Config.Catalog.Language)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
