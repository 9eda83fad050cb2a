// Package sentryhelper resolves the per-request Sentry hub so captures made
// while serving one request carry that request's scope.
package sentryhelper

import (
	"context"

	sentry "github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-gonic/gin"
)

// HubFromGin returns the hub sentrygin cloned for this request.
// Falls back to the hub on the request context, then CurrentHub.
func HubFromGin(c *gin.Context) *sentry.Hub {
	if hub := sentrygin.GetHubFromContext(c); hub != nil {
		return hub
	}
	return HubFromContext(c.Request.Context())
}

// HubFromContext retrieves the hub bound to ctx, or CurrentHub.
func HubFromContext(ctx context.Context) *sentry.Hub {
	if ctx == nil {
		return sentry.CurrentHub()
	}
	if hub := sentry.GetHubFromContext(ctx); hub != nil {
		return hub
	}
	return sentry.CurrentHub()
}

// CaptureException captures err on the request's hub with the given tags.
func CaptureException(c *gin.Context, err error, tags map[string]string) *sentry.EventID {
	hub := HubFromGin(c)
	var id *sentry.EventID
	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		id = hub.CaptureException(err)
	})
	return id
}

// SetRequestTags tags the request scope so later events can be correlated.
func SetRequestTags(c *gin.Context, tags map[string]string) {
	HubFromGin(c).ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
	})
}
