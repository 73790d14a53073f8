package campaignmanager

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/magabrotheeeer/campaign-manager/internal/http/handlers/subscription/health"
	"github.com/magabrotheeeer/campaign-manager/internal/http/handlers/subscription/subscribe"
	"github.com/magabrotheeeer/campaign-manager/internal/http/handlers/subscription/unsubscribe"
	"github.com/magabrotheeeer/campaign-manager/internal/http/mware"
	subservice "github.com/magabrotheeeer/campaign-manager/internal/services/subscription"
)

// RegisterRoutes регистрирует все маршруты приложения.
// Пути /subscribe и /unsubscribe — публичный контракт, менять нельзя.
func RegisterRoutes(r chi.Router, logger *slog.Logger, subscriptionService *subservice.SubscriptionService) {
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Group(func(r chi.Router) {
		r.Use(mware.RateLimit(logger))
		r.Post("/subscribe", subscribe.New(logger, subscriptionService).ServeHTTP)
		r.Get("/unsubscribe", unsubscribe.New(logger, subscriptionService).ServeHTTP)
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
}
