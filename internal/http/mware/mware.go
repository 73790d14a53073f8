// Package mware содержит HTTP middleware сервиса подписок.
package mware

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
	"golang.org/x/time/rate"

	"github.com/magabrotheeeer/campaign-manager/internal/http/response"
)

var limiter = rate.NewLimiter(1, 3)

// RateLimit ограничивает частоту запросов ко всем обработчикам процесса.
func RateLimit(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				log.Error("too many requests")
				w.WriteHeader(http.StatusTooManyRequests)
				render.JSON(w, r, response.Message("too many requests"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
