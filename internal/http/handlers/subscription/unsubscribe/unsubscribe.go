// Package unsubscribe реализует HTTP-обработчик отписки от рассылки.
//
// Адрес передается query-параметром email. Синтаксис адреса не проверяется:
// достаточно совпадения с существующей записью. Запись не удаляется,
// подписчик лишь деактивируется.
package unsubscribe

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/campaign-manager/internal/http/response"
	"github.com/magabrotheeeer/campaign-manager/internal/lib/sl"
	"github.com/magabrotheeeer/campaign-manager/internal/services/subscription"
)

// Handler управляет HTTP-запросами на отписку.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики отписки.
type Service interface {
	Unsubscribe(ctx context.Context, email string) (subscription.Outcome, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.unsubscribe"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	addr := r.URL.Query().Get("email")
	if addr == "" {
		log.Error("email query parameter missing")
		render.JSON(w, r, response.Message(response.MsgNotProvided))
		return
	}

	outcome, err := h.service.Unsubscribe(r.Context(), addr)
	if err != nil {
		log.Error("failed to unsubscribe", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Message(response.MsgInternalError))
		return
	}

	if outcome == subscription.OutcomeNotFound {
		log.Info("unsubscribe for unknown email", slog.String("email", addr))
		render.JSON(w, r, response.Message(response.MsgNoSuchUser))
		return
	}

	log.Info("unsubscribe succeeded", slog.String("email", addr))
	render.JSON(w, r, response.Message(response.MsgUnsubscribed))
}
