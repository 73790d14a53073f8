// Package subscribe реализует HTTP-обработчик подписки на рассылку.
//
// Handler принимает JSON-запрос с email и именем, проверяет наличие полей,
// вызывает бизнес-логику подписки через сервис и возвращает фиксированное
// сообщение в JSON-формате. Все ожидаемые исходы отдаются со статусом 200.
package subscribe

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/campaign-manager/internal/http/response"
	"github.com/magabrotheeeer/campaign-manager/internal/lib/sl"
	"github.com/magabrotheeeer/campaign-manager/internal/models"
	"github.com/magabrotheeeer/campaign-manager/internal/services/subscription"
)

// Handler управляет HTTP-запросами на подписку.
type Handler struct {
	log      *slog.Logger        // Логгер для записи информации и ошибок
	service  Service             // Сервис бизнес-логики подписок
	validate *validator.Validate // Валидатор структуры входящих данных
}

// Service описывает интерфейс бизнес-логики подписки.
type Service interface {
	Subscribe(ctx context.Context, email, firstName string) (subscription.Outcome, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.subscription.subscribe"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req models.SubscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.JSON(w, r, response.Message(response.MsgNotProvided))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("required field missing", sl.Err(err))
		render.JSON(w, r, response.Message(response.MsgNotProvided))
		return
	}

	outcome, err := h.service.Subscribe(r.Context(), req.Email, req.FirstName)
	if err != nil {
		log.Error("failed to subscribe", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Message(response.MsgInternalError))
		return
	}

	switch outcome {
	case subscription.OutcomeInvalidEmail:
		log.Info("rejected invalid email", slog.String("email", req.Email))
		render.JSON(w, r, response.Message(response.MsgInvalidEmail))
	case subscription.OutcomeAlreadySubscribed:
		render.JSON(w, r, response.Message(response.MsgAlreadySubscribed))
	default:
		log.Info("subscribe succeeded", slog.String("email", req.Email))
		render.JSON(w, r, response.Message(response.MsgSubscribed))
	}
}
