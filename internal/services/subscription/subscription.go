// Package subscription реализует бизнес-логику подписки и отписки от рассылки.
//
// Сервис не удаляет записи: отписка переводит подписчика в неактивное состояние,
// повторная подписка активирует ту же запись с тем же ID.
package subscription

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/magabrotheeeer/campaign-manager/internal/lib/email"
	"github.com/magabrotheeeer/campaign-manager/internal/lib/sl"
	"github.com/magabrotheeeer/campaign-manager/internal/models"
	"github.com/magabrotheeeer/campaign-manager/internal/storage/repository"
)

// Outcome — исход операции подписки или отписки, по которому HTTP-слой
// выбирает текст ответа.
type Outcome string

const (
	// OutcomeSubscribed — подписчик создан или реактивирован.
	OutcomeSubscribed Outcome = "subscribed"
	// OutcomeAlreadySubscribed — подписчик уже активен, запись не менялась.
	OutcomeAlreadySubscribed Outcome = "already_subscribed"
	// OutcomeInvalidEmail — адрес не прошёл проверку синтаксиса.
	OutcomeInvalidEmail Outcome = "invalid_email"
	// OutcomeUnsubscribed — подписчик деактивирован.
	OutcomeUnsubscribed Outcome = "unsubscribed"
	// OutcomeNotFound — подписчик с таким адресом не найден.
	OutcomeNotFound Outcome = "not_found"
)

// SubscriberRepository описывает операции хранилища, нужные сервису подписок.
type SubscriberRepository interface {
	CreateSubscriber(ctx context.Context, email, firstName string) (int, error)
	FindSubscriberByEmail(ctx context.Context, email string) (*models.Subscriber, error)
	UpdateSubscriberStatus(ctx context.Context, email string, isActive bool) (int, error)
}

// SubscriptionService управляет жизненным циклом подписчиков.
type SubscriptionService struct {
	repo SubscriberRepository
	log  *slog.Logger
}

// NewSubscriptionService создает новый экземпляр SubscriptionService.
func NewSubscriptionService(repo SubscriberRepository, log *slog.Logger) *SubscriptionService {
	return &SubscriptionService{
		repo: repo,
		log:  log,
	}
}

// Subscribe подписывает адрес на рассылку. Синтаксис адреса проверяется до
// обращения к хранилищу. Конфликт уникальности при вставке означает, что
// параллельный запрос успел раньше, и трактуется как уже существующая подписка.
func (s *SubscriptionService) Subscribe(ctx context.Context, addr, firstName string) (Outcome, error) {
	const op = "services.subscription.Subscribe"

	if !email.IsValid(addr) {
		return OutcomeInvalidEmail, nil
	}

	sub, err := s.repo.FindSubscriberByEmail(ctx, addr)
	switch {
	case errors.Is(err, repository.ErrSubscriberNotFound):
		_, err = s.repo.CreateSubscriber(ctx, addr, firstName)
		if errors.Is(err, repository.ErrSubscriberExists) {
			s.log.Info("concurrent subscribe resolved by unique constraint", slog.String("email", addr))
			return OutcomeAlreadySubscribed, nil
		}
		if err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		s.log.Info("subscriber created", slog.String("email", addr))
		return OutcomeSubscribed, nil
	case err != nil:
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if !sub.IsActive {
		if _, err = s.repo.UpdateSubscriberStatus(ctx, addr, true); err != nil {
			return "", fmt.Errorf("%s: %w", op, err)
		}
		s.log.Info("subscriber reactivated", slog.String("email", addr))
		return OutcomeSubscribed, nil
	}

	return OutcomeAlreadySubscribed, nil
}

// Unsubscribe деактивирует подписчика. Повторная отписка уже неактивного
// подписчика также успешна: запись существует, деактивация идемпотентна.
// Синтаксис адреса здесь не проверяется.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, addr string) (Outcome, error) {
	const op = "services.subscription.Unsubscribe"

	_, err := s.repo.FindSubscriberByEmail(ctx, addr)
	if errors.Is(err, repository.ErrSubscriberNotFound) {
		return OutcomeNotFound, nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if _, err = s.repo.UpdateSubscriberStatus(ctx, addr, false); err != nil {
		s.log.Error("failed to deactivate subscriber", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("subscriber deactivated", slog.String("email", addr))
	return OutcomeUnsubscribed, nil
}
