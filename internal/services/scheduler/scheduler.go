// Package scheduler содержит логику планировщика рассылки: по фиксированному
// интервалу собирает одно письмо на всех активных подписчиков и публикует его
// в очередь. Сетевую отправку выполняет отдельный сервис-отправитель, поэтому
// тик планировщика не ждет завершения SMTP-сеанса.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/campaign-manager/internal/config"
	"github.com/magabrotheeeer/campaign-manager/internal/lib/mailtemplate"
	"github.com/magabrotheeeer/campaign-manager/internal/lib/sl"
	"github.com/magabrotheeeer/campaign-manager/internal/models"
	"github.com/magabrotheeeer/campaign-manager/internal/rabbitmq"
)

// Фиксированное текстовое тело письма, отдается клиентам без HTML.
const campaignTextBody = "Lorem ipsum blah blah blah"

// RecipientRepository описывает выборку получателей рассылки из хранилища.
type RecipientRepository interface {
	ListActiveEmails(ctx context.Context) ([]string, error)
}

// Publisher публикует собранное письмо в очередь рассылки.
type Publisher interface {
	Publish(exchange, routingKey string, message any) error
}

// SchedulerService собирает и публикует письма рассылки по расписанию.
type SchedulerService struct {
	repo RecipientRepository
	pub  Publisher
	cfg  config.Campaign
	log  *slog.Logger
}

// NewSchedulerService создает новый экземпляр SchedulerService.
func NewSchedulerService(repo RecipientRepository, pub Publisher, cfg config.Campaign, log *slog.Logger) *SchedulerService {
	return &SchedulerService{
		repo: repo,
		pub:  pub,
		cfg:  cfg,
		log:  log,
	}
}

// RunBroadcast запускает рассылку сразу, затем повторяет по интервалу
// до отмены контекста. Защиты от наложения запусков нет: при суточном
// интервале публикация завершается задолго до следующего тика.
func (s *SchedulerService) RunBroadcast(ctx context.Context) {
	s.runBroadcast(ctx)

	ticker := time.NewTicker(s.cfg.BroadcastInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runBroadcast(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (s *SchedulerService) runBroadcast(ctx context.Context) {
	s.log.Info("starting campaign broadcast run")

	recipients, err := s.repo.ListActiveEmails(ctx)
	if err != nil {
		s.log.Error("failed to list active subscribers", sl.Err(err))
		return
	}
	if len(recipients) == 0 {
		s.log.Info("no active subscribers, skipping broadcast")
		return
	}

	msg, err := s.composeMessage(recipients, time.Now())
	if err != nil {
		s.log.Error("failed to compose campaign message", sl.Err(err))
		return
	}

	if err := s.pub.Publish(rabbitmq.Exchange, rabbitmq.BroadcastRoutingKey, msg); err != nil {
		s.log.Error("failed to publish campaign message", sl.Err(err))
		return
	}
	s.log.Info("campaign message published", slog.Int("recipients", len(recipients)))
}

// composeMessage собирает письмо целиком: тема и текст фиксированы,
// HTML рендерится из шаблона с датой запуска и ссылкой на статью.
func (s *SchedulerService) composeMessage(recipients []string, now time.Time) (models.CampaignMessage, error) {
	const op = "services.scheduler.composeMessage"

	html, err := mailtemplate.Render(mailtemplate.Vars{
		PublishedDate: now.Format("2006-01-02"),
		ArticleURL:    s.cfg.ArticleURL,
	})
	if err != nil {
		return models.CampaignMessage{}, fmt.Errorf("%s: %w", op, err)
	}

	return models.CampaignMessage{
		Subject:    s.cfg.Subject,
		Recipients: recipients,
		TextBody:   campaignTextBody,
		HTMLBody:   html,
	}, nil
}
