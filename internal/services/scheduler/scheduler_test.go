package scheduler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/campaign-manager/internal/config"
	"github.com/magabrotheeeer/campaign-manager/internal/models"
	"github.com/magabrotheeeer/campaign-manager/internal/rabbitmq"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) ListActiveEmails(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(exchange, routingKey string, message any) error {
	args := m.Called(exchange, routingKey, message)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func testCampaignConfig() config.Campaign {
	return config.Campaign{
		BroadcastInterval: 24 * time.Hour,
		Subject:           "Campaign",
		ArticleURL:        "https://example.com/article",
	}
}

func TestRunBroadcast_PublishesToActiveSubscribers(t *testing.T) {
	repo := new(MockRepository)
	pub := new(MockPublisher)

	// Два активных подписчика; неактивные отфильтрованы хранилищем.
	repo.On("ListActiveEmails", mock.Anything).
		Return([]string{"a@b.com", "c@d.org"}, nil)

	var published models.CampaignMessage
	pub.On("Publish", rabbitmq.Exchange, rabbitmq.BroadcastRoutingKey, mock.Anything).
		Run(func(args mock.Arguments) {
			published = args.Get(2).(models.CampaignMessage)
		}).
		Return(nil).Once()

	service := NewSchedulerService(repo, pub, testCampaignConfig(), newNoopLogger())
	service.runBroadcast(context.Background())

	assert.Equal(t, []string{"a@b.com", "c@d.org"}, published.Recipients)
	assert.Equal(t, "Campaign", published.Subject)
	assert.Equal(t, campaignTextBody, published.TextBody)
	assert.Contains(t, published.HTMLBody, "https://example.com/article")

	repo.AssertExpectations(t)
	pub.AssertExpectations(t)
}

func TestRunBroadcast_SkipsWhenNoActiveSubscribers(t *testing.T) {
	repo := new(MockRepository)
	pub := new(MockPublisher)

	repo.On("ListActiveEmails", mock.Anything).Return([]string{}, nil)

	service := NewSchedulerService(repo, pub, testCampaignConfig(), newNoopLogger())
	service.runBroadcast(context.Background())

	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestRunBroadcast_SkipsOnStorageError(t *testing.T) {
	repo := new(MockRepository)
	pub := new(MockPublisher)

	repo.On("ListActiveEmails", mock.Anything).Return(nil, errors.New("db error"))

	service := NewSchedulerService(repo, pub, testCampaignConfig(), newNoopLogger())
	service.runBroadcast(context.Background())

	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestComposeMessage(t *testing.T) {
	service := NewSchedulerService(new(MockRepository), new(MockPublisher), testCampaignConfig(), newNoopLogger())

	now := time.Date(2024, 5, 17, 10, 30, 0, 0, time.UTC)
	msg, err := service.composeMessage([]string{"a@b.com"}, now)
	require.NoError(t, err)

	assert.Equal(t, "Campaign", msg.Subject)
	assert.Equal(t, []string{"a@b.com"}, msg.Recipients)
	assert.Equal(t, campaignTextBody, msg.TextBody)
	assert.Contains(t, msg.HTMLBody, "2024-05-17")
	assert.Contains(t, msg.HTMLBody, `href="https://example.com/article"`)
}

func TestRunBroadcast_StopsOnContextCancel(t *testing.T) {
	repo := new(MockRepository)
	pub := new(MockPublisher)

	repo.On("ListActiveEmails", mock.Anything).Return([]string{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	service := NewSchedulerService(repo, pub, config.Campaign{
		BroadcastInterval: time.Hour,
		Subject:           "Campaign",
	}, newNoopLogger())

	done := make(chan struct{})
	go func() {
		service.RunBroadcast(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RunBroadcast did not stop after context cancellation")
	}
}
