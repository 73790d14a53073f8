package subscription

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/campaign-manager/internal/models"
	"github.com/magabrotheeeer/campaign-manager/internal/storage/repository"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateSubscriber(ctx context.Context, email, firstName string) (int, error) {
	args := m.Called(ctx, email, firstName)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) FindSubscriberByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscriber), args.Error(1)
}

func (m *MockRepository) UpdateSubscriberStatus(ctx context.Context, email string, isActive bool) (int, error) {
	args := m.Called(ctx, email, isActive)
	return args.Int(0), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestSubscribe(t *testing.T) {
	tests := []struct {
		name        string
		email       string
		firstName   string
		setupMock   func(*MockRepository)
		wantOutcome Outcome
		wantErr     bool
	}{
		{
			name:      "новый подписчик создается",
			email:     "a@b.com",
			firstName: "Alice",
			setupMock: func(m *MockRepository) {
				m.On("FindSubscriberByEmail", mock.Anything, "a@b.com").
					Return(nil, repository.ErrSubscriberNotFound)
				m.On("CreateSubscriber", mock.Anything, "a@b.com", "Alice").Return(1, nil)
			},
			wantOutcome: OutcomeSubscribed,
		},
		{
			name:      "активный подписчик не меняется",
			email:     "a@b.com",
			firstName: "Alice",
			setupMock: func(m *MockRepository) {
				m.On("FindSubscriberByEmail", mock.Anything, "a@b.com").
					Return(&models.Subscriber{ID: 1, Email: "a@b.com", FirstName: "Alice", IsActive: true}, nil)
			},
			wantOutcome: OutcomeAlreadySubscribed,
		},
		{
			name:      "неактивный подписчик реактивируется",
			email:     "a@b.com",
			firstName: "Alice",
			setupMock: func(m *MockRepository) {
				m.On("FindSubscriberByEmail", mock.Anything, "a@b.com").
					Return(&models.Subscriber{ID: 1, Email: "a@b.com", FirstName: "Alice", IsActive: false}, nil)
				m.On("UpdateSubscriberStatus", mock.Anything, "a@b.com", true).Return(1, nil)
			},
			wantOutcome: OutcomeSubscribed,
		},
		{
			name:        "невалидный адрес не трогает хранилище",
			email:       "not-an-email",
			firstName:   "Alice",
			setupMock:   func(_ *MockRepository) {},
			wantOutcome: OutcomeInvalidEmail,
		},
		{
			name:      "конфликт уникальности при параллельной подписке",
			email:     "a@b.com",
			firstName: "Alice",
			setupMock: func(m *MockRepository) {
				m.On("FindSubscriberByEmail", mock.Anything, "a@b.com").
					Return(nil, repository.ErrSubscriberNotFound)
				m.On("CreateSubscriber", mock.Anything, "a@b.com", "Alice").
					Return(0, repository.ErrSubscriberExists)
			},
			wantOutcome: OutcomeAlreadySubscribed,
		},
		{
			name:      "ошибка хранилища пробрасывается",
			email:     "a@b.com",
			firstName: "Alice",
			setupMock: func(m *MockRepository) {
				m.On("FindSubscriberByEmail", mock.Anything, "a@b.com").
					Return(nil, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMock(repo)

			service := NewSubscriptionService(repo, newNoopLogger())
			outcome, err := service.Subscribe(context.Background(), tt.email, tt.firstName)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantOutcome, outcome)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestUnsubscribe(t *testing.T) {
	tests := []struct {
		name        string
		email       string
		setupMock   func(*MockRepository)
		wantOutcome Outcome
		wantErr     bool
	}{
		{
			name:  "активный подписчик деактивируется",
			email: "a@b.com",
			setupMock: func(m *MockRepository) {
				m.On("FindSubscriberByEmail", mock.Anything, "a@b.com").
					Return(&models.Subscriber{ID: 1, Email: "a@b.com", IsActive: true}, nil)
				m.On("UpdateSubscriberStatus", mock.Anything, "a@b.com", false).Return(1, nil)
			},
			wantOutcome: OutcomeUnsubscribed,
		},
		{
			name:  "повторная отписка тоже успешна",
			email: "a@b.com",
			setupMock: func(m *MockRepository) {
				m.On("FindSubscriberByEmail", mock.Anything, "a@b.com").
					Return(&models.Subscriber{ID: 1, Email: "a@b.com", IsActive: false}, nil)
				m.On("UpdateSubscriberStatus", mock.Anything, "a@b.com", false).Return(1, nil)
			},
			wantOutcome: OutcomeUnsubscribed,
		},
		{
			name:  "неизвестный адрес",
			email: "ghost@b.com",
			setupMock: func(m *MockRepository) {
				m.On("FindSubscriberByEmail", mock.Anything, "ghost@b.com").
					Return(nil, repository.ErrSubscriberNotFound)
			},
			wantOutcome: OutcomeNotFound,
		},
		{
			name:  "ошибка хранилища пробрасывается",
			email: "a@b.com",
			setupMock: func(m *MockRepository) {
				m.On("FindSubscriberByEmail", mock.Anything, "a@b.com").
					Return(nil, errors.New("db error"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockRepository)
			tt.setupMock(repo)

			service := NewSubscriptionService(repo, newNoopLogger())
			outcome, err := service.Unsubscribe(context.Background(), tt.email)

			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantOutcome, outcome)
			}
			repo.AssertExpectations(t)
		})
	}
}
