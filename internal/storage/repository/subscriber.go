package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/magabrotheeeer/campaign-manager/internal/models"
)

// CreateSubscriber вставляет нового активного подписчика и возвращает его ID.
// Нарушение уникальности email транслируется в ErrSubscriberExists:
// именно ограничение схемы, а не предварительная проверка, закрывает гонку
// двух одновременных подписок на один адрес.
func (s *Storage) CreateSubscriber(ctx context.Context, email, firstName string) (int, error) {
	const op = "storage.CreateSubscriber"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO subscribers (email, first_name, is_active)
			  VALUES ($1, $2, TRUE)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query, email, firstName).Scan(&newID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return 0, fmt.Errorf("%s: %w", op, ErrSubscriberExists)
		}
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// FindSubscriberByEmail возвращает подписчика по адресу или ErrSubscriberNotFound.
func (s *Storage) FindSubscriberByEmail(ctx context.Context, email string) (*models.Subscriber, error) {
	const op = "storage.FindSubscriberByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, email, first_name, is_active
			  FROM subscribers WHERE email = $1`
	row := s.DB.QueryRowContext(ctx, query, email)

	var result models.Subscriber
	if err := row.Scan(&result.ID, &result.Email, &result.FirstName, &result.IsActive); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrSubscriberNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateSubscriberStatus меняет признак активности подписчика по адресу
// и возвращает количество изменённых строк.
func (s *Storage) UpdateSubscriberStatus(ctx context.Context, email string, isActive bool) (int, error) {
	const op = "storage.UpdateSubscriberStatus"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE subscribers SET is_active = $1 WHERE email = $2`
	result, err := s.DB.ExecContext(ctx, query, isActive, email)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// ListActiveEmails возвращает адреса всех активных подписчиков.
// Порядок не важен: письмо рассылки собирается одно на весь список.
func (s *Storage) ListActiveEmails(ctx context.Context) ([]string, error) {
	const op = "storage.ListActiveEmails"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT email FROM subscribers WHERE is_active = TRUE`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var result []string
	for rows.Next() {
		var addr string
		if err := rows.Scan(&addr); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, addr)
	}
	err = rows.Close()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
