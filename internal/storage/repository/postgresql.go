// Package repository реализует хранилище данных на основе PostgreSQL
// для управления подписчиками рассылки. Предоставляет методы создания,
// поиска по адресу, смены статуса и выборки активных получателей.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// ErrSubscriberExists возвращается при нарушении уникальности email:
// параллельная подписка на тот же адрес успела вставить запись раньше.
var ErrSubscriberExists = errors.New("subscriber already exists")

// ErrSubscriberNotFound возвращается, когда подписчик с указанным адресом отсутствует.
var ErrSubscriberNotFound = errors.New("subscriber not found")

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с подписчиками.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// CheckDatabaseReady проверяет готовность базы данных.
func CheckDatabaseReady(storage *Storage) error {
	var exists bool
	err := storage.DB.QueryRow(`SELECT EXISTS (
        SELECT FROM information_schema.tables
        WHERE table_name = 'subscribers'
    )`).Scan(&exists)
	if err != nil || !exists {
		return fmt.Errorf("required table subscribers missing or query error: %w", err)
	}
	return nil
}
