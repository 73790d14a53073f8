// Package models содержит доменные структуры рассылки: подписчика,
// а также вспомогательные типы для работы с данными из внешних источников (например, JSON-запросы).
package models

// Subscriber представляет одного участника рассылки.
// Поле IsActive — единственное изменяемое после создания: отписка не удаляет
// запись, а лишь переводит её в неактивное состояние.
type Subscriber struct {
	ID        int    // Уникальный идентификатор, назначается базой данных
	Email     string // Электронная почта, уникальна на уровне схемы
	FirstName string // Имя подписчика
	IsActive  bool   // Признак активной подписки
}

// SubscribeRequest используется для приёма данных из JSON-запроса на подписку.
type SubscribeRequest struct {
	Email     string `json:"email" validate:"required"`      // Электронная почта
	FirstName string `json:"first_name" validate:"required"` // Имя подписчика
}
