// Package response содержит тип JSON-ответа сервиса подписок.
//
// Контракт унаследован от первой версии сервиса: все ожидаемые исходы,
// включая ошибки входных данных, возвращаются со статусом 200 и различаются
// только полем message. Клиенты ветвятся по тексту сообщения.
package response

// Response описывает структуру JSON-ответа сервера.
type Response struct {
	Message string `json:"message"`
}

// Фиксированные тексты сообщений. Менять нельзя: по ним ветвятся клиенты.
const (
	MsgSubscribed        = "user subscribed successfully"
	MsgAlreadySubscribed = "user already subscribed"
	MsgInvalidEmail      = "invalid email"
	// MsgNotProvided используется и для отписки без email — неточность
	// формулировки сохранена как часть контракта.
	MsgNotProvided   = "email or first_name not provided"
	MsgUnsubscribed  = "user successfully unsubscribed"
	MsgNoSuchUser    = "no such user exist"
	MsgInternalError = "internal error"
)

// Message возвращает Response с переданным текстом.
func Message(msg string) Response {
	return Response{Message: msg}
}
