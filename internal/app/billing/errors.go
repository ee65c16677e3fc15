package billing

import (
	"errors"
	"fmt"
)

var (
	// ErrSessionExpired — access и refresh токены недействительны,
	// пользователя нужно отправить на повторный вход
	ErrSessionExpired = errors.New("сессия истекла, требуется повторный вход")

	// ErrUnavailable — запрос ушел, ответа нет (сеть, DNS, таймаут)
	ErrUnavailable = errors.New("нет соединения с биллингом")

	// ErrBadCursor — курсор пагинации ведет не на биллинг. Курсор
	// приходит от клиента кабинета, подставлять его в авторизованный
	// запрос без проверки нельзя
	ErrBadCursor = errors.New("недопустимый курсор страницы")
)

// Ошибки клиентской валидации конфигуратора: отсекаются до сетевого вызова
var (
	ErrPlanRequired   = errors.New("не выбран план")
	ErrDomainRequired = errors.New("укажите доменное имя")
	ErrAddonRequired  = errors.New("не выбрано дополнение colocation")
)

// APIError — ответ биллинга со статусом вне 2xx. Message берется из
// поля detail тела ответа, иначе из запасной строки операции.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status: %d)", e.Message, e.StatusCode)
}

// errDetail — стандартная форма ошибки биллинга
type errDetail struct {
	Detail string `json:"detail"`
}
