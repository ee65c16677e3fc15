package ds

import "time"

// Статусы тикетов поддержки
const (
	TicketOpen     = "open"
	TicketAnswered = "answered"
	TicketClosed   = "closed"
)

// SupportTicket — обращение в поддержку. Биллинг не предоставляет
// эндпоинтов для тикетов, поэтому они живут в базе кабинета,
// вложения — в MinIO (AttachmentKey).
type SupportTicket struct {
	ID            uint      `gorm:"primaryKey"`
	UserEmail     string    `gorm:"type:varchar(100);index;not null"`
	Subject       string    `gorm:"type:varchar(200);not null"`
	Message       string    `gorm:"type:text;not null"`
	Status        string    `gorm:"type:varchar(20);default:'open';not null"`
	Answer        string    `gorm:"type:text"` // ответ менеджера
	AttachmentKey string    `gorm:"type:varchar(255)"` // пусто, если вложения нет
	CreatedAt     time.Time `gorm:"not null"`
	AnsweredAt    *time.Time
}
