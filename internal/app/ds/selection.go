package ds

import "time"

// SavedSelection — сохраненный выбор пользователя между визитами.
// В SPA это лежало в localStorage (выбранный тариф, черновик
// конфигурации, согласие на cookie); здесь хранится на сервере.
type SavedSelection struct {
	ID             uint      `gorm:"primaryKey"`
	UserEmail      string    `gorm:"type:varchar(100);uniqueIndex;not null"`
	SelectedTariff string    `gorm:"type:varchar(100)"`
	OrderDraft     string    `gorm:"type:text"` // JSON черновика конфигуратора
	CookieConsent  bool      `gorm:"type:boolean;default:false;not null"`
	UpdatedAt      time.Time `gorm:"not null"`
}
