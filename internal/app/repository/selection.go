package repository

import (
	"errors"
	"time"

	"mycloud/internal/app/ds"

	"gorm.io/gorm"
)

// Получить сохранённый выбор пользователя (тариф, черновик заказа, согласие на cookie)
func (r *Repository) GetSelection(email string) (*ds.SavedSelection, error) {
	var selection ds.SavedSelection
	err := r.db.Where("user_email = ?", email).First(&selection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &ds.SavedSelection{UserEmail: email}, nil
	}
	if err != nil {
		return nil, err
	}
	return &selection, nil
}

// Сохранить выбранный тариф и черновик конфигуратора
func (r *Repository) SaveSelection(email, tariff, draft string) error {
	var selection ds.SavedSelection
	err := r.db.Where("user_email = ?", email).First(&selection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		selection = ds.SavedSelection{UserEmail: email}
	} else if err != nil {
		return err
	}

	selection.SelectedTariff = tariff
	selection.OrderDraft = draft
	selection.UpdatedAt = time.Now()
	return r.db.Save(&selection).Error
}

// Запомнить согласие пользователя на использование cookie
func (r *Repository) SetCookieConsent(email string, consent bool) error {
	var selection ds.SavedSelection
	err := r.db.Where("user_email = ?", email).First(&selection).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		selection = ds.SavedSelection{UserEmail: email}
	} else if err != nil {
		return err
	}

	selection.CookieConsent = consent
	selection.UpdatedAt = time.Now()
	return r.db.Save(&selection).Error
}

// Очистить сохранённый выбор (после оформления заказа)
func (r *Repository) ClearSelection(email string) error {
	return r.db.Where("user_email = ?", email).
		Model(&ds.SavedSelection{}).
		Updates(map[string]interface{}{
			"selected_tariff": "",
			"order_draft":     "",
			"updated_at":      time.Now(),
		}).Error
}
