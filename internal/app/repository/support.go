package repository

import (
	"fmt"
	"time"

	"mycloud/internal/app/ds"
)

// Создать обращение в поддержку
func (r *Repository) CreateTicket(ticket *ds.SupportTicket) error {
	ticket.Status = ds.TicketOpen
	ticket.CreatedAt = time.Now()
	return r.db.Create(ticket).Error
}

// Получить обращения пользователя (новые сверху)
func (r *Repository) GetTicketsByUser(email string) ([]ds.SupportTicket, error) {
	var tickets []ds.SupportTicket
	err := r.db.Where("user_email = ?", email).
		Order("created_at DESC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

// Получить обращение по ID (только своё)
func (r *Repository) GetTicketByID(id uint, email string) (*ds.SupportTicket, error) {
	var ticket ds.SupportTicket
	err := r.db.Where("id = ? AND user_email = ?", id, email).First(&ticket).Error
	if err != nil {
		return nil, fmt.Errorf("обращение не найдено")
	}
	return &ticket, nil
}

// Закрыть обращение
func (r *Repository) CloseTicket(id uint, email string) error {
	ticket, err := r.GetTicketByID(id, email)
	if err != nil {
		return err
	}
	if ticket.Status == ds.TicketClosed {
		return fmt.Errorf("обращение уже закрыто")
	}

	ticket.Status = ds.TicketClosed
	return r.db.Save(ticket).Error
}

// Ответить на обращение (для менеджера)
func (r *Repository) AnswerTicket(id uint, answer string) error {
	var ticket ds.SupportTicket
	err := r.db.Where("id = ?", id).First(&ticket).Error
	if err != nil {
		return fmt.Errorf("обращение не найдено")
	}
	if ticket.Status == ds.TicketClosed {
		return fmt.Errorf("обращение уже закрыто")
	}

	now := time.Now()
	ticket.Answer = answer
	ticket.Status = ds.TicketAnswered
	ticket.AnsweredAt = &now
	return r.db.Save(&ticket).Error
}

// Все открытые обращения (для менеджера)
func (r *Repository) GetOpenTickets() ([]ds.SupportTicket, error) {
	var tickets []ds.SupportTicket
	err := r.db.Where("status = ?", ds.TicketOpen).
		Order("created_at ASC").
		Find(&tickets).Error
	if err != nil {
		return nil, err
	}
	return tickets, nil
}

// Сохранить ключ вложения после загрузки в хранилище
func (r *Repository) SetTicketAttachment(id uint, email, key string) error {
	ticket, err := r.GetTicketByID(id, email)
	if err != nil {
		return err
	}
	ticket.AttachmentKey = key
	return r.db.Save(ticket).Error
}
