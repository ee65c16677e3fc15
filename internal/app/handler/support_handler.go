package handler

import (
	"io"
	"net/http"
	"strconv"

	"mycloud/internal/app/ds"
	"mycloud/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// максимальный размер вложения тикета
const maxAttachmentSize = 10 << 20 // 10 MB

func (h *Handler) ticketDTO(ticket ds.SupportTicket) dto.TicketResponse {
	resp := dto.TicketResponse{
		ID:         ticket.ID,
		Subject:    ticket.Subject,
		Message:    ticket.Message,
		Answer:     ticket.Answer,
		Status:     ticket.Status,
		CreatedAt:  ticket.CreatedAt,
		AnsweredAt: ticket.AnsweredAt,
	}
	if ticket.AttachmentKey != "" {
		url, err := h.MinIOClient.AttachmentURL(ticket.AttachmentKey)
		if err != nil {
			logrus.Error("Error generating attachment URL: ", err)
		} else {
			resp.AttachmentURL = url
		}
	}
	return resp
}

// CreateTicket создает обращение в поддержку
// @Summary Создание обращения
// @Tags Support
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTicketRequest true "Тема и текст обращения"
// @Success 201 {object} dto.TicketResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/support/tickets [post]
func (h *Handler) CreateTicket(ctx *gin.Context) {
	_, email, ok := h.sessionFromContext(ctx)
	if !ok {
		return
	}

	var request dto.CreateTicketRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	ticket := ds.SupportTicket{
		UserEmail: email,
		Subject:   request.Subject,
		Message:   request.Message,
	}
	if err := h.Repository.CreateTicket(&ticket); err != nil {
		logrus.Error("Error creating ticket: ", err)
		h.errorResponse(ctx, http.StatusInternalServerError, "ошибка создания обращения")
		return
	}

	ctx.JSON(http.StatusCreated, h.ticketDTO(ticket))
}

// GetTickets возвращает обращения пользователя
// @Summary Список обращений
// @Tags Support
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/support/tickets [get]
func (h *Handler) GetTickets(ctx *gin.Context) {
	_, email, ok := h.sessionFromContext(ctx)
	if !ok {
		return
	}

	tickets, err := h.Repository.GetTicketsByUser(email)
	if err != nil {
		logrus.Error("Error getting tickets: ", err)
		h.errorResponse(ctx, http.StatusInternalServerError, "ошибка чтения обращений")
		return
	}

	responses := make([]dto.TicketResponse, len(tickets))
	for i, t := range tickets {
		responses[i] = h.ticketDTO(t)
	}
	h.successResponse(ctx, http.StatusOK, "", responses)
}

// GetTicket возвращает обращение пользователя
// @Summary Обращение
// @Tags Support
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID обращения"
// @Success 200 {object} dto.TicketResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/support/tickets/{id} [get]
func (h *Handler) GetTicket(ctx *gin.Context) {
	_, email, ok := h.sessionFromContext(ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(ctx, http.StatusBadRequest, "неверный ID обращения")
		return
	}

	ticket, err := h.Repository.GetTicketByID(uint(id), email)
	if err != nil {
		h.errorResponse(ctx, http.StatusNotFound, err.Error())
		return
	}

	ctx.JSON(http.StatusOK, h.ticketDTO(*ticket))
}

// UploadTicketAttachment прикладывает файл к обращению
// @Summary Вложение обращения
// @Description Загружает файл в хранилище и привязывает его к обращению. Предыдущее вложение удаляется
// @Tags Support
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID обращения"
// @Param file formData file true "Файл вложения"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/support/tickets/{id}/attachment [post]
func (h *Handler) UploadTicketAttachment(ctx *gin.Context) {
	_, email, ok := h.sessionFromContext(ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(ctx, http.StatusBadRequest, "неверный ID обращения")
		return
	}

	ticket, err := h.Repository.GetTicketByID(uint(id), email)
	if err != nil {
		h.errorResponse(ctx, http.StatusNotFound, err.Error())
		return
	}

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, "файл не передан")
		return
	}
	if fileHeader.Size > maxAttachmentSize {
		h.errorResponse(ctx, http.StatusBadRequest, "файл больше 10 МБ")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, "не удалось прочитать файл")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.errorResponse(ctx, http.StatusInternalServerError, "не удалось прочитать файл")
		return
	}

	key, err := h.MinIOClient.UploadAttachment(data, fileHeader.Filename)
	if err != nil {
		logrus.Error("Error uploading attachment: ", err)
		h.errorResponse(ctx, http.StatusInternalServerError, "ошибка загрузки вложения")
		return
	}

	// Старое вложение заменяется новым
	oldKey := ticket.AttachmentKey
	if err := h.Repository.SetTicketAttachment(uint(id), email, key); err != nil {
		logrus.Error("Error saving attachment key: ", err)
		if delErr := h.MinIOClient.DeleteAttachment(key); delErr != nil {
			logrus.Error("Error deleting orphan attachment: ", delErr)
		}
		h.errorResponse(ctx, http.StatusInternalServerError, "ошибка сохранения вложения")
		return
	}
	if oldKey != "" {
		if err := h.MinIOClient.DeleteAttachment(oldKey); err != nil {
			logrus.Error("Error deleting old attachment: ", err)
		}
	}

	h.successResponse(ctx, http.StatusOK, "вложение загружено", nil)
}

// CloseTicket закрывает обращение
// @Summary Закрытие обращения
// @Tags Support
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID обращения"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/support/tickets/{id}/close [post]
func (h *Handler) CloseTicket(ctx *gin.Context) {
	_, email, ok := h.sessionFromContext(ctx)
	if !ok {
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(ctx, http.StatusBadRequest, "неверный ID обращения")
		return
	}

	if err := h.Repository.CloseTicket(uint(id), email); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	h.successResponse(ctx, http.StatusOK, "обращение закрыто", nil)
}

// GetOpenTickets возвращает открытые обращения всех пользователей
// @Summary Открытые обращения (менеджер)
// @Tags Support
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/support/queue [get]
func (h *Handler) GetOpenTickets(ctx *gin.Context) {
	tickets, err := h.Repository.GetOpenTickets()
	if err != nil {
		logrus.Error("Error getting open tickets: ", err)
		h.errorResponse(ctx, http.StatusInternalServerError, "ошибка чтения обращений")
		return
	}

	responses := make([]dto.TicketResponse, len(tickets))
	for i, t := range tickets {
		responses[i] = h.ticketDTO(t)
	}
	h.successResponse(ctx, http.StatusOK, "", responses)
}

// AnswerTicket отвечает на обращение
// @Summary Ответ на обращение (менеджер)
// @Tags Support
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID обращения"
// @Param request body dto.AnswerTicketRequest true "Текст ответа"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /api/support/tickets/{id}/answer [post]
func (h *Handler) AnswerTicket(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil || id == 0 {
		h.errorResponse(ctx, http.StatusBadRequest, "неверный ID обращения")
		return
	}

	var request dto.AnswerTicketRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Repository.AnswerTicket(uint(id), request.Answer); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	h.successResponse(ctx, http.StatusOK, "ответ отправлен", nil)
}
