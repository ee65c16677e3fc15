package handler

import (
	"net/http"

	"mycloud/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GetSelection возвращает сохраненный выбор пользователя
// @Summary Сохраненный выбор
// @Description Возвращает выбранный тариф, черновик конфигуратора и состояние согласия на cookie. Выбор переживает повторный вход
// @Tags Selection
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SelectionResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/selection [get]
func (h *Handler) GetSelection(ctx *gin.Context) {
	_, email, ok := h.sessionFromContext(ctx)
	if !ok {
		return
	}

	selection, err := h.Repository.GetSelection(email)
	if err != nil {
		logrus.Error("Error getting selection: ", err)
		h.errorResponse(ctx, http.StatusInternalServerError, "ошибка чтения сохраненного выбора")
		return
	}

	ctx.JSON(http.StatusOK, dto.SelectionResponse{
		Tariff:        selection.SelectedTariff,
		OrderDraft:    selection.OrderDraft,
		CookieConsent: selection.CookieConsent,
		UpdatedAt:     selection.UpdatedAt,
	})
}

// SaveSelection сохраняет выбор пользователя
// @Summary Сохранение выбора
// @Description Сохраняет выбранный тариф и черновик конфигуратора, чтобы восстановить их при следующем входе
// @Tags Selection
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SaveSelectionRequest true "Тариф и черновик"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/selection [put]
func (h *Handler) SaveSelection(ctx *gin.Context) {
	_, email, ok := h.sessionFromContext(ctx)
	if !ok {
		return
	}

	var request dto.SaveSelectionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Repository.SaveSelection(email, request.Tariff, request.OrderDraft); err != nil {
		logrus.Error("Error saving selection: ", err)
		h.errorResponse(ctx, http.StatusInternalServerError, "ошибка сохранения выбора")
		return
	}

	h.successResponse(ctx, http.StatusOK, "выбор сохранен", nil)
}

// SetCookieConsent фиксирует согласие на cookie
// @Summary Согласие на cookie
// @Tags Selection
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CookieConsentRequest true "Состояние согласия"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/selection/cookie-consent [put]
func (h *Handler) SetCookieConsent(ctx *gin.Context) {
	_, email, ok := h.sessionFromContext(ctx)
	if !ok {
		return
	}

	var request dto.CookieConsentRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Repository.SetCookieConsent(email, request.Consent); err != nil {
		logrus.Error("Error saving cookie consent: ", err)
		h.errorResponse(ctx, http.StatusInternalServerError, "ошибка сохранения согласия")
		return
	}

	h.successResponse(ctx, http.StatusOK, "согласие сохранено", nil)
}
