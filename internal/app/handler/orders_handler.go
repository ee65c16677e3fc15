package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"mycloud/internal/app/dto"

	"github.com/gin-gonic/gin"
)

// GetOrders возвращает страницу заказов пользователя
// @Summary Список заказов
// @Description Возвращает заказы постранично, новые сверху. Для следующей страницы передается курсор next
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param page query string false "URL следующей страницы из поля next"
// @Success 200 {object} dto.OrderListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/orders [get]
func (h *Handler) GetOrders(ctx *gin.Context) {
	sessionID, _, ok := h.sessionFromContext(ctx)
	if !ok {
		return
	}

	page, err := h.Billing.Orders(ctx.Request.Context(), sessionID, ctx.Query("page"))
	if err != nil {
		h.billingError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OrderListResponse{
		Orders: page.Results,
		Next:   page.Next,
		Count:  int64(page.Count),
	})
}

// GetOrder возвращает заказ с услугами
// @Summary Заказ с услугами
// @Description Возвращает заказ вместе со всеми его услугами и их конфигурациями
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID заказа"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/orders/{id} [get]
func (h *Handler) GetOrder(ctx *gin.Context) {
	sessionID, _, ok := h.sessionFromContext(ctx)
	if !ok {
		return
	}

	orderID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || orderID == 0 {
		h.errorResponse(ctx, http.StatusBadRequest, "неверный ID заказа")
		return
	}

	order, err := h.Billing.OrderWithServices(ctx.Request.Context(), sessionID, orderID)
	if err != nil {
		h.billingError(ctx, err)
		return
	}

	h.successResponse(ctx, http.StatusOK, "", order)
}

// GetOrderServices возвращает страницу услуг пользователя
// @Summary Список услуг
// @Description Возвращает все услуги пользователя по всем заказам постранично
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param page query string false "URL следующей страницы из поля next"
// @Success 200 {object} dto.OrderServiceListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/order-services [get]
func (h *Handler) GetOrderServices(ctx *gin.Context) {
	sessionID, _, ok := h.sessionFromContext(ctx)
	if !ok {
		return
	}

	page, err := h.Billing.OrderServices(ctx.Request.Context(), sessionID, ctx.Query("page"))
	if err != nil {
		h.billingError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.OrderServiceListResponse{
		Services: page.Results,
		Next:     page.Next,
		Count:    int64(page.Count),
	})
}

// GetOrderService возвращает услугу заказа
// @Summary Услуга заказа
// @Description Возвращает услугу с конфигурацией, статусом и датами активации и продления
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID услуги"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/order-services/{id} [get]
func (h *Handler) GetOrderService(ctx *gin.Context) {
	sessionID, _, ok := h.sessionFromContext(ctx)
	if !ok {
		return
	}

	serviceID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || serviceID == 0 {
		h.errorResponse(ctx, http.StatusBadRequest, "неверный ID услуги")
		return
	}

	service, err := h.Billing.OrderServiceDetail(ctx.Request.Context(), sessionID, serviceID)
	if err != nil {
		h.billingError(ctx, err)
		return
	}

	h.successResponse(ctx, http.StatusOK, "", service)
}

// CancelOrderService отменяет услугу заказа
// @Summary Отмена услуги
// @Description Отменяет услугу в биллинге. Повторное нажатие до завершения первого запроса отклоняется
// @Tags Orders
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID услуги"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/order-services/{id}/cancel [post]
func (h *Handler) CancelOrderService(ctx *gin.Context) {
	sessionID, _, ok := h.sessionFromContext(ctx)
	if !ok {
		return
	}

	serviceID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || serviceID == 0 {
		h.errorResponse(ctx, http.StatusBadRequest, "неверный ID услуги")
		return
	}

	guardKey := fmt.Sprintf("cancel-service:%s:%d", sessionID, serviceID)
	if !h.inflight.begin(guardKey) {
		h.errorResponse(ctx, http.StatusConflict, "отмена уже выполняется")
		return
	}
	defer h.inflight.end(guardKey)

	if err := h.Billing.CancelOrderService(ctx.Request.Context(), sessionID, serviceID); err != nil {
		h.billingError(ctx, err)
		return
	}

	h.successResponse(ctx, http.StatusOK, "услуга отменена", nil)
}
