package handler

import (
	"errors"
	"fmt"
	"net/http"

	"mycloud/internal/app/checkout"
	"mycloud/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// CheckoutCart оформляет заказ из корзины
// @Summary Оформление заказа
// @Description Создает заказ, переносит в него все позиции корзины и очищает корзину. При сбое переноса созданные услуги отменяются. Повторное нажатие до завершения отклоняется
// @Tags Checkout
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CheckoutRequest true "Способ оплаты"
// @Success 201 {object} dto.CheckoutResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/checkout [post]
func (h *Handler) CheckoutCart(ctx *gin.Context) {
	sessionID, email, ok := h.sessionFromContext(ctx)
	if !ok {
		return
	}

	var request dto.CheckoutRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	guardKey := "checkout:" + sessionID
	if !h.inflight.begin(guardKey) {
		h.errorResponse(ctx, http.StatusConflict, "оформление заказа уже выполняется")
		return
	}
	defer h.inflight.end(guardKey)

	items, err := h.loadAllCartItems(ctx, sessionID)
	if err != nil {
		h.billingError(ctx, err)
		return
	}

	// Справочник ОС нужен для разворачивания VPS-конфигураций
	osList, err := h.Billing.OperatingSystems(ctx.Request.Context(), sessionID, h.lang(ctx))
	if err != nil {
		h.billingError(ctx, err)
		return
	}

	order, err := h.Checkout.Checkout(ctx.Request.Context(), sessionID, items, osList.Results, request.PaymentMethod)
	if err != nil {
		var chkErr *checkout.Error
		switch {
		case errors.Is(err, checkout.ErrEmptyCart):
			h.errorResponse(ctx, http.StatusBadRequest, "корзина пуста")
			return
		case errors.Is(err, checkout.ErrPaymentMethod):
			h.errorResponse(ctx, http.StatusBadRequest, "неизвестный способ оплаты")
			return
		case errors.As(err, &chkErr):
			logrus.Error("Checkout failed: ", err)
			if order.ID == 0 {
				h.errorResponse(ctx, http.StatusBadGateway,
					fmt.Sprintf("не удалось оформить заказ №%d, позиции отменены", chkErr.OrderID))
				return
			}
			// заказ создан, не очистилась только корзина
		default:
			h.billingError(ctx, err)
			return
		}
	}

	// Черновик конфигуратора больше не нужен
	if err := h.Repository.ClearSelection(email); err != nil {
		logrus.Error("Error clearing selection: ", err)
	}

	ctx.JSON(http.StatusCreated, dto.CheckoutResponse{
		OrderID:       order.ID,
		TotalCost:     order.TotalCost.String(),
		PaymentMethod: request.PaymentMethod,
	})
}
