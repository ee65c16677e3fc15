package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"mycloud/internal/app/billing"
	"mycloud/internal/app/dto"

	"github.com/gin-gonic/gin"
)

// cartItemDTO отображает позицию корзины в ответ кабинета
func cartItemDTO(item billing.CartItem, osList []billing.OperatingSystem) dto.CartItemResponse {
	resp := dto.CartItemResponse{
		ID:           item.ID,
		TariffName:   item.Configs.TariffName,
		Kind:         string(item.Configs.Kind()),
		MonthlyPrice: item.Configs.MonthlyPrice(),
		PeriodMonths: item.Configs.PeriodMonths,
		Domain:       item.Configs.Domain,
		AddonID:      item.Configs.AddonID,
	}
	if item.Configs.OS != "" {
		for _, os := range osList {
			if os.Name == item.Configs.OS {
				resp.OSID = os.ID
				break
			}
		}
	}
	return resp
}

// loadAllCartItems проходит все страницы корзины
func (h *Handler) loadAllCartItems(ctx *gin.Context, sessionID string) ([]billing.CartItem, error) {
	var items []billing.CartItem
	pageURL := ""
	for {
		page, err := h.Billing.CartItems(ctx.Request.Context(), sessionID, pageURL)
		if err != nil {
			return nil, err
		}
		items = append(items, page.Results...)
		if page.Next == nil {
			return items, nil
		}
		pageURL = *page.Next
	}
}

// GetCart возвращает содержимое корзины
// @Summary Корзина
// @Description Гарантирует наличие корзины в биллинге и возвращает первую страницу позиций вместе с итогом по всем позициям
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.CartResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/cart [get]
func (h *Handler) GetCart(ctx *gin.Context) {
	sessionID, _, ok := h.sessionFromContext(ctx)
	if !ok {
		return
	}

	if err := h.Billing.EnsureCart(ctx.Request.Context(), sessionID); err != nil {
		h.billingError(ctx, err)
		return
	}

	page, err := h.Billing.CartItems(ctx.Request.Context(), sessionID, "")
	if err != nil {
		h.billingError(ctx, err)
		return
	}

	items := make([]dto.CartItemResponse, len(page.Results))
	total := 0.0
	for i, item := range page.Results {
		items[i] = cartItemDTO(item, nil)
		total += item.Configs.MonthlyPrice()
	}

	// Итог считается по всем позициям, не только по первой странице
	if page.Next != nil {
		all, err := h.loadAllCartItems(ctx, sessionID)
		if err != nil {
			h.billingError(ctx, err)
			return
		}
		total = h.Checkout.Total(all)
	}

	ctx.JSON(http.StatusOK, dto.CartResponse{
		Items: items,
		Next:  page.Next,
		Count: int64(page.Count),
		Total: total,
	})
}

// GetCartPage подгружает следующую страницу корзины
// @Summary Следующая страница корзины
// @Description Возвращает страницу позиций по курсору next из предыдущего ответа
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Param page query string true "URL следующей страницы из поля next"
// @Success 200 {object} dto.CartResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/cart/items [get]
func (h *Handler) GetCartPage(ctx *gin.Context) {
	sessionID, _, ok := h.sessionFromContext(ctx)
	if !ok {
		return
	}

	pageURL := ctx.Query("page")
	if pageURL == "" {
		h.errorResponse(ctx, http.StatusBadRequest, "параметр page обязателен")
		return
	}

	page, err := h.Billing.CartItems(ctx.Request.Context(), sessionID, pageURL)
	if err != nil {
		h.billingError(ctx, err)
		return
	}

	items := make([]dto.CartItemResponse, len(page.Results))
	for i, item := range page.Results {
		items[i] = cartItemDTO(item, nil)
	}

	ctx.JSON(http.StatusOK, dto.CartResponse{
		Items: items,
		Next:  page.Next,
		Count: int64(page.Count),
	})
}

// AddToCart добавляет сконфигурированный тариф в корзину
// @Summary Добавление в корзину
// @Description Валидирует форму конфигуратора и создает позицию корзины. Для hosting обязателен домен, для colocation — дополнение
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.AddToCartRequest true "Форма конфигуратора"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/cart/items [post]
func (h *Handler) AddToCart(ctx *gin.Context) {
	sessionID, _, ok := h.sessionFromContext(ctx)
	if !ok {
		return
	}

	var request dto.AddToCartRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	lang := h.lang(ctx)
	tariff, err := h.Billing.TariffWithPlans(ctx.Request.Context(), sessionID, lang, request.Tariff)
	if err != nil {
		h.billingError(ctx, err)
		return
	}

	item := billing.ItemRequest{
		Tariff:    tariff,
		Domain:    strings.TrimSpace(request.Domain),
		Extension: request.Extension,
	}
	for i := range tariff.Plans {
		if tariff.Plans[i].ID == request.PlanID {
			item.Plan = &tariff.Plans[i]
			break
		}
	}
	if item.Plan == nil {
		h.errorResponse(ctx, http.StatusBadRequest, "план не принадлежит тарифу")
		return
	}

	// Справочники подтягиваются только для категорий, которым они нужны
	switch billing.Categorize(tariff.Name) {
	case billing.CategoryVPS:
		systems, err := h.Billing.OperatingSystems(ctx.Request.Context(), sessionID, lang)
		if err != nil {
			h.billingError(ctx, err)
			return
		}
		if request.OSID == 0 {
			// ОС не выбрана — первая из списка, как в конфигураторе
			if len(systems.Results) > 0 {
				item.OS = &systems.Results[0]
			}
		} else {
			for i := range systems.Results {
				if systems.Results[i].ID == request.OSID {
					item.OS = &systems.Results[i]
					break
				}
			}
		}
	case billing.CategoryColocation:
		if request.AddonID != 0 {
			addons, err := h.Billing.ActiveColocationAddons(ctx.Request.Context(), sessionID, lang)
			if err != nil {
				h.billingError(ctx, err)
				return
			}
			for i := range addons.Results {
				if addons.Results[i].ID == request.AddonID {
					item.Addon = &addons.Results[i]
					break
				}
			}
		}
	}

	// Валидация формы выполняется до обращений к корзине
	createReq, err := item.BuildCartItem()
	if err != nil {
		h.billingError(ctx, err)
		return
	}

	if err := h.Billing.EnsureCart(ctx.Request.Context(), sessionID); err != nil {
		h.billingError(ctx, err)
		return
	}

	created, err := h.Billing.CreateCartItem(ctx.Request.Context(), sessionID, createReq)
	if err != nil {
		h.billingError(ctx, err)
		return
	}

	h.successResponse(ctx, http.StatusCreated, "позиция добавлена в корзину", cartItemDTO(created, nil))
}

// EditCartItem изменяет домен или дополнение позиции корзины
// @Summary Изменение позиции корзины
// @Description Меняет домен (hosting) или дополнение (colocation) существующей позиции. Остальные поля конфигурации сохраняются
// @Tags Cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID позиции"
// @Param request body dto.EditCartItemRequest true "Новые значения"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/cart/items/{id} [patch]
func (h *Handler) EditCartItem(ctx *gin.Context) {
	sessionID, _, ok := h.sessionFromContext(ctx)
	if !ok {
		return
	}

	itemID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || itemID == 0 {
		h.errorResponse(ctx, http.StatusBadRequest, "неверный ID позиции")
		return
	}

	var request dto.EditCartItemRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	items, err := h.loadAllCartItems(ctx, sessionID)
	if err != nil {
		h.billingError(ctx, err)
		return
	}

	var current *billing.CartItem
	for i := range items {
		if items[i].ID == itemID {
			current = &items[i]
			break
		}
	}
	if current == nil {
		h.errorResponse(ctx, http.StatusNotFound, "позиция не найдена в корзине")
		return
	}

	configs := current.Configs
	switch current.Configs.Kind() {
	case billing.CategoryHosting:
		domain := strings.TrimSpace(request.Domain)
		if domain == "" {
			h.billingError(ctx, billing.ErrDomainRequired)
			return
		}
		configs.Domain = domain + request.Extension
	case billing.CategoryColocation:
		if request.AddonID == 0 {
			h.billingError(ctx, billing.ErrAddonRequired)
			return
		}
		addons, err := h.Billing.ActiveColocationAddons(ctx.Request.Context(), sessionID, h.lang(ctx))
		if err != nil {
			h.billingError(ctx, err)
			return
		}
		found := false
		for _, addon := range addons.Results {
			if addon.ID == request.AddonID {
				configs.Addon = addon.Name
				configs.AddonID = addon.ID
				found = true
				break
			}
		}
		if !found {
			h.errorResponse(ctx, http.StatusBadRequest, "дополнение не найдено")
			return
		}
	default:
		h.errorResponse(ctx, http.StatusBadRequest,
			fmt.Sprintf("позиции категории %s не редактируются", current.Configs.Kind()))
		return
	}

	updated, err := h.Billing.UpdateCartItem(ctx.Request.Context(), sessionID, itemID, billing.UpdateCartItemRequest{
		Plan:    current.Plan.ID,
		Configs: configs,
	})
	if err != nil {
		h.billingError(ctx, err)
		return
	}

	h.successResponse(ctx, http.StatusOK, "позиция обновлена", cartItemDTO(updated, nil))
}

// DeleteCartItem удаляет позицию корзины
// @Summary Удаление позиции корзины
// @Description Удаляет позицию. Повторное нажатие до завершения первого запроса отклоняется
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID позиции"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/cart/items/{id} [delete]
func (h *Handler) DeleteCartItem(ctx *gin.Context) {
	sessionID, _, ok := h.sessionFromContext(ctx)
	if !ok {
		return
	}

	itemID, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil || itemID == 0 {
		h.errorResponse(ctx, http.StatusBadRequest, "неверный ID позиции")
		return
	}

	guardKey := fmt.Sprintf("delete-item:%s:%d", sessionID, itemID)
	if !h.inflight.begin(guardKey) {
		h.errorResponse(ctx, http.StatusConflict, "удаление уже выполняется")
		return
	}
	defer h.inflight.end(guardKey)

	if err := h.Billing.DeleteCartItem(ctx.Request.Context(), sessionID, itemID); err != nil {
		h.billingError(ctx, err)
		return
	}

	h.successResponse(ctx, http.StatusOK, "позиция удалена", nil)
}

// ClearCart очищает корзину
// @Summary Очистка корзины
// @Tags Cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/cart/clear [post]
func (h *Handler) ClearCart(ctx *gin.Context) {
	sessionID, _, ok := h.sessionFromContext(ctx)
	if !ok {
		return
	}

	if err := h.Billing.ClearCart(ctx.Request.Context(), sessionID); err != nil {
		h.billingError(ctx, err)
		return
	}

	h.successResponse(ctx, http.StatusOK, "корзина очищена", nil)
}
