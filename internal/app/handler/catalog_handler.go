package handler

import (
	"net/http"

	"mycloud/internal/app/billing"
	"mycloud/internal/app/dto"

	"github.com/gin-gonic/gin"
)

// GetServices получает каталог услуг с тарифами
// @Summary Каталог услуг
// @Description Возвращает услуги биллинга с вложенными тарифами на выбранном языке
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param lang query string false "Язык интерфейса (uz, ru, en)"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/catalog/services [get]
func (h *Handler) GetServices(ctx *gin.Context) {
	sessionID, _, ok := h.sessionFromContext(ctx)
	if !ok {
		return
	}

	page, err := h.Billing.ServicesWithTariffs(ctx.Request.Context(), sessionID, h.lang(ctx))
	if err != nil {
		h.billingError(ctx, err)
		return
	}

	h.successResponse(ctx, http.StatusOK, "", page.Results)
}

// GetCatalog получает полный каталог одним запросом
// @Summary Полный каталог
// @Description Возвращает услуги с тарифами вместе со справочниками ОС и дополнений colocation. Недоступность справочников не считается ошибкой
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param lang query string false "Язык интерфейса (uz, ru, en)"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 502 {object} dto.ErrorResponse
// @Router /api/catalog [get]
func (h *Handler) GetCatalog(ctx *gin.Context) {
	sessionID, _, ok := h.sessionFromContext(ctx)
	if !ok {
		return
	}

	catalog, err := h.Billing.LoadCatalog(ctx.Request.Context(), sessionID, h.lang(ctx))
	if err != nil {
		h.billingError(ctx, err)
		return
	}

	h.successResponse(ctx, http.StatusOK, "", catalog)
}

// GetTariff получает тариф с планами для конфигуратора
// @Summary Тариф с планами
// @Description Возвращает тариф по имени вместе с доступными планами. Для VPS добавляется список ОС, для colocation — список дополнений
// @Tags Catalog
// @Produce json
// @Security BearerAuth
// @Param name path string true "Имя тарифа"
// @Param lang query string false "Язык интерфейса (uz, ru, en)"
// @Success 200 {object} dto.TariffDetailResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/catalog/tariffs/{name} [get]
func (h *Handler) GetTariff(ctx *gin.Context) {
	sessionID, _, ok := h.sessionFromContext(ctx)
	if !ok {
		return
	}

	name := ctx.Param("name")
	if name == "" {
		h.errorResponse(ctx, http.StatusBadRequest, "имя тарифа не указано")
		return
	}

	lang := h.lang(ctx)
	tariff, err := h.Billing.TariffWithPlans(ctx.Request.Context(), sessionID, lang, name)
	if err != nil {
		h.billingError(ctx, err)
		return
	}

	response := dto.TariffDetailResponse{
		Tariff:   tariff,
		Category: string(billing.Categorize(tariff.Name)),
	}

	// План по умолчанию — первый из списка, как в форме конфигуратора
	if len(tariff.Plans) > 0 {
		response.DefaultPlan = &tariff.Plans[0]
	}

	// Категорийные справочники. Их отсутствие не блокирует конфигуратор
	switch billing.Categorize(tariff.Name) {
	case billing.CategoryVPS:
		systems, err := h.Billing.OperatingSystems(ctx.Request.Context(), sessionID, lang)
		if err == nil {
			response.Systems = systems.Results
			// ОС по умолчанию — первая из полученного списка
			if len(systems.Results) > 0 {
				response.DefaultOS = &systems.Results[0]
			}
		}
	case billing.CategoryColocation:
		addons, err := h.Billing.ActiveColocationAddons(ctx.Request.Context(), sessionID, lang)
		if err == nil {
			response.Addons = addons.Results
		}
	}

	ctx.JSON(http.StatusOK, response)
}
