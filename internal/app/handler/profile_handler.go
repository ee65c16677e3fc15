package handler

import (
	"errors"
	"net/http"
	"strconv"

	"mycloud/internal/app/billing"
	"mycloud/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// GetProfile возвращает профиль пользователя
// @Summary Профиль пользователя
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Param lang query string false "Язык интерфейса (uz, ru, en)"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/profile [get]
func (h *Handler) GetProfile(ctx *gin.Context) {
	sessionID, _, ok := h.sessionFromContext(ctx)
	if !ok {
		return
	}

	profile, err := h.Billing.Profile(ctx.Request.Context(), sessionID, h.lang(ctx))
	if err != nil {
		h.billingError(ctx, err)
		return
	}

	h.successResponse(ctx, http.StatusOK, "", profile)
}

// UpdateProfile изменяет профиль пользователя
// @Summary Обновление профиля
// @Description Передает в биллинг только заполненные поля формы
// @Tags Profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "Изменяемые поля"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/profile [patch]
func (h *Handler) UpdateProfile(ctx *gin.Context) {
	sessionID, _, ok := h.sessionFromContext(ctx)
	if !ok {
		return
	}

	var request dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	fields := map[string]interface{}{}
	if request.FirstName != "" {
		fields["first_name"] = request.FirstName
	}
	if request.LastName != "" {
		fields["last_name"] = request.LastName
	}
	if request.PhoneNumber != "" {
		fields["phone"] = request.PhoneNumber
	}
	if request.Country != 0 {
		fields["country"] = request.Country
	}
	if request.City != 0 {
		fields["city"] = request.City
	}
	if request.District != 0 {
		fields["district"] = request.District
	}
	if request.Address != "" {
		fields["address"] = request.Address
	}
	if len(fields) == 0 {
		h.errorResponse(ctx, http.StatusBadRequest, "нет полей для обновления")
		return
	}

	profile, err := h.Billing.UpdateProfile(ctx.Request.Context(), sessionID, fields)
	if err != nil {
		h.billingError(ctx, err)
		return
	}

	h.successResponse(ctx, http.StatusOK, "профиль обновлен", profile)
}

// GetBalance возвращает баланс пользователя
// @Summary Баланс
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/profile/balance [get]
func (h *Handler) GetBalance(ctx *gin.Context) {
	sessionID, _, ok := h.sessionFromContext(ctx)
	if !ok {
		return
	}

	balance, err := h.Billing.UserBalance(ctx.Request.Context(), sessionID)
	if err != nil {
		if errors.Is(err, billing.ErrSessionExpired) {
			h.billingError(ctx, err)
			return
		}
		// Отказ баланса не ломает страницу профиля
		logrus.Error("Error fetching user balance: ", err)
		h.successResponse(ctx, http.StatusOK, "", billing.Balance{Balance: "0"})
		return
	}

	h.successResponse(ctx, http.StatusOK, "", balance)
}

// GetCountries возвращает справочник стран
// @Summary Страны
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Param lang query string false "Язык интерфейса (uz, ru, en)"
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/geo/countries [get]
func (h *Handler) GetCountries(ctx *gin.Context) {
	sessionID, _, ok := h.sessionFromContext(ctx)
	if !ok {
		return
	}

	countries, err := h.Billing.Countries(ctx.Request.Context(), sessionID, h.lang(ctx))
	if err != nil {
		if errors.Is(err, billing.ErrSessionExpired) {
			h.billingError(ctx, err)
			return
		}
		// Справочник стран деградирует до пустого списка
		logrus.Error("Error fetching countries: ", err)
		h.successResponse(ctx, http.StatusOK, "", []billing.Country{})
		return
	}

	h.successResponse(ctx, http.StatusOK, "", countries.Results)
}

// GetCities возвращает города страны с районами
// @Summary Города с районами
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Param country_id query int true "ID страны"
// @Param lang query string false "Язык интерфейса (uz, ru, en)"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/geo/cities [get]
func (h *Handler) GetCities(ctx *gin.Context) {
	sessionID, _, ok := h.sessionFromContext(ctx)
	if !ok {
		return
	}

	countryID, err := strconv.ParseInt(ctx.Query("country_id"), 10, 64)
	if err != nil || countryID == 0 {
		h.errorResponse(ctx, http.StatusBadRequest, "неверный ID страны")
		return
	}

	cities, err := h.Billing.CityWithDistricts(ctx.Request.Context(), sessionID, h.lang(ctx), countryID)
	if err != nil {
		h.billingError(ctx, err)
		return
	}

	h.successResponse(ctx, http.StatusOK, "", cities)
}
