package handler

import (
	"net/http"
	"time"

	"mycloud/internal/app/billing"
	"mycloud/internal/app/ds"
	"mycloud/internal/app/dto"
	"mycloud/internal/app/role"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// LoginUser аутентификация пользователя
// @Summary Вход в систему
// @Description Обменивает email и пароль на сессионный JWT кабинета. Токены биллинга хранятся в Redis и наружу не отдаются
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Данные для входа"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/login [post]
func (h *Handler) LoginUser(ctx *gin.Context) {
	var request dto.LoginRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	// Обмениваем учетные данные на пару токенов биллинга
	pair, err := h.Billing.Token(ctx.Request.Context(), billing.Credentials{
		Email:    request.Email,
		Password: request.Password,
	})
	if err != nil {
		h.billingError(ctx, err)
		return
	}

	// Сохраняем токены биллинга в Redis под новой сессией
	sessionID := uuid.New()
	err = h.RedisClient.SaveSession(ctx.Request.Context(), sessionID.String(), pair.Access, pair.Refresh, h.Config.JWT.ExpiresIn)
	if err != nil {
		logrus.Error("Error saving session: ", err)
		h.errorResponse(ctx, http.StatusInternalServerError, "ошибка создания сессии")
		return
	}

	userRole := h.roleForEmail(request.Email)

	// Создание JWT токена сессии кабинета
	now := time.Now()
	token := jwt.NewWithClaims(h.Config.JWT.SigningMethod, ds.JWTClaims{
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: now.Add(h.Config.JWT.ExpiresIn).Unix(),
			IssuedAt:  now.Unix(),
			Issuer:    "mycloud-dashboard",
		},
		SessionID: sessionID,
		Email:     request.Email,
		Role:      userRole,
	})

	accessToken, err := token.SignedString([]byte(h.Config.JWT.Secret))
	if err != nil {
		h.errorResponse(ctx, http.StatusInternalServerError, "ошибка подписи токена")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"status":     "success",
		"message":    "пользователь успешно авторизован",
		"token":      accessToken,
		"email":      request.Email,
		"role":       int(userRole),
		"expires_in": int(h.Config.JWT.ExpiresIn.Seconds()),
		"token_type": "Bearer",
	})
}

// roleForEmail определяет роль кабинета: менеджеры перечислены в конфигурации
func (h *Handler) roleForEmail(email string) role.Role {
	for _, m := range h.Config.Managers {
		if m == email {
			return role.Manager
		}
	}
	return role.Buyer
}

// LogoutUser выход пользователя из системы
// @Summary Выход из системы
// @Description Добавляет сессионный JWT в blacklist и удаляет токены биллинга из Redis
// @Tags Authentication
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.SuccessResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/auth/logout [post]
func (h *Handler) LogoutUser(ctx *gin.Context) {
	sessionID, _, ok := h.sessionFromContext(ctx)
	if !ok {
		return
	}

	// Токен уже проверен middleware, парсим только ради TTL
	tokenString := ctx.GetString("rawJWT")
	token, err := jwt.ParseWithClaims(tokenString, &ds.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(h.Config.JWT.Secret), nil
	})
	if err != nil {
		h.errorResponse(ctx, http.StatusUnauthorized, err.Error())
		return
	}

	claims, ok2 := token.Claims.(*ds.JWTClaims)
	if !ok2 {
		h.errorResponse(ctx, http.StatusUnauthorized, "invalid token claims")
		return
	}

	// Blacklist до истечения токена
	ttl := time.Until(time.Unix(claims.ExpiresAt, 0))
	if ttl > 0 {
		if err := h.RedisClient.WriteJWTToBlacklist(ctx.Request.Context(), tokenString, ttl); err != nil {
			logrus.Error("Error writing JWT to blacklist: ", err)
			h.errorResponse(ctx, http.StatusInternalServerError, "ошибка завершения сессии")
			return
		}
	}

	// Удаляем токены биллинга
	if err := h.RedisClient.Clear(ctx.Request.Context(), sessionID); err != nil {
		logrus.Error("Error clearing session: ", err)
	}

	h.successResponse(ctx, http.StatusOK, "пользователь успешно вышел из системы", nil)
}

// RegisterUser регистрация нового пользователя
// @Summary Регистрация пользователя
// @Description Создает учетную запись в биллинге. Письмо подтверждения отправляет биллинг
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Данные для регистрации"
// @Success 201 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/auth/register [post]
func (h *Handler) RegisterUser(ctx *gin.Context) {
	var request dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	err := h.Billing.Register(ctx.Request.Context(), billing.RegisterRequest{
		Email:     request.Email,
		Password:  request.Password,
		FirstName: request.FirstName,
		LastName:  request.LastName,
	})
	if err != nil {
		h.billingError(ctx, err)
		return
	}

	h.successResponse(ctx, http.StatusCreated, "пользователь зарегистрирован, подтвердите email", nil)
}

// SendResetPasswordEmail запрос письма для сброса пароля
// @Summary Письмо для сброса пароля
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordEmailRequest true "Email"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/auth/send-reset-password-email [post]
func (h *Handler) SendResetPasswordEmail(ctx *gin.Context) {
	var request dto.ResetPasswordEmailRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Billing.SendResetPasswordEmail(ctx.Request.Context(), request.Email); err != nil {
		h.billingError(ctx, err)
		return
	}

	h.successResponse(ctx, http.StatusOK, "письмо для сброса пароля отправлено", nil)
}

// ResetPassword завершение сброса пароля
// @Summary Сброс пароля
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.ResetPasswordRequest true "uid и токен из письма, новый пароль"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/auth/reset-password [post]
func (h *Handler) ResetPassword(ctx *gin.Context) {
	var request dto.ResetPasswordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Billing.ResetPassword(ctx.Request.Context(), request.UID, request.Token, request.Password); err != nil {
		h.billingError(ctx, err)
		return
	}

	h.successResponse(ctx, http.StatusOK, "пароль изменен", nil)
}

// ChangePassword смена пароля авторизованного пользователя
// @Summary Смена пароля
// @Tags Authentication
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.ChangePasswordRequest true "Старый и новый пароль"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/auth/change-password [post]
func (h *Handler) ChangePassword(ctx *gin.Context) {
	sessionID, _, ok := h.sessionFromContext(ctx)
	if !ok {
		return
	}

	var request dto.ChangePasswordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	if request.OldPassword == request.NewPassword {
		h.errorResponse(ctx, http.StatusBadRequest, "новый пароль совпадает со старым")
		return
	}

	err := h.Billing.ChangePassword(ctx.Request.Context(), sessionID, request.OldPassword, request.NewPassword)
	if err != nil {
		h.billingError(ctx, err)
		return
	}

	h.successResponse(ctx, http.StatusOK, "пароль изменен", nil)
}

// VerifyEmail подтверждение email
// @Summary Подтверждение email
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.VerifyEmailRequest true "uid и токен из письма"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/auth/verify-email [post]
func (h *Handler) VerifyEmail(ctx *gin.Context) {
	var request dto.VerifyEmailRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Billing.VerifyEmail(ctx.Request.Context(), request.UID, request.Token); err != nil {
		h.billingError(ctx, err)
		return
	}

	h.successResponse(ctx, http.StatusOK, "email подтвержден", nil)
}

// ResendVerification повторная отправка письма подтверждения
// @Summary Повторное письмо подтверждения
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.ResendVerificationRequest true "Email"
// @Success 200 {object} dto.SuccessResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /api/auth/resend-verification [post]
func (h *Handler) ResendVerification(ctx *gin.Context) {
	var request dto.ResendVerificationRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		h.errorResponse(ctx, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.Billing.ResendVerification(ctx.Request.Context(), request.Email); err != nil {
		h.billingError(ctx, err)
		return
	}

	h.successResponse(ctx, http.StatusOK, "письмо подтверждения отправлено", nil)
}
