package handler

import (
	"errors"
	"net/http"

	"mycloud/internal/app/billing"
	"mycloud/internal/app/checkout"
	"mycloud/internal/app/config"
	"mycloud/internal/app/dto"
	"mycloud/internal/app/redis"
	"mycloud/internal/app/repository"
	"mycloud/internal/app/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Handler содержит обработчики REST API кабинета
type Handler struct {
	Billing     *billing.Client
	Checkout    *checkout.Service
	Repository  *repository.Repository
	RedisClient *redis.Client
	MinIOClient *storage.MinIOClient
	Config      *config.Config

	inflight *inflight
}

func NewHandler(b *billing.Client, chk *checkout.Service, r *repository.Repository, redisClient *redis.Client, minioClient *storage.MinIOClient, cfg *config.Config) *Handler {
	return &Handler{
		Billing:     b,
		Checkout:    chk,
		Repository:  r,
		RedisClient: redisClient,
		MinIOClient: minioClient,
		Config:      cfg,
		inflight:    newInflight(),
	}
}

// ============ Вспомогательные функции ============

func (h *Handler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Status:  "fail",
		Message: message,
	})
}

func (h *Handler) successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}

// billingError транслирует ошибку биллинга в HTTP-ответ кабинета
func (h *Handler) billingError(c *gin.Context, err error) {
	logrus.Error(err.Error())

	switch {
	case errors.Is(err, billing.ErrSessionExpired):
		h.errorResponse(c, http.StatusUnauthorized, "сессия истекла, войдите заново")
	case errors.Is(err, billing.ErrPlanRequired),
		errors.Is(err, billing.ErrDomainRequired),
		errors.Is(err, billing.ErrAddonRequired),
		errors.Is(err, billing.ErrBadCursor):
		h.errorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, billing.ErrUnavailable):
		h.errorResponse(c, http.StatusBadGateway, "биллинг временно недоступен")
	default:
		var apiErr *billing.APIError
		if errors.As(err, &apiErr) {
			h.errorResponse(c, apiErr.StatusCode, apiErr.Message)
			return
		}
		h.errorResponse(c, http.StatusInternalServerError, "внутренняя ошибка сервера")
	}
}

// sessionFromContext возвращает ID сессии и email, установленные middleware
func (h *Handler) sessionFromContext(c *gin.Context) (string, string, bool) {
	sessionID := c.GetString("sessionID")
	email := c.GetString("userEmail")
	if sessionID == "" {
		h.errorResponse(c, http.StatusUnauthorized, "пользователь не авторизован")
		return "", "", false
	}
	return sessionID, email, true
}

// lang возвращает язык интерфейса из запроса (uz — язык по умолчанию)
func (h *Handler) lang(c *gin.Context) string {
	lang := c.Query("lang")
	switch lang {
	case "ru", "en", "uz":
		return lang
	}
	return "uz"
}
