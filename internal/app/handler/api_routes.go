package handler

import (
	"mycloud/internal/app/middleware"
	"mycloud/internal/app/role"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes регистрирует все REST API маршруты с авторизацией
func (h *Handler) RegisterAPIRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware) {
	// REST API маршруты
	api := router.Group("/api")

	authed := authMiddleware.WithAuthCheck(role.Buyer, role.Manager, role.Admin)
	managerOnly := authMiddleware.WithAuthCheck(role.Manager, role.Admin)

	// ============ Аутентификация ============
	auth := api.Group("/auth")
	{
		// Публичные эндпоинты
		auth.POST("/login", h.LoginUser)
		auth.POST("/register", h.RegisterUser)
		auth.POST("/send-reset-password-email", h.SendResetPasswordEmail)
		auth.POST("/reset-password", h.ResetPassword)
		auth.POST("/verify-email", h.VerifyEmail)
		auth.POST("/resend-verification", h.ResendVerification)

		// Защищенные эндпоинты
		auth.POST("/logout", authed, h.LogoutUser)
		auth.POST("/change-password", authed, h.ChangePassword)
	}

	// ============ Каталог ============
	catalog := api.Group("/catalog")
	catalog.Use(authed)
	{
		catalog.GET("", h.GetCatalog)
		catalog.GET("/services", h.GetServices)
		catalog.GET("/tariffs/:name", h.GetTariff)
	}

	// ============ Корзина и оформление ============
	cart := api.Group("/cart")
	cart.Use(authed)
	{
		cart.GET("", h.GetCart)
		cart.GET("/items", h.GetCartPage)
		cart.POST("/items", h.AddToCart)
		cart.PATCH("/items/:id", h.EditCartItem)
		cart.DELETE("/items/:id", h.DeleteCartItem)
		cart.POST("/clear", h.ClearCart)
	}
	api.POST("/checkout", authed, h.CheckoutCart)

	// ============ Заказы и услуги ============
	orders := api.Group("/orders")
	orders.Use(authed)
	{
		orders.GET("", h.GetOrders)
		orders.GET("/:id", h.GetOrder)
	}
	orderServices := api.Group("/order-services")
	orderServices.Use(authed)
	{
		orderServices.GET("", h.GetOrderServices)
		orderServices.GET("/:id", h.GetOrderService)
		orderServices.POST("/:id/cancel", h.CancelOrderService)
	}

	// ============ Профиль и справочники ============
	profile := api.Group("/profile")
	profile.Use(authed)
	{
		profile.GET("", h.GetProfile)
		profile.PATCH("", h.UpdateProfile)
		profile.GET("/balance", h.GetBalance)
	}
	geo := api.Group("/geo")
	geo.Use(authed)
	{
		geo.GET("/countries", h.GetCountries)
		geo.GET("/cities", h.GetCities)
	}

	// ============ Сохраненный выбор ============
	selection := api.Group("/selection")
	selection.Use(authed)
	{
		selection.GET("", h.GetSelection)
		selection.PUT("", h.SaveSelection)
		selection.PUT("/cookie-consent", h.SetCookieConsent)
	}

	// ============ Поддержка ============
	support := api.Group("/support")
	support.Use(authed)
	{
		support.GET("/tickets", h.GetTickets)
		support.POST("/tickets", h.CreateTicket)
		support.GET("/tickets/:id", h.GetTicket)
		support.POST("/tickets/:id/attachment", h.UploadTicketAttachment)
		support.POST("/tickets/:id/close", h.CloseTicket)

		// Только для менеджеров
		support.GET("/queue", managerOnly, h.GetOpenTickets)
		support.POST("/tickets/:id/answer", managerOnly, h.AnswerTicket)
	}

	// Ping эндпоинт для проверки
	router.GET("/ping", h.Ping)
}

// Ping проверяет работоспособность API
// @Summary Проверка работоспособности
// @Description Возвращает простой ответ для проверки работы сервера
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *Handler) Ping(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"message": "pong"})
}
