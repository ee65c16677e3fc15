package dto

import (
	"time"

	"mycloud/internal/app/billing"
)

// ============ Общие структуры ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ Аутентификация ============

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
}

type RegisterRequest struct {
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	Password2 string `json:"password2" binding:"required,eqfield=Password"`
}

type ResetPasswordEmailRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ResetPasswordRequest struct {
	UID      string `json:"uid" binding:"required"`
	Token    string `json:"token" binding:"required"`
	Password string `json:"new_password" binding:"required,min=8"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

type VerifyEmailRequest struct {
	UID   string `json:"uid" binding:"required"`
	Token string `json:"token" binding:"required"`
}

type ResendVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ============ Каталог и конфигуратор ============

type TariffDetailResponse struct {
	Tariff      billing.Tariff            `json:"tariff"`
	Category    string                    `json:"category"`
	DefaultPlan *billing.Plan             `json:"default_plan,omitempty"`
	DefaultOS   *billing.OperatingSystem  `json:"default_os,omitempty"`
	Systems     []billing.OperatingSystem `json:"operating_systems,omitempty"`
	Addons      []billing.ColocationAddon `json:"addons,omitempty"`
}

type AddToCartRequest struct {
	Tariff    string `json:"tariff" binding:"required"`
	PlanID    int64  `json:"plan_id" binding:"required"`
	Domain    string `json:"domain"`
	Extension string `json:"extension"`
	OSID      int64  `json:"os_id"`
	AddonID   int64  `json:"addon_id"`
}

// ============ Корзина ============

type CartItemResponse struct {
	ID           int64   `json:"id"`
	TariffName   string  `json:"tariff_name"`
	Kind         string  `json:"kind"`
	MonthlyPrice float64 `json:"monthly_price"`
	PeriodMonths int     `json:"period_months"`
	Domain       string  `json:"domain,omitempty"`
	OSID         int64   `json:"os_id,omitempty"`
	AddonID      int64   `json:"addon_id,omitempty"`
}

type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Next  *string            `json:"next,omitempty"`
	Count int64              `json:"count"`
	Total float64            `json:"total"`
}

type EditCartItemRequest struct {
	Domain    string `json:"domain"`
	Extension string `json:"extension"`
	AddonID   int64  `json:"addon_id"`
}

// ============ Оформление заказа ============

type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required,oneof=click payme bank_transaction"`
	Notes         string `json:"notes"`
}

type CheckoutResponse struct {
	OrderID       int64  `json:"order_id"`
	TotalCost     string `json:"total_cost"`
	PaymentMethod string `json:"payment_method"`
}

// ============ Заказы и счета ============

type OrderListResponse struct {
	Orders []billing.Order `json:"orders"`
	Next   *string         `json:"next,omitempty"`
	Count  int64           `json:"count"`
}

type OrderServiceListResponse struct {
	Services []billing.OrderService `json:"services"`
	Next     *string                `json:"next,omitempty"`
	Count    int64                  `json:"count"`
}

// ============ Профиль ============

type UpdateProfileRequest struct {
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Country     int64  `json:"country"`
	City        int64  `json:"city"`
	District    int64  `json:"district"`
	Address     string `json:"address"`
}

// ============ Сохранённый выбор и cookie ============

type SaveSelectionRequest struct {
	Tariff     string `json:"tariff"`
	OrderDraft string `json:"order_draft"`
}

type SelectionResponse struct {
	Tariff        string    `json:"tariff"`
	OrderDraft    string    `json:"order_draft"`
	CookieConsent bool      `json:"cookie_consent"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type CookieConsentRequest struct {
	Consent bool `json:"consent"`
}

// ============ Поддержка ============

type CreateTicketRequest struct {
	Subject string `json:"subject" binding:"required,max=200"`
	Message string `json:"message" binding:"required"`
}

type AnswerTicketRequest struct {
	Answer string `json:"answer" binding:"required"`
}

type TicketResponse struct {
	ID            uint       `json:"id"`
	Subject       string     `json:"subject"`
	Message       string     `json:"message"`
	Answer        string     `json:"answer,omitempty"`
	Status        string     `json:"status"`
	AttachmentURL string     `json:"attachment_url,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	AnsweredAt    *time.Time `json:"answered_at,omitempty"`
}
