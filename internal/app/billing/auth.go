package billing

import (
	"context"
	"net/http"
	"net/url"
)

// Операции аутентификации. Все, кроме ChangePassword, выполняются без
// сессии кабинета.

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

// Token обменивает email+пароль на пару токенов
func (c *Client) Token(ctx context.Context, creds Credentials) (TokenPair, error) {
	var pair TokenPair
	err := c.do(ctx, "", http.MethodPost, c.baseURL+"auth/token/", creds, &pair,
		"неверный email или пароль")
	return pair, err
}

// Register создает учетную запись в биллинге
func (c *Client) Register(ctx context.Context, req RegisterRequest) error {
	return c.do(ctx, "", http.MethodPost, c.baseURL+"users/register/", req, nil,
		"ошибка регистрации")
}

// SendResetPasswordEmail запрашивает письмо для сброса пароля
func (c *Client) SendResetPasswordEmail(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, "", http.MethodPost, c.baseURL+"auth/send-reset-password-email/", body, nil,
		"не удалось отправить письмо для сброса пароля")
}

// ResetPassword завершает сброс пароля по ссылке из письма. uid и
// token биллинг принимает в query, новый пароль — в теле запроса
func (c *Client) ResetPassword(ctx context.Context, uid, token, newPassword string) error {
	body := map[string]string{"new_password": newPassword}
	return c.do(ctx, "", http.MethodPost,
		c.baseURL+"auth/reset-password/?uid="+url.QueryEscape(uid)+"&token="+url.QueryEscape(token),
		body, nil, "не удалось сбросить пароль")
}

// ChangePassword меняет пароль авторизованного пользователя
func (c *Client) ChangePassword(ctx context.Context, sessionID, oldPassword, newPassword string) error {
	body := map[string]string{"old_password": oldPassword, "new_password": newPassword}
	return c.do(ctx, sessionID, http.MethodPost, c.baseURL+"auth/change-password/", body, nil,
		"не удалось сменить пароль")
}

// VerifyEmail подтверждает email по uid и токену из письма
func (c *Client) VerifyEmail(ctx context.Context, uid, token string) error {
	body := map[string]string{"uid": uid, "token": token}
	return c.do(ctx, "", http.MethodPost, c.baseURL+"users/verify-email", body, nil,
		"не удалось подтвердить email")
}

// ResendVerification повторно отправляет письмо подтверждения
func (c *Client) ResendVerification(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, "", http.MethodPost, c.baseURL+"users/resend-verification", body, nil,
		"не удалось отправить письмо подтверждения")
}
