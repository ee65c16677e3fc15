package billing

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// EnsureCart проверяет, что у пользователя есть корзина, и создает ее
// при отсутствии. Биллинг на отсутствующую корзину отвечает то 404,
// то 400 — оба трактуются как "нет корзины".
func (c *Client) EnsureCart(ctx context.Context, sessionID string) error {
	err := c.do(ctx, sessionID, http.MethodGet, c.baseURL+"shopping-cart/auth-user-cart/", nil, nil,
		"не удалось получить корзину")
	if err == nil {
		return nil
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) &&
		(apiErr.StatusCode == http.StatusNotFound || apiErr.StatusCode == http.StatusBadRequest) {
		return c.do(ctx, sessionID, http.MethodPost, c.baseURL+"shopping-cart/auth-user-cart/create/", nil, nil,
			"не удалось создать корзину")
	}
	return err
}

// CartItems возвращает страницу позиций корзины. pageURL пустой —
// первая страница; иначе это абсолютный next-курсор предыдущей.
func (c *Client) CartItems(ctx context.Context, sessionID, pageURL string) (Page[CartItem], error) {
	var page Page[CartItem]
	if pageURL == "" {
		pageURL = c.baseURL + "shopping-cart-item/auth-user-cart-items/list/"
	} else {
		var err error
		if pageURL, err = c.cursorURL(pageURL); err != nil {
			return page, err
		}
	}

	err := c.do(ctx, sessionID, http.MethodGet, pageURL, nil, &page,
		"не удалось получить позиции корзины")
	return page, err
}

// CreateCartItem добавляет позицию в корзину
func (c *Client) CreateCartItem(ctx context.Context, sessionID string, req CreateCartItemRequest) (CartItem, error) {
	var item CartItem
	err := c.do(ctx, sessionID, http.MethodPost, c.baseURL+"shopping-cart-item/auth-user-cart-item/create/",
		req, &item, "не удалось добавить позицию в корзину")
	return item, err
}

// UpdateCartItem частично обновляет позицию (PATCH со слитыми configs)
func (c *Client) UpdateCartItem(ctx context.Context, sessionID string, itemID int64, req UpdateCartItemRequest) (CartItem, error) {
	var item CartItem
	err := c.do(ctx, sessionID, http.MethodPatch,
		fmt.Sprintf("%sshopping-cart-item/auth-user-cart-item/%d/update/", c.baseURL, itemID),
		req, &item, "не удалось обновить позицию корзины")
	return item, err
}

// DeleteCartItem удаляет позицию корзины
func (c *Client) DeleteCartItem(ctx context.Context, sessionID string, itemID int64) error {
	return c.do(ctx, sessionID, http.MethodDelete,
		fmt.Sprintf("%sshopping-cart-item/auth-user-cart-item/%d/delete/", c.baseURL, itemID),
		nil, nil, "не удалось удалить позицию корзины")
}

// ClearCart очищает корзину целиком
func (c *Client) ClearCart(ctx context.Context, sessionID string) error {
	return c.do(ctx, sessionID, http.MethodPost, c.baseURL+"shopping-cart/auth-user-cart/clear", nil, nil,
		"не удалось очистить корзину")
}
