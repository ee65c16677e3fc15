package billing

import (
	"context"
	"fmt"
	"net/http"
)

// CreateOrder создает заказ с выбранным способом оплаты
func (c *Client) CreateOrder(ctx context.Context, sessionID string, req CreateOrderRequest) (Order, error) {
	var order Order
	err := c.do(ctx, sessionID, http.MethodPost, c.baseURL+"orders/auth-user-order/create/",
		req, &order, "не удалось создать заказ")
	return order, err
}

// Orders возвращает страницу заказов пользователя
func (c *Client) Orders(ctx context.Context, sessionID, pageURL string) (Page[Order], error) {
	var page Page[Order]
	if pageURL == "" {
		pageURL = c.baseURL + "orders/auth-user-orders/list/"
	} else {
		var err error
		if pageURL, err = c.cursorURL(pageURL); err != nil {
			return page, err
		}
	}

	err := c.do(ctx, sessionID, http.MethodGet, pageURL, nil, &page,
		"не удалось получить список заказов")
	return page, err
}

// OrderWithServices возвращает заказ вместе с его услугами
func (c *Client) OrderWithServices(ctx context.Context, sessionID string, orderID int64) (Order, error) {
	var order Order
	err := c.do(ctx, sessionID, http.MethodGet,
		fmt.Sprintf("%sorders/auth-user-order/with-order-services/%d", c.baseURL, orderID),
		nil, &order, "не удалось получить заказ")
	return order, err
}

// CreateOrderService создает одну услугу заказа
func (c *Client) CreateOrderService(ctx context.Context, sessionID string, req CreateOrderServiceRequest) (OrderService, error) {
	var service OrderService
	err := c.do(ctx, sessionID, http.MethodPost, c.baseURL+"order-services/auth-user-order-service/create/",
		req, &service, "не удалось создать услугу заказа")
	return service, err
}

// OrderServices возвращает страницу всех услуг пользователя
func (c *Client) OrderServices(ctx context.Context, sessionID, pageURL string) (Page[OrderService], error) {
	var page Page[OrderService]
	if pageURL == "" {
		pageURL = c.baseURL + "order-services/auth-user-order-service/list"
	} else {
		var err error
		if pageURL, err = c.cursorURL(pageURL); err != nil {
			return page, err
		}
	}

	err := c.do(ctx, sessionID, http.MethodGet, pageURL, nil, &page,
		"не удалось получить список услуг")
	return page, err
}

// OrderServiceDetail возвращает одну услугу заказа
func (c *Client) OrderServiceDetail(ctx context.Context, sessionID string, serviceID int64) (OrderService, error) {
	var service OrderService
	err := c.do(ctx, sessionID, http.MethodGet,
		fmt.Sprintf("%sorder-services/auth-user-order-service/%d", c.baseURL, serviceID),
		nil, &service, "не удалось получить услугу заказа")
	return service, err
}

// CancelOrderService отменяет услугу заказа; остальные услуги заказа
// не затрагиваются
func (c *Client) CancelOrderService(ctx context.Context, sessionID string, serviceID int64) error {
	return c.do(ctx, sessionID, http.MethodPost,
		fmt.Sprintf("%sorder-services/auth-user-order-service/%d/cancel/", c.baseURL, serviceID),
		nil, nil, "не удалось отменить услугу заказа")
}
