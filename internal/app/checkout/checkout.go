package checkout

import (
	"context"
	"errors"
	"fmt"

	"mycloud/internal/app/billing"

	"github.com/sirupsen/logrus"
)

//go:generate mockgen -source=checkout.go -destination=./mocks/billing_mock.go -package=mocks BillingAPI

// BillingAPI — операции биллинга, нужные оформлению заказа
type BillingAPI interface {
	CreateOrder(ctx context.Context, sessionID string, req billing.CreateOrderRequest) (billing.Order, error)
	CreateOrderService(ctx context.Context, sessionID string, req billing.CreateOrderServiceRequest) (billing.OrderService, error)
	CancelOrderService(ctx context.Context, sessionID string, serviceID int64) error
	ClearCart(ctx context.Context, sessionID string) error
}

// Допустимые способы оплаты
var PaymentMethods = []string{"click", "payme", "bank_transaction"}

var (
	ErrEmptyCart     = errors.New("корзина пуста")
	ErrPaymentMethod = errors.New("неизвестный способ оплаты")
)

// Error — ошибка оформления после того, как заказ уже создан.
// Биллинг не умеет отменять заказ целиком, поэтому созданные услуги
// отменяются по одной, а заказ остается и отдается наружу как
// осиротевший.
type Error struct {
	OrderID int64
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("оформление заказа %d прервано: %v", e.OrderID, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

type Service struct {
	api BillingAPI
}

func New(api BillingAPI) *Service {
	return &Service{api: api}
}

// Total — отображаемая сумма корзины: сумма месячных цен позиций
// (plan_details). Без налоговых множителей.
func (s *Service) Total(items []billing.CartItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Configs.MonthlyPrice()
	}
	return total
}

// Checkout превращает корзину в заказ: строго последовательно один
// POST заказа, по одному POST услуги на позицию, затем очистка
// корзины. Если хоть одна услуга не создалась, очистка не выполняется,
// уже созданные услуги отменяются best-effort.
func (s *Service) Checkout(ctx context.Context, sessionID string, items []billing.CartItem, osList []billing.OperatingSystem, paymentMethod string) (billing.Order, error) {
	if len(items) == 0 {
		return billing.Order{}, ErrEmptyCart
	}
	if !validMethod(paymentMethod) {
		return billing.Order{}, ErrPaymentMethod
	}

	order, err := s.api.CreateOrder(ctx, sessionID, billing.CreateOrderRequest{
		PaymentMethod: paymentMethod,
	})
	if err != nil {
		return billing.Order{}, err
	}

	created := make([]int64, 0, len(items))
	for _, item := range items {
		service, err := s.api.CreateOrderService(ctx, sessionID, billing.OrderServicePayload(order.ID, item, osList))
		if err != nil {
			s.compensate(ctx, sessionID, order.ID, created)
			return billing.Order{}, &Error{OrderID: order.ID, Err: err}
		}
		created = append(created, service.ID)
	}

	if err := s.api.ClearCart(ctx, sessionID); err != nil {
		// заказ оформлен, но корзина осталась: это не повод отменять услуги
		logrus.Error("Error clearing cart after checkout: ", err)
		return order, &Error{OrderID: order.ID, Err: err}
	}

	return order, nil
}

func (s *Service) compensate(ctx context.Context, sessionID string, orderID int64, serviceIDs []int64) {
	for _, id := range serviceIDs {
		if err := s.api.CancelOrderService(ctx, sessionID, id); err != nil {
			logrus.Errorf("compensate: cannot cancel order service %d of order %d: %v", id, orderID, err)
		}
	}
}

func validMethod(method string) bool {
	for _, m := range PaymentMethods {
		if m == method {
			return true
		}
	}
	return false
}
