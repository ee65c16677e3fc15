package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"mycloud/internal/app/billing"
	"mycloud/internal/app/checkout/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// helperCartItems - корзина из трех позиций разных категорий
func helperCartItems() []billing.CartItem {
	return []billing.CartItem{
		{ID: 1, Plan: billing.PlanRef{ID: 7}, Configs: billing.Configs{Domain: "example.uz", PlanDetails: json.Number("50000")}},
		{ID: 2, Plan: billing.PlanRef{ID: 5}, Configs: billing.Configs{OS: "Debian 12", PlanDetails: json.Number("120000")}},
		{ID: 3, Plan: billing.PlanRef{ID: 9}, Configs: billing.Configs{Colocation: "Colocation 1U", AddonID: 4, PlanDetails: json.Number("300000")}},
	}
}

var helperOSList = []billing.OperatingSystem{{ID: 2, Name: "Debian 12"}}

func setupCheckout(t *testing.T) (*gomock.Controller, *Service, *mocks.MockBillingAPI) {
	ctrl := gomock.NewController(t)
	api := mocks.NewMockBillingAPI(ctrl)
	return ctrl, New(api), api
}

func TestCheckoutHappyPath(t *testing.T) {
	ctrl, svc, api := setupCheckout(t)
	defer ctrl.Finish()

	items := helperCartItems()
	order := billing.Order{ID: 100, TotalCost: json.Number("470000")}

	// строгий порядок: заказ, услуги по одной, очистка корзины
	gomock.InOrder(
		api.EXPECT().
			CreateOrder(gomock.Any(), "sess-1", billing.CreateOrderRequest{PaymentMethod: "click"}).
			Return(order, nil),
		api.EXPECT().
			CreateOrderService(gomock.Any(), "sess-1", billing.OrderServicePayload(100, items[0], helperOSList)).
			Return(billing.OrderService{ID: 201}, nil),
		api.EXPECT().
			CreateOrderService(gomock.Any(), "sess-1", billing.OrderServicePayload(100, items[1], helperOSList)).
			Return(billing.OrderService{ID: 202}, nil),
		api.EXPECT().
			CreateOrderService(gomock.Any(), "sess-1", billing.OrderServicePayload(100, items[2], helperOSList)).
			Return(billing.OrderService{ID: 203}, nil),
		api.EXPECT().
			ClearCart(gomock.Any(), "sess-1").
			Return(nil),
	)

	got, err := svc.Checkout(context.Background(), "sess-1", items, helperOSList, "click")

	require.NoError(t, err)
	assert.Equal(t, int64(100), got.ID)
}

func TestCheckoutEmptyCartMakesNoRequests(t *testing.T) {
	ctrl, svc, api := setupCheckout(t)
	defer ctrl.Finish()

	api.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Checkout(context.Background(), "sess-1", nil, helperOSList, "click")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutRejectsUnknownPaymentMethod(t *testing.T) {
	ctrl, svc, api := setupCheckout(t)
	defer ctrl.Finish()

	api.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Checkout(context.Background(), "sess-1", helperCartItems(), helperOSList, "cash")
	assert.ErrorIs(t, err, ErrPaymentMethod)
}

func TestCheckoutCompensatesCreatedServices(t *testing.T) {
	ctrl, svc, api := setupCheckout(t)
	defer ctrl.Finish()

	items := helperCartItems()
	order := billing.Order{ID: 100}
	boom := errors.New("план недоступен")

	api.EXPECT().
		CreateOrder(gomock.Any(), "sess-1", gomock.Any()).
		Return(order, nil)
	api.EXPECT().
		CreateOrderService(gomock.Any(), "sess-1", billing.OrderServicePayload(100, items[0], helperOSList)).
		Return(billing.OrderService{ID: 201}, nil)
	api.EXPECT().
		CreateOrderService(gomock.Any(), "sess-1", billing.OrderServicePayload(100, items[1], helperOSList)).
		Return(billing.OrderService{}, boom)
	// уже созданная услуга отменяется, корзина не очищается
	api.EXPECT().
		CancelOrderService(gomock.Any(), "sess-1", int64(201)).
		Return(nil)
	api.EXPECT().ClearCart(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Checkout(context.Background(), "sess-1", items, helperOSList, "payme")

	var chkErr *Error
	require.ErrorAs(t, err, &chkErr)
	assert.Equal(t, int64(100), chkErr.OrderID)
	assert.ErrorIs(t, err, boom)
}

func TestCheckoutClearFailureKeepsOrder(t *testing.T) {
	ctrl, svc, api := setupCheckout(t)
	defer ctrl.Finish()

	items := helperCartItems()[:1]
	order := billing.Order{ID: 100}

	api.EXPECT().CreateOrder(gomock.Any(), "sess-1", gomock.Any()).Return(order, nil)
	api.EXPECT().CreateOrderService(gomock.Any(), "sess-1", gomock.Any()).Return(billing.OrderService{ID: 201}, nil)
	api.EXPECT().ClearCart(gomock.Any(), "sess-1").Return(errors.New("timeout"))
	// услуги оформленного заказа не трогаем
	api.EXPECT().CancelOrderService(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	got, err := svc.Checkout(context.Background(), "sess-1", items, helperOSList, "bank_transaction")

	var chkErr *Error
	require.ErrorAs(t, err, &chkErr)
	assert.Equal(t, int64(100), got.ID)
}

func TestTotalSumsPlanDetails(t *testing.T) {
	svc := New(nil)

	total := svc.Total(helperCartItems())
	// сумма месячных цен без налоговых множителей
	assert.Equal(t, 470000.0, total)

	assert.Equal(t, 0.0, svc.Total(nil))
}
