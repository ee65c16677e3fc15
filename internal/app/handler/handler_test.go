package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"mycloud/internal/app/billing"
	"mycloud/internal/app/checkout"
	"mycloud/internal/app/config"
	"mycloud/internal/app/dto"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStore - хранилище токенов в памяти вместо Redis
type stubStore struct{}

func (stubStore) Tokens(ctx context.Context, sessionID string) (string, string, error) {
	return "access", "refresh", nil
}
func (stubStore) SaveAccess(ctx context.Context, sessionID, access string) error { return nil }
func (stubStore) Clear(ctx context.Context, sessionID string) error              { return nil }

// setupRouter - хелпер: хендлер поверх фейкового биллинга и роутер
// с подменой авторизации
func setupRouter(billingURL string) (*Handler, *gin.Engine) {
	gin.SetMode(gin.TestMode)

	client := billing.NewClient(config.BillingConfig{
		BaseURL:  billingURL,
		Timeout:  5 * time.Second,
		PageSize: 10,
	}, stubStore{})

	h := NewHandler(client, checkout.New(client), nil, nil, nil, nil)

	router := gin.New()
	authed := router.Group("/api", func(c *gin.Context) {
		c.Set("sessionID", "sess-1")
		c.Set("userEmail", "user@example.com")
	})
	authed.GET("/catalog/tariffs/:name", h.GetTariff)
	authed.GET("/cart", h.GetCart)
	authed.GET("/cart/items", h.GetCartPage)
	authed.POST("/cart/items", h.AddToCart)
	authed.DELETE("/cart/items/:id", h.DeleteCartItem)
	authed.POST("/checkout", h.CheckoutCart)
	authed.PATCH("/profile", h.UpdateProfile)
	authed.GET("/profile/balance", h.GetBalance)
	authed.GET("/geo/countries", h.GetCountries)
	return h, router
}

func TestGetCartEnsuresCartAndReturnsTotal(t *testing.T) {
	var createCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/shopping-cart/auth-user-cart/":
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"detail": "корзина не найдена"})
		case "/shopping-cart/auth-user-cart/create/":
			atomic.AddInt32(&createCalls, 1)
			w.WriteHeader(http.StatusCreated)
		case "/shopping-cart-item/auth-user-cart-items/list/":
			json.NewEncoder(w).Encode(billing.Page[billing.CartItem]{
				Count: 2,
				Results: []billing.CartItem{
					{ID: 1, Plan: billing.PlanRef{ID: 7}, Configs: billing.Configs{Domain: "example.uz", PlanDetails: json.Number("50000"), TariffName: "Hosting Pro"}},
					{ID: 2, Plan: billing.PlanRef{ID: 5}, Configs: billing.Configs{OS: "Debian 12", PlanDetails: json.Number("120000"), TariffName: "VPS Start"}},
				},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	_, router := setupRouter(server.URL)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/api/cart", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, int32(1), atomic.LoadInt32(&createCalls))

	var cart dto.CartResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &cart))
	assert.Len(t, cart.Items, 2)
	assert.Equal(t, 170000.0, cart.Total)
	assert.Equal(t, "hosting", cart.Items[0].Kind)
}

func TestGetTariffVPSDefaultsFirstOS(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/user-side-services/tariff-with-plans-by-tariff-name/VPS Start/":
			json.NewEncoder(w).Encode(billing.Tariff{
				ID:   3,
				Name: "VPS Start",
				Plans: []billing.Plan{
					{ID: 5, PeriodMonths: 1, DiscountedMonthlyPrice: json.Number("120000")},
					{ID: 6, PeriodMonths: 12, DiscountedMonthlyPrice: json.Number("100000")},
				},
			})
		case "/user-side-services/operating-systems/":
			json.NewEncoder(w).Encode(billing.Page[billing.OperatingSystem]{
				Count: 2,
				Results: []billing.OperatingSystem{
					{ID: 10, Name: "Ubuntu 24.04"},
					{ID: 11, Name: "Debian 12"},
				},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	_, router := setupRouter(server.URL)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/api/catalog/tariffs/VPS%20Start", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var detail dto.TariffDetailResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &detail))
	assert.Equal(t, "vps", detail.Category)
	require.NotNil(t, detail.DefaultPlan)
	assert.Equal(t, int64(5), detail.DefaultPlan.ID)
	require.NotNil(t, detail.DefaultOS)
	assert.Equal(t, "Ubuntu 24.04", detail.DefaultOS.Name)
	assert.Len(t, detail.Systems, 2)
}

func TestAddToCartHostingWithoutDomain(t *testing.T) {
	var itemCreateCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/user-side-services/tariff-with-plans-by-tariff-name/"):
			json.NewEncoder(w).Encode(billing.Tariff{
				Name:  "Hosting Pro",
				Plans: []billing.Plan{{ID: 7, PeriodMonths: 12, DiscountedMonthlyPrice: json.Number("50000")}},
			})
		case r.URL.Path == "/shopping-cart-item/auth-user-cart-item/create/":
			atomic.AddInt32(&itemCreateCalls, 1)
		}
	}))
	defer server.Close()

	_, router := setupRouter(server.URL)

	body := `{"tariff":"Hosting Pro","plan_id":7}`
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rr, req)

	// валидация отсекает запрос до обращения к корзине
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, int32(0), atomic.LoadInt32(&itemCreateCalls))
}

func TestDeleteCartItemRejectsConcurrentDuplicate(t *testing.T) {
	var deleteCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&deleteCalls, 1)
		time.Sleep(200 * time.Millisecond)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	_, router := setupRouter(server.URL)

	codes := make([]int, 2)
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, httptest.NewRequest("DELETE", "/api/cart/items/42", nil))
			codes[i] = rr.Code
		}(i)
	}
	wg.Wait()

	// двойное нажатие дает один запрос к биллингу
	assert.Equal(t, int32(1), atomic.LoadInt32(&deleteCalls))
	assert.ElementsMatch(t, []int{http.StatusOK, http.StatusConflict}, codes)
}

func TestCheckoutEmptyCart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.URL.Path == "/shopping-cart-item/auth-user-cart-items/list/":
			json.NewEncoder(w).Encode(billing.Page[billing.CartItem]{Count: 0})
		case strings.HasPrefix(r.URL.Path, "/user-side-services/operating-systems/"):
			json.NewEncoder(w).Encode(billing.Page[billing.OperatingSystem]{})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	_, router := setupRouter(server.URL)

	body := `{"payment_method":"click"}`
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "корзина пуста")
}

func TestCheckoutRejectsBadPaymentMethodBeforeBilling(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	_, router := setupRouter(server.URL)

	body := `{"payment_method":"cash"}`
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/checkout", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rr, req)

	// способ оплаты проверяется binding-ом, до биллинга запрос не доходит
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestGetCartPageRejectsForeignCursor(t *testing.T) {
	var foreignCalls int32
	foreign := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&foreignCalls, 1)
	}))
	defer foreign.Close()

	var billingCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&billingCalls, 1)
	}))
	defer server.Close()

	_, router := setupRouter(server.URL)

	rr := httptest.NewRecorder()
	target := "/api/cart/items?page=" + url.QueryEscape(foreign.URL+"/steal")
	router.ServeHTTP(rr, httptest.NewRequest("GET", target, nil))

	// курсор на чужой хост отклоняется, токен сессии никуда не уходит
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, int32(0), atomic.LoadInt32(&foreignCalls))
	assert.Equal(t, int32(0), atomic.LoadInt32(&billingCalls))
}

func TestAddToCartVPSDefaultsFirstOS(t *testing.T) {
	var created billing.CreateCartItemRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/user-side-services/tariff-with-plans-by-tariff-name/VPS Start/":
			json.NewEncoder(w).Encode(billing.Tariff{
				ID:   3,
				Name: "VPS Start",
				Plans: []billing.Plan{
					{ID: 5, PeriodMonths: 1, DiscountedMonthlyPrice: json.Number("120000")},
				},
			})
		case "/user-side-services/operating-systems/":
			json.NewEncoder(w).Encode(billing.Page[billing.OperatingSystem]{
				Count: 2,
				Results: []billing.OperatingSystem{
					{ID: 10, Name: "Ubuntu 24.04"},
					{ID: 11, Name: "Debian 12"},
				},
			})
		case "/shopping-cart/auth-user-cart/":
			w.WriteHeader(http.StatusOK)
		case "/shopping-cart-item/auth-user-cart-item/create/":
			json.NewDecoder(r.Body).Decode(&created)
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(billing.CartItem{ID: 1, Plan: billing.PlanRef{ID: 5}, Configs: created.Configs})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	_, router := setupRouter(server.URL)

	body := `{"tariff":"VPS Start","plan_id":5}`
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/api/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	// ОС не выбрана — позиция создается с первой ОС из справочника
	assert.Equal(t, "Ubuntu 24.04", created.Configs.OS)
}

func TestUpdateProfileRequiresFields(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	_, router := setupRouter(server.URL)

	rr := httptest.NewRecorder()
	req := httptest.NewRequest("PATCH", "/api/profile", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "нет полей для обновления")
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestBalanceDegradesWhenBillingFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, router := setupRouter(server.URL)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/api/profile/balance", nil))

	// отказ биллинга не ломает страницу профиля
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"balance":0`)
}

func TestCountriesDegradeWhenBillingFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, router := setupRouter(server.URL)

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest("GET", "/api/geo/countries", nil))

	require.Equal(t, http.StatusOK, rr.Code)

	var resp dto.SuccessResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Empty(t, resp.Data)
}
