package billing

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureCartCreatesMissingCart(t *testing.T) {
	for _, status := range []int{http.StatusNotFound, http.StatusBadRequest} {
		var createCalls int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/shopping-cart/auth-user-cart/":
				w.WriteHeader(status)
				json.NewEncoder(w).Encode(map[string]string{"detail": "корзина не найдена"})
			case "/shopping-cart/auth-user-cart/create/":
				atomic.AddInt32(&createCalls, 1)
				assert.Equal(t, http.MethodPost, r.Method)
				w.WriteHeader(http.StatusCreated)
			default:
				t.Errorf("unexpected path %s", r.URL.Path)
			}
		}))

		client := newTestClient(server.URL, &fakeStore{access: "a", refresh: "r"})
		err := client.EnsureCart(context.Background(), "sess-1")

		assert.NoError(t, err)
		assert.Equal(t, int32(1), atomic.LoadInt32(&createCalls), "status %d", status)
		server.Close()
	}
}

func TestEnsureCartSkipsCreateWhenCartExists(t *testing.T) {
	var createCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/shopping-cart/auth-user-cart/":
			w.WriteHeader(http.StatusOK)
		case "/shopping-cart/auth-user-cart/create/":
			atomic.AddInt32(&createCalls, 1)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL, &fakeStore{access: "a", refresh: "r"})
	err := client.EnsureCart(context.Background(), "sess-1")

	assert.NoError(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(&createCalls))
}

func TestEnsureCartPropagatesOtherErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL, &fakeStore{access: "a", refresh: "r"})
	err := client.EnsureCart(context.Background(), "sess-1")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestCartItemsFollowsNextCursor(t *testing.T) {
	var server *httptest.Server
	server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/shopping-cart-item/auth-user-cart-items/list/":
			next := server.URL + "/shopping-cart-item/auth-user-cart-items/list/page2/"
			json.NewEncoder(w).Encode(Page[CartItem]{
				Count:   3,
				Next:    &next,
				Results: []CartItem{{ID: 1}, {ID: 2}},
			})
		case "/shopping-cart-item/auth-user-cart-items/list/page2/":
			json.NewEncoder(w).Encode(Page[CartItem]{
				Count:   3,
				Results: []CartItem{{ID: 3}},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	client := newTestClient(server.URL, &fakeStore{access: "a", refresh: "r"})

	first, err := client.CartItems(context.Background(), "sess-1", "")
	require.NoError(t, err)
	require.NotNil(t, first.Next)
	assert.Len(t, first.Results, 2)

	second, err := client.CartItems(context.Background(), "sess-1", *first.Next)
	require.NoError(t, err)
	assert.Nil(t, second.Next)
	assert.Len(t, second.Results, 1)
	assert.Equal(t, int64(3), second.Results[0].ID)
}

func TestCartItemsRejectsForeignCursor(t *testing.T) {
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

	client := newTestClient(server.URL, &fakeStore{access: "a", refresh: "r"})
	_, err := client.CartItems(context.Background(), "sess-1", foreign.URL+"/steal")

	// чужой курсор отсекается до запроса: bearer не уходит наружу
	require.ErrorIs(t, err, ErrBadCursor)
	assert.Equal(t, int32(0), atomic.LoadInt32(&foreignCalls))
	assert.Equal(t, int32(0), atomic.LoadInt32(&billingCalls))
}

func TestDeleteCartItemSingleRequest(t *testing.T) {
	var deleteCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/shopping-cart-item/auth-user-cart-item/42/delete/", r.URL.Path)
		assert.Equal(t, http.MethodDelete, r.Method)
		atomic.AddInt32(&deleteCalls, 1)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(server.URL, &fakeStore{access: "a", refresh: "r"})
	err := client.DeleteCartItem(context.Background(), "sess-1", 42)

	assert.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&deleteCalls))
}
