package billing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"mycloud/internal/app/config"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"
)

// TokenStore выдает и обновляет токены биллинга по ID сессии кабинета.
// Реализуется redis-клиентом.
type TokenStore interface {
	Tokens(ctx context.Context, sessionID string) (access, refresh string, err error)
	SaveAccess(ctx context.Context, sessionID, access string) error
	Clear(ctx context.Context, sessionID string) error
}

// Client — клиент REST API биллинга. Все авторизованные вызовы идут
// через do: bearer из TokenStore, на 401 ровно одна попытка рефреша
// на запрос, конкурентные рефреши одной сессии схлопываются в один.
type Client struct {
	baseURL  string
	pageSize int
	http     *http.Client
	store    TokenStore
	refresh  singleflight.Group
}

func NewClient(cfg config.BillingConfig, store TokenStore) *Client {
	return &Client{
		baseURL:  strings.TrimSuffix(cfg.BaseURL, "/") + "/",
		pageSize: cfg.PageSize,
		http:     &http.Client{Timeout: cfg.Timeout},
		store:    store,
	}
}

// langPrefix: узбекская локаль живет без префикса, остальные языки
// добавляются сегментом в начало пути
func langPrefix(lang string) string {
	if lang == "" || lang == "uz" {
		return ""
	}
	return lang + "/"
}

func (c *Client) endpoint(lang, path string) string {
	return c.baseURL + langPrefix(lang) + path
}

func (c *Client) listQuery() string {
	return fmt.Sprintf("?limit=%d&offset=0", c.pageSize)
}

// cursorURL проверяет, что next-курсор остается в пределах базового
// URL биллинга: туда уходит bearer сессии
func (c *Client) cursorURL(cursor string) (string, error) {
	if !strings.HasPrefix(cursor, c.baseURL) {
		return "", ErrBadCursor
	}
	return cursor, nil
}

// do выполняет один запрос к биллингу. sessionID пустой — запрос без
// авторизации. fallback — сообщение об ошибке, если биллинг не
// прислал detail.
func (c *Client) do(ctx context.Context, sessionID, method, rawURL string, body, out interface{}, fallback string) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
	}

	send := func(token string) (*http.Response, error) {
		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return c.http.Do(req)
	}

	var token string
	if sessionID != "" {
		access, _, err := c.store.Tokens(ctx, sessionID)
		if err != nil {
			return ErrSessionExpired
		}
		token = access
	}

	resp, err := send(token)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode == http.StatusUnauthorized && sessionID != "" {
		resp.Body.Close()

		access, err := c.refreshAccess(ctx, sessionID)
		if err != nil {
			return err
		}

		resp, err = send(access)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		if resp.StatusCode == http.StatusUnauthorized {
			// и свежий access не принят: сессию дальше не тянем
			resp.Body.Close()
			if err := c.store.Clear(ctx, sessionID); err != nil {
				logrus.Warn("cannot clear session tokens: ", err)
			}
			return ErrSessionExpired
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apiError(resp, fallback)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// refreshAccess обменивает refresh токен на новый access. Singleflight
// по ID сессии: одновременные 401 нескольких запросов дают один
// обмен, остальные ждут его результат.
func (c *Client) refreshAccess(ctx context.Context, sessionID string) (string, error) {
	v, err, _ := c.refresh.Do(sessionID, func() (interface{}, error) {
		_, refresh, err := c.store.Tokens(ctx, sessionID)
		if err != nil {
			return nil, ErrSessionExpired
		}

		payload, err := json.Marshal(map[string]string{"refresh": refresh})
		if err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"auth/token-refresh/", bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			if err := c.store.Clear(ctx, sessionID); err != nil {
				logrus.Warn("cannot clear session tokens: ", err)
			}
			return nil, ErrSessionExpired
		}

		var result struct {
			Access string `json:"access"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return nil, fmt.Errorf("decode refresh response: %w", err)
		}

		if err := c.store.SaveAccess(ctx, sessionID, result.Access); err != nil {
			logrus.Warn("cannot persist refreshed access token: ", err)
		}
		return result.Access, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

func apiError(resp *http.Response, fallback string) error {
	message := fallback

	var detail errDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err == nil && detail.Detail != "" {
		message = detail.Detail
	}

	return &APIError{StatusCode: resp.StatusCode, Message: message}
}
