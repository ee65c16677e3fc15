package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "session."

// ErrSessionNotFound — сессии нет в Redis (истекла или пользователь разлогинен)
var ErrSessionNotFound = errors.New("session not found")

// sessionRecord — access/refresh токены биллинга, привязанные к сессии кабинета
type sessionRecord struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

func getSessionKey(sessionID string) string {
	return sessionPrefix + sessionID
}

// SaveSession сохраняет токены биллинга для новой сессии с TTL сессии
func (c *Client) SaveSession(ctx context.Context, sessionID, access, refresh string, ttl time.Duration) error {
	payload, err := json.Marshal(sessionRecord{Access: access, Refresh: refresh})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, getSessionKey(sessionID), payload, ttl).Err()
}

// Tokens возвращает access и refresh токены сессии
func (c *Client) Tokens(ctx context.Context, sessionID string) (string, string, error) {
	raw, err := c.client.Get(ctx, getSessionKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", "", ErrSessionNotFound
		}
		return "", "", fmt.Errorf("cannot read session: %w", err)
	}

	var rec sessionRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return "", "", fmt.Errorf("corrupted session record: %w", err)
	}
	return rec.Access, rec.Refresh, nil
}

// SaveAccess обновляет access токен после рефреша, не трогая TTL сессии
func (c *Client) SaveAccess(ctx context.Context, sessionID, access string) error {
	_, refresh, err := c.Tokens(ctx, sessionID)
	if err != nil {
		return err
	}
	payload, err := json.Marshal(sessionRecord{Access: access, Refresh: refresh})
	if err != nil {
		return err
	}
	return c.client.Set(ctx, getSessionKey(sessionID), payload, redis.KeepTTL).Err()
}

// Clear удаляет токены сессии (logout или неудачный рефреш)
func (c *Client) Clear(ctx context.Context, sessionID string) error {
	return c.client.Del(ctx, getSessionKey(sessionID)).Err()
}
