package redis

import (
	"context"
	"time"
)

const jwtPrefix = "jwt."

func getJWTKey(token string) string {
	return jwtPrefix + token
}

// WriteJWTToBlacklist добавляет сессионный токен в blacklist до истечения его срока
func (c *Client) WriteJWTToBlacklist(ctx context.Context, jwtStr string, jwtTTL time.Duration) error {
	return c.client.Set(ctx, getJWTKey(jwtStr), true, jwtTTL).Err()
}

// CheckJWTInBlacklist возвращает nil, если токен найден в blacklist
func (c *Client) CheckJWTInBlacklist(ctx context.Context, jwtStr string) error {
	_, err := c.client.Get(ctx, getJWTKey(jwtStr)).Result()
	return err
}
