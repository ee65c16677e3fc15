package billing

import (
	"context"
	"fmt"
	"net/http"
)

// Profile возвращает профиль авторизованного пользователя
func (c *Client) Profile(ctx context.Context, sessionID, lang string) (UserProfile, error) {
	var profile UserProfile
	err := c.do(ctx, sessionID, http.MethodGet, c.endpoint(lang, "users/user-profile/"), nil, &profile,
		"не удалось получить профиль")
	return profile, err
}

// UpdateProfile частично обновляет профиль. fields — только
// изменившиеся поля, как их прислала форма.
func (c *Client) UpdateProfile(ctx context.Context, sessionID string, fields map[string]interface{}) (UserProfile, error) {
	var profile UserProfile
	err := c.do(ctx, sessionID, http.MethodPatch, c.baseURL+"users/user-profile/", fields, &profile,
		"не удалось обновить профиль")
	return profile, err
}

// UserBalance возвращает баланс лицевого счета
func (c *Client) UserBalance(ctx context.Context, sessionID string) (Balance, error) {
	var balance Balance
	err := c.do(ctx, sessionID, http.MethodGet, c.baseURL+"users/user-balance/", nil, &balance,
		"не удалось получить баланс")
	return balance, err
}

// Countries возвращает справочник стран
func (c *Client) Countries(ctx context.Context, sessionID, lang string) (Page[Country], error) {
	var page Page[Country]
	err := c.do(ctx, sessionID, http.MethodGet, c.endpoint(lang, "common/geolocation/countries"), nil, &page,
		"не удалось получить список стран")
	return page, err
}

// CityWithDistricts возвращает города страны с районами
func (c *Client) CityWithDistricts(ctx context.Context, sessionID, lang string, countryID int64) ([]City, error) {
	var cities []City
	err := c.do(ctx, sessionID, http.MethodGet,
		c.endpoint(lang, fmt.Sprintf("common/geolocation/city_with_districts/%d", countryID)),
		nil, &cities, "не удалось получить список городов")
	return cities, err
}
