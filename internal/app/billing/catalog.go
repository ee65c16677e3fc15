package billing

import (
	"context"
	"net/http"
	"net/url"

	"github.com/sirupsen/logrus"
)

// Catalog — данные для конфигуратора заказа на выбранном языке
type Catalog struct {
	Services         []Service         `json:"services"`
	ColocationAddons []ColocationAddon `json:"colocation_addons"`
	OperatingSystems []OperatingSystem `json:"operating_systems"`
}

// ServicesWithTariffs возвращает первую страницу списка услуг с тарифами
func (c *Client) ServicesWithTariffs(ctx context.Context, sessionID, lang string) (Page[Service], error) {
	var page Page[Service]
	err := c.do(ctx, sessionID, http.MethodGet,
		c.endpoint(lang, "user-side-services/services-with-tariff-names/")+c.listQuery(),
		nil, &page, "не удалось получить список услуг")
	return page, err
}

// ActiveColocationAddons возвращает первую страницу активных дополнений colocation
func (c *Client) ActiveColocationAddons(ctx context.Context, sessionID, lang string) (Page[ColocationAddon], error) {
	var page Page[ColocationAddon]
	err := c.do(ctx, sessionID, http.MethodGet,
		c.endpoint(lang, "user-side-services/active-colocation-addons/")+c.listQuery(),
		nil, &page, "не удалось получить список дополнений")
	return page, err
}

// OperatingSystems возвращает первую страницу списка операционных систем
func (c *Client) OperatingSystems(ctx context.Context, sessionID, lang string) (Page[OperatingSystem], error) {
	var page Page[OperatingSystem]
	err := c.do(ctx, sessionID, http.MethodGet,
		c.endpoint(lang, "user-side-services/operating-systems/")+c.listQuery(),
		nil, &page, "не удалось получить список операционных систем")
	return page, err
}

// TariffWithPlans возвращает тариф с планами по имени тарифа
func (c *Client) TariffWithPlans(ctx context.Context, sessionID, lang, tariffName string) (Tariff, error) {
	var tariff Tariff
	err := c.do(ctx, sessionID, http.MethodGet,
		c.endpoint(lang, "user-side-services/tariff-with-plans-by-tariff-name/"+url.PathEscape(tariffName)+"/"),
		nil, &tariff, "не удалось получить детали тарифа")
	return tariff, err
}

// LoadCatalog загружает каталог целиком. Ошибка списка услуг фатальна,
// дополнения и ОС деградируют до пустых списков: отказ одного
// вспомогательного справочника не блокирует остальные.
func (c *Client) LoadCatalog(ctx context.Context, sessionID, lang string) (Catalog, error) {
	catalog := Catalog{}

	services, err := c.ServicesWithTariffs(ctx, sessionID, lang)
	if err != nil {
		return catalog, err
	}
	catalog.Services = services.Results

	addons, err := c.ActiveColocationAddons(ctx, sessionID, lang)
	if err != nil {
		logrus.Error("Error fetching colocation addons: ", err)
	} else {
		catalog.ColocationAddons = addons.Results
	}

	osPage, err := c.OperatingSystems(ctx, sessionID, lang)
	if err != nil {
		logrus.Error("Error fetching operating systems: ", err)
	} else {
		catalog.OperatingSystems = osPage.Results
	}

	return catalog, nil
}
