package billing

import (
	"encoding/json"
	"strings"
)

// Категория тарифа. В SPA категория выводилась подстрокой в имени
// тарифа прямо по месту использования; здесь это единственная точка,
// где происходит разбор имени.
type TariffCategory string

const (
	CategoryHosting    TariffCategory = "hosting"
	CategoryVPS        TariffCategory = "vps"
	CategoryVDS        TariffCategory = "vds"
	CategoryColocation TariffCategory = "colocation"
	CategoryGeneric    TariffCategory = "generic"
)

// Categorize определяет категорию тарифа по имени (без учета регистра)
func Categorize(tariffName string) TariffCategory {
	name := strings.ToLower(tariffName)
	switch {
	case strings.Contains(name, "host"):
		return CategoryHosting
	case strings.Contains(name, "vds"):
		return CategoryVDS
	case strings.Contains(name, "vps"):
		return CategoryVPS
	case strings.Contains(name, "colocation"):
		return CategoryColocation
	}
	return CategoryGeneric
}

// Configs — конфигурация позиции корзины. Вместо свободной map,
// которую вел SPA, это структура с фиксированными полями: ровно одно
// из категорийных полей заполнено, Kind() говорит какое.
type Configs struct {
	// категорийные поля
	Domain     string `json:"domain,omitempty"`     // hosting
	OS         string `json:"os,omitempty"`         // vps
	VDS        string `json:"vds,omitempty"`        // vds
	Addon      string `json:"addon,omitempty"`      // colocation
	AddonID    int64  `json:"addon_id,omitempty"`   // colocation
	Colocation string `json:"colocation,omitempty"` // colocation, маркер категории
	Type       string `json:"type,omitempty"`       // generic

	// сопутствующие поля, которые SPA писал в configs для отображения
	PlanDetails  json.Number `json:"plan_details,omitempty"`  // месячная цена плана
	TariffName   string      `json:"tariff_name,omitempty"`
	PeriodMonths int         `json:"period_months,omitempty"`
}

// Kind возвращает категорию конфигурации. Порядок проверок закрывает
// и смешанные записи, оставшиеся от старых клиентов.
func (c Configs) Kind() TariffCategory {
	switch {
	case c.Domain != "":
		return CategoryHosting
	case c.OS != "":
		return CategoryVPS
	case c.VDS != "":
		return CategoryVDS
	case c.Addon != "" || c.AddonID != 0 || c.Colocation != "":
		return CategoryColocation
	}
	return CategoryGeneric
}

// MonthlyPrice — числовое значение plan_details, 0 для бесплатных и
// нечисловых записей
func (c Configs) MonthlyPrice() float64 {
	if c.PlanDetails == "" {
		return 0
	}
	v, err := c.PlanDetails.Float64()
	if err != nil {
		return 0
	}
	return v
}

// ItemRequest — заполненная форма конфигуратора перед добавлением в корзину
type ItemRequest struct {
	Tariff    Tariff
	Plan      *Plan
	Domain    string
	Extension string
	OS        *OperatingSystem
	Addon     *ColocationAddon
}

// BuildCartItem валидирует форму и собирает запрос создания позиции.
// Ошибки валидации возвращаются до любого сетевого вызова.
func (r ItemRequest) BuildCartItem() (CreateCartItemRequest, error) {
	if r.Plan == nil || r.Plan.ID == 0 {
		return CreateCartItemRequest{}, ErrPlanRequired
	}

	configs := Configs{
		PlanDetails:  r.Plan.DiscountedMonthlyPrice,
		TariffName:   r.Tariff.Name,
		PeriodMonths: r.Plan.PeriodMonths,
	}

	switch Categorize(r.Tariff.Name) {
	case CategoryHosting:
		if strings.TrimSpace(r.Domain) == "" {
			return CreateCartItemRequest{}, ErrDomainRequired
		}
		configs.Domain = r.Domain + r.Extension
	case CategoryVPS:
		if r.OS != nil {
			configs.OS = r.OS.Name
		}
	case CategoryColocation:
		if r.Addon == nil {
			return CreateCartItemRequest{}, ErrAddonRequired
		}
		configs.Colocation = r.Tariff.Name
		configs.Addon = r.Addon.Name
		configs.AddonID = r.Addon.ID
	default:
		configs.Type = string(Categorize(r.Tariff.Name))
	}

	return CreateCartItemRequest{Plan: r.Plan.ID, Configs: configs}, nil
}

type CreateCartItemRequest struct {
	Plan    int64   `json:"plan"`
	Configs Configs `json:"configs"`
}

type UpdateCartItemRequest struct {
	Plan    int64   `json:"plan"`
	Configs Configs `json:"configs"`
}

type CreateOrderRequest struct {
	PaymentMethod string `json:"payment_method"`
	Reason        string `json:"reason,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

type CreateOrderServiceRequest struct {
	Order            int64             `json:"order"`
	Plan             int64             `json:"plan"`
	HostingConfig    *HostingConfig    `json:"hosting_config,omitempty"`
	VPSConfig        *VPSConfig        `json:"vps_config,omitempty"`
	VDSConfig        *VDSConfig        `json:"vds_config,omitempty"`
	ColocationConfig *ColocationConfig `json:"colocation_config,omitempty"`
}

// OrderServicePayload собирает запрос создания услуги заказа из
// позиции корзины. Полная развертка по категориям: и создание, и
// оформление проходят через один и тот же разбор.
func OrderServicePayload(orderID int64, item CartItem, osList []OperatingSystem) CreateOrderServiceRequest {
	req := CreateOrderServiceRequest{
		Order: orderID,
		Plan:  item.Plan.ID,
	}

	switch item.Configs.Kind() {
	case CategoryHosting:
		req.HostingConfig = &HostingConfig{Domain: item.Configs.Domain}
	case CategoryVPS:
		req.VPSConfig = &VPSConfig{OS: findOSID(osList, item.Configs.OS)}
	case CategoryVDS:
		// размеры по умолчанию, как и в SPA: биллинг уточняет их при активации
		req.VDSConfig = &VDSConfig{
			OS:          0,
			VCPU:        1,
			VRAMGb:      1,
			VSSDGb:      20,
			IPs:         1,
			InternetMbs: 10,
			TasixMbs:    10,
		}
	case CategoryColocation:
		req.ColocationConfig = &ColocationConfig{Addons: []int64{item.Configs.AddonID}}
	case CategoryGeneric:
		// без конфигурации: биллингу достаточно плана
	}

	return req
}

func findOSID(osList []OperatingSystem, name string) int64 {
	for _, os := range osList {
		if os.Name == name {
			return os.ID
		}
	}
	return 0
}
