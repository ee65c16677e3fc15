package billing

import (
	"bytes"
	"encoding/json"
)

// Page — пагинированный ответ биллинга. Next — абсолютный URL
// следующей страницы или null на последней.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

type Service struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Info        string   `json:"info"`
	Tariffs     []Tariff `json:"tariffs"`
}

type Tariff struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Info        string `json:"info"`
	Properties  string `json:"properties"` // текст, строки через \r\n
	Plans       []Plan `json:"plans"`
}

type Plan struct {
	ID                     int64       `json:"id"`
	PeriodMonths           int         `json:"period_months"`
	DiscountedMonthlyPrice json.Number `json:"discounted_monthly_price"`
	Discount               json.Number `json:"discount"`
	TariffName             string      `json:"tariff_name"`
}

type OperatingSystem struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type ColocationAddon struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	MonthlyPrice json.Number `json:"monthly_price"`
}

// PlanRef — поле plan у позиции корзины: биллинг отдает либо id,
// либо вложенный объект плана
type PlanRef struct {
	ID   int64
	Plan *Plan
}

func (p *PlanRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '{' {
		var plan Plan
		if err := json.Unmarshal(data, &plan); err != nil {
			return err
		}
		p.Plan = &plan
		p.ID = plan.ID
		return nil
	}
	return json.Unmarshal(data, &p.ID)
}

func (p PlanRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ID)
}

type CartItem struct {
	ID      int64   `json:"id"`
	Plan    PlanRef `json:"plan"`
	Configs Configs `json:"configs"`
}

type Order struct {
	ID            int64          `json:"id"`
	OrderDate     string         `json:"order_date"`
	TotalCost     json.Number    `json:"total_cost"`
	PaymentMethod string         `json:"payment_method"`
	OrderServices []OrderService `json:"order_services,omitempty"`
}

// Статусы услуги в заказе
const (
	StatusPending   = "pending"
	StatusActive    = "active"
	StatusSuspended = "suspended"
	StatusCanceled  = "canceled"
	StatusExpired   = "expired"
)

type OrderService struct {
	ID               int64             `json:"id"`
	Plan             PlanRef           `json:"plan"`
	Status           string            `json:"status"`
	ActivationDate   string            `json:"activation_date"`
	RenewalDate      string            `json:"renewal_date"`
	HostingConfig    *HostingConfig    `json:"hosting_config,omitempty"`
	VPSConfig        *VPSConfig        `json:"vps_config,omitempty"`
	VDSConfig        *VDSConfig        `json:"vds_config,omitempty"`
	ColocationConfig *ColocationConfig `json:"colocation_config,omitempty"`
}

type HostingConfig struct {
	Domain string `json:"domain"`
}

type VPSConfig struct {
	OS int64 `json:"os"`
}

type VDSConfig struct {
	OS          int64 `json:"os"`
	VCPU        int   `json:"vcpu"`
	VRAMGb      int   `json:"vram_gb"`
	VSSDGb      int   `json:"vssd_gb"`
	IPs         int   `json:"ips"`
	InternetMbs int   `json:"internet_mbs"`
	TasixMbs    int   `json:"tasix_mbs"`
}

type ColocationConfig struct {
	Addons []int64 `json:"addons"`
}

type TokenPair struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type UserProfile struct {
	ID          int64           `json:"id"`
	Email       string          `json:"email"`
	FirstName   string          `json:"first_name"`
	LastName    string          `json:"last_name"`
	Phone       string          `json:"phone"`
	Country     int64           `json:"country"`
	City        int64           `json:"city"`
	District    int64           `json:"district"`
	Address     string          `json:"address"`
	IsLegal     bool            `json:"is_legal"`
	Individual  json.RawMessage `json:"individual,omitempty"`
	LegalEntity json.RawMessage `json:"legal_entity,omitempty"`
}

type Balance struct {
	Balance json.Number `json:"balance"`
}

type Country struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type City struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Districts []District `json:"districts"`
}

type District struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}
