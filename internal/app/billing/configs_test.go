package billing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorize(t *testing.T) {
	assert.Equal(t, CategoryHosting, Categorize("Hosting Pro"))
	assert.Equal(t, CategoryHosting, Categorize("web-hosting"))
	assert.Equal(t, CategoryVPS, Categorize("VPS Start"))
	assert.Equal(t, CategoryVDS, Categorize("VDS Premium"))
	assert.Equal(t, CategoryColocation, Categorize("Colocation 1U"))
	assert.Equal(t, CategoryGeneric, Categorize("SSL Certificate"))
}

func TestConfigsKind(t *testing.T) {
	assert.Equal(t, CategoryHosting, Configs{Domain: "example.uz"}.Kind())
	assert.Equal(t, CategoryVPS, Configs{OS: "Ubuntu 22.04"}.Kind())
	assert.Equal(t, CategoryVDS, Configs{VDS: "VDS Premium"}.Kind())
	assert.Equal(t, CategoryColocation, Configs{AddonID: 3}.Kind())
	assert.Equal(t, CategoryColocation, Configs{Colocation: "Colocation 1U"}.Kind())
	assert.Equal(t, CategoryGeneric, Configs{Type: "generic"}.Kind())
	assert.Equal(t, CategoryGeneric, Configs{}.Kind())
}

func TestConfigsMonthlyPrice(t *testing.T) {
	assert.Equal(t, 50000.0, Configs{PlanDetails: json.Number("50000")}.MonthlyPrice())
	assert.Equal(t, 0.0, Configs{}.MonthlyPrice())
	assert.Equal(t, 0.0, Configs{PlanDetails: json.Number("abc")}.MonthlyPrice())
}

func TestBuildCartItemHostingRequiresDomain(t *testing.T) {
	req := ItemRequest{
		Tariff: Tariff{Name: "Hosting Pro"},
		Plan:   &Plan{ID: 7, PeriodMonths: 12, DiscountedMonthlyPrice: json.Number("50000")},
	}

	_, err := req.BuildCartItem()
	assert.ErrorIs(t, err, ErrDomainRequired)

	// пробелы доменом не считаются
	req.Domain = "   "
	_, err = req.BuildCartItem()
	assert.ErrorIs(t, err, ErrDomainRequired)
}

func TestBuildCartItemHostingConcatenatesDomain(t *testing.T) {
	req := ItemRequest{
		Tariff:    Tariff{Name: "Hosting Pro"},
		Plan:      &Plan{ID: 7, PeriodMonths: 12, DiscountedMonthlyPrice: json.Number("50000")},
		Domain:    "example",
		Extension: ".uz",
	}

	created, err := req.BuildCartItem()
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.Plan)
	assert.Equal(t, "example.uz", created.Configs.Domain)
	assert.Equal(t, "Hosting Pro", created.Configs.TariffName)
	assert.Equal(t, 12, created.Configs.PeriodMonths)
	assert.Equal(t, json.Number("50000"), created.Configs.PlanDetails)
}

func TestBuildCartItemRequiresPlan(t *testing.T) {
	req := ItemRequest{Tariff: Tariff{Name: "VPS Start"}}
	_, err := req.BuildCartItem()
	assert.ErrorIs(t, err, ErrPlanRequired)
}

func TestBuildCartItemColocationRequiresAddon(t *testing.T) {
	req := ItemRequest{
		Tariff: Tariff{Name: "Colocation 1U"},
		Plan:   &Plan{ID: 9, PeriodMonths: 1},
	}
	_, err := req.BuildCartItem()
	assert.ErrorIs(t, err, ErrAddonRequired)

	req.Addon = &ColocationAddon{ID: 4, Name: "Extra IP"}
	created, err := req.BuildCartItem()
	require.NoError(t, err)
	assert.Equal(t, "Colocation 1U", created.Configs.Colocation)
	assert.Equal(t, "Extra IP", created.Configs.Addon)
	assert.Equal(t, int64(4), created.Configs.AddonID)
}

func TestBuildCartItemVPSKeepsChosenOS(t *testing.T) {
	req := ItemRequest{
		Tariff: Tariff{Name: "VPS Start"},
		Plan:   &Plan{ID: 5, PeriodMonths: 6},
		OS:     &OperatingSystem{ID: 2, Name: "Debian 12"},
	}
	created, err := req.BuildCartItem()
	require.NoError(t, err)
	assert.Equal(t, "Debian 12", created.Configs.OS)
}

func TestOrderServicePayloadByCategory(t *testing.T) {
	osList := []OperatingSystem{{ID: 1, Name: "Ubuntu 22.04"}, {ID: 2, Name: "Debian 12"}}

	hosting := OrderServicePayload(10, CartItem{
		ID:      1,
		Plan:    PlanRef{ID: 7},
		Configs: Configs{Domain: "example.uz"},
	}, osList)
	require.NotNil(t, hosting.HostingConfig)
	assert.Equal(t, "example.uz", hosting.HostingConfig.Domain)
	assert.Equal(t, int64(10), hosting.Order)
	assert.Equal(t, int64(7), hosting.Plan)

	vps := OrderServicePayload(10, CartItem{
		Plan:    PlanRef{ID: 5},
		Configs: Configs{OS: "Debian 12"},
	}, osList)
	require.NotNil(t, vps.VPSConfig)
	assert.Equal(t, int64(2), vps.VPSConfig.OS)

	vds := OrderServicePayload(10, CartItem{
		Plan:    PlanRef{ID: 8},
		Configs: Configs{VDS: "VDS Premium"},
	}, osList)
	require.NotNil(t, vds.VDSConfig)
	assert.Equal(t, 1, vds.VDSConfig.VCPU)
	assert.Equal(t, 20, vds.VDSConfig.VSSDGb)

	colo := OrderServicePayload(10, CartItem{
		Plan:    PlanRef{ID: 9},
		Configs: Configs{Colocation: "Colocation 1U", AddonID: 4},
	}, osList)
	require.NotNil(t, colo.ColocationConfig)
	assert.Equal(t, []int64{4}, colo.ColocationConfig.Addons)

	generic := OrderServicePayload(10, CartItem{
		Plan:    PlanRef{ID: 3},
		Configs: Configs{Type: "generic"},
	}, osList)
	assert.Nil(t, generic.HostingConfig)
	assert.Nil(t, generic.VPSConfig)
	assert.Nil(t, generic.VDSConfig)
	assert.Nil(t, generic.ColocationConfig)
}

func TestPlanRefUnmarshal(t *testing.T) {
	var item CartItem
	require.NoError(t, json.Unmarshal([]byte(`{"id":1,"plan":7,"configs":{}}`), &item))
	assert.Equal(t, int64(7), item.Plan.ID)
	assert.Nil(t, item.Plan.Plan)

	require.NoError(t, json.Unmarshal([]byte(`{"id":2,"plan":{"id":8,"period_months":6},"configs":{}}`), &item))
	assert.Equal(t, int64(8), item.Plan.ID)
	require.NotNil(t, item.Plan.Plan)
	assert.Equal(t, 6, item.Plan.Plan.PeriodMonths)

	// наружу plan всегда уходит числом
	raw, err := json.Marshal(PlanRef{ID: 8, Plan: &Plan{ID: 8}})
	require.NoError(t, err)
	assert.Equal(t, "8", string(raw))
}
