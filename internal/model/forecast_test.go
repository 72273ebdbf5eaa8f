package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snakeForecast = `{
	"infra_cost_per_month": 84.18,
	"infra_cost_per_year": 1010.16,
	"operational_cost": 1200,
	"total_cost": 2210.16,
	"azure_resource_costs": {"Logic App": 20, "API Management": 10, "Storage": 54.18},
	"tps_supported": 50,
	"operational_cost_breakdown": [
		{"Resource": "Logic App", "Resource Type": "Workflow", "Effort in Days": 2},
		{"Resource": "API Management", "Resource Type": "Gateway", "Effort in Days": 0.5}
	]
}`

func TestForecastResultUnmarshalSnakeCase(t *testing.T) {
	var r ForecastResult
	require.NoError(t, json.Unmarshal([]byte(snakeForecast), &r))

	assert.Equal(t, "84.18", r.InfraCostPerMonth.String())
	assert.Equal(t, "1010.16", r.InfraCostPerYear.String())
	assert.Equal(t, "1200", r.OperationalCost.String())
	assert.Equal(t, "2210.16", r.TotalCost.String())
	assert.Equal(t, "50", r.TPSSupported.String())
	assert.Empty(t, r.StorageOffered)

	var names []string
	for pair := r.AzureResourceCosts.Oldest(); pair != nil; pair = pair.Next() {
		names = append(names, pair.Key)
	}
	assert.Equal(t, []string{"Logic App", "API Management", "Storage"}, names)

	require.Len(t, r.OperationalCostBreakdown, 2)
	assert.Equal(t, "API Management", r.OperationalCostBreakdown[1].Resource)
	assert.Equal(t, "Gateway", r.OperationalCostBreakdown[1].ResourceType)
	assert.True(t, r.OperationalCostBreakdown[1].EffortDays.Equal(decimal.RequireFromString("0.5")))
}

func TestForecastResultUnmarshalCamelCase(t *testing.T) {
	body := `{
		"infraCostPerMonth": 1,
		"infraCostPerYear": 12,
		"operationalCost": 3,
		"totalCost": 15,
		"azureResourceCosts": {"B": 20, "A": 10},
		"tpsSupported": 5,
		"storageOffered": 100,
		"operationalCostBreakdown": [{"resource": "B", "resourceType": "Queue", "effortDays": 1.25}]
	}`

	var r ForecastResult
	require.NoError(t, json.Unmarshal([]byte(body), &r))

	assert.Equal(t, "15", r.TotalCost.String())
	assert.Equal(t, "100", r.StorageOffered)

	first := r.AzureResourceCosts.Oldest()
	require.NotNil(t, first)
	assert.Equal(t, "B", first.Key)

	require.Len(t, r.OperationalCostBreakdown, 1)
	assert.Equal(t, "Queue", r.OperationalCostBreakdown[0].ResourceType)
	assert.Equal(t, "1.25", r.OperationalCostBreakdown[0].EffortDays.String())
}

func TestForecastResultStorageOfferedString(t *testing.T) {
	body := `{
		"infra_cost_per_month": 1, "infra_cost_per_year": 12, "operational_cost": 0,
		"total_cost": 12, "azure_resource_costs": {}, "tps_supported": 0,
		"storage_offered": "250 GB", "operational_cost_breakdown": []
	}`

	var r ForecastResult
	require.NoError(t, json.Unmarshal([]byte(body), &r))
	assert.Equal(t, "250 GB", r.StorageOffered)
	assert.Equal(t, 0, r.AzureResourceCosts.Len())
	assert.Empty(t, r.OperationalCostBreakdown)
}

func TestForecastResultMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
		key  string
	}{
		{
			name: "no total",
			body: `{"infra_cost_per_month": 1, "infra_cost_per_year": 12, "operational_cost": 0,
				"azure_resource_costs": {}, "tps_supported": 0, "operational_cost_breakdown": []}`,
			key: "total_cost",
		},
		{
			name: "null resource costs",
			body: `{"infra_cost_per_month": 1, "infra_cost_per_year": 12, "operational_cost": 0,
				"total_cost": 12, "azure_resource_costs": null, "tps_supported": 0,
				"operational_cost_breakdown": []}`,
			key: "azure_resource_costs",
		},
		{
			name: "breakdown row without effort",
			body: `{"infra_cost_per_month": 1, "infra_cost_per_year": 12, "operational_cost": 0,
				"total_cost": 12, "azure_resource_costs": {}, "tps_supported": 0,
				"operational_cost_breakdown": [{"Resource": "A", "Resource Type": "B"}]}`,
			key: "Effort in Days",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r ForecastResult
			err := json.Unmarshal([]byte(tt.body), &r)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrMissingField)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestForecastResultRejectsWrongTypes(t *testing.T) {
	body := `{"infra_cost_per_month": "lots", "infra_cost_per_year": 12, "operational_cost": 0,
		"total_cost": 12, "azure_resource_costs": {}, "tps_supported": 0, "operational_cost_breakdown": []}`

	var r ForecastResult
	assert.Error(t, json.Unmarshal([]byte(body), &r))

	assert.Error(t, json.Unmarshal([]byte(`[1, 2]`), &r))
}

func TestForecastResultMarshalWritesNumbers(t *testing.T) {
	var r ForecastResult
	require.NoError(t, json.Unmarshal([]byte(snakeForecast), &r))

	data, err := json.Marshal(&r)
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"infra_cost_per_month": 84.18,
		"infra_cost_per_year": 1010.16,
		"operational_cost": 1200,
		"total_cost": 2210.16,
		"azure_resource_costs": {"Logic App": 20, "API Management": 10, "Storage": 54.18},
		"tps_supported": 50,
		"operational_cost_breakdown": [
			{"Resource": "Logic App", "Resource Type": "Workflow", "Effort in Days": 2},
			{"Resource": "API Management", "Resource Type": "Gateway", "Effort in Days": 0.5}
		]
	}`, string(data))

	out := string(data)
	assert.Contains(t, out, `"total_cost":2210.16`)
	assert.Less(t, strings.Index(out, `"Logic App":20`), strings.Index(out, `"API Management":10`))
	assert.Less(t, strings.Index(out, `"API Management":10`), strings.Index(out, `"Storage":54.18`))

	var again ForecastResult
	require.NoError(t, json.Unmarshal(data, &again))
	assert.True(t, again.TotalCost.Equal(r.TotalCost))
	assert.Equal(t, r.AzureResourceCosts.Len(), again.AzureResourceCosts.Len())
}

func TestForecastResultMarshalEmpty(t *testing.T) {
	data, err := json.Marshal(ForecastResult{StorageOffered: "100"})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"infra_cost_per_month": 0,
		"infra_cost_per_year": 0,
		"operational_cost": 0,
		"total_cost": 0,
		"azure_resource_costs": {},
		"tps_supported": 0,
		"storage_offered": "100",
		"operational_cost_breakdown": []
	}`, string(data))
}
