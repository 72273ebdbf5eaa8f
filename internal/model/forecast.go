package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ErrMissingField is returned when a required key is absent from a forecast response.
var ErrMissingField = errors.New("missing field")

// ResourceCosts maps an Azure resource name to its monthly cost, in the
// order the cost service listed them.
type ResourceCosts = orderedmap.OrderedMap[string, decimal.Decimal]

// NewResourceCosts returns an empty ordered resource cost map.
func NewResourceCosts() *ResourceCosts {
	return orderedmap.New[string, decimal.Decimal]()
}

// ForecastResult is the cost service response.
type ForecastResult struct {
	InfraCostPerMonth        decimal.Decimal `json:"infra_cost_per_month"`
	InfraCostPerYear         decimal.Decimal `json:"infra_cost_per_year"`
	OperationalCost          decimal.Decimal `json:"operational_cost"`
	TotalCost                decimal.Decimal `json:"total_cost"`
	AzureResourceCosts       *ResourceCosts  `json:"azure_resource_costs"`
	TPSSupported             decimal.Decimal `json:"tps_supported"`
	StorageOffered           string          `json:"storage_offered,omitempty"`
	OperationalCostBreakdown []BreakdownRow  `json:"operational_cost_breakdown"`
}

// BreakdownRow is one line of the operational effort breakdown.
type BreakdownRow struct {
	Resource     string          `json:"Resource"`
	ResourceType string          `json:"Resource Type"`
	EffortDays   decimal.Decimal `json:"Effort in Days"`
}

// UnmarshalJSON accepts both the snake_case keys the cost service emits and
// their camelCase spellings. Every key except storage_offered is required.
func (r *ForecastResult) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	amounts := []struct {
		dst  *decimal.Decimal
		keys []string
	}{
		{&r.InfraCostPerMonth, []string{"infra_cost_per_month", "infraCostPerMonth"}},
		{&r.InfraCostPerYear, []string{"infra_cost_per_year", "infraCostPerYear"}},
		{&r.OperationalCost, []string{"operational_cost", "operationalCost"}},
		{&r.TotalCost, []string{"total_cost", "totalCost"}},
		{&r.TPSSupported, []string{"tps_supported", "tpsSupported"}},
	}
	for _, a := range amounts {
		if err := decodeField(raw, a.dst, a.keys...); err != nil {
			return err
		}
	}

	costs := NewResourceCosts()
	if err := decodeField(raw, costs, "azure_resource_costs", "azureResourceCosts"); err != nil {
		return err
	}
	r.AzureResourceCosts = costs

	var breakdown []BreakdownRow
	if err := decodeField(raw, &breakdown, "operational_cost_breakdown", "operationalCostBreakdown"); err != nil {
		return err
	}
	r.OperationalCostBreakdown = breakdown

	r.StorageOffered = ""
	if v, _, ok := lookup(raw, "storage_offered", "storageOffered"); ok {
		r.StorageOffered = displayValue(v)
	}

	return nil
}

// UnmarshalJSON accepts the column captions used by the cost service as well
// as camelCase and snake_case keys.
func (b *BreakdownRow) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if err := decodeField(raw, &b.Resource, "Resource", "resource"); err != nil {
		return err
	}
	if err := decodeField(raw, &b.ResourceType, "Resource Type", "resourceType", "resource_type"); err != nil {
		return err
	}
	return decodeField(raw, &b.EffortDays, "Effort in Days", "effortDays", "effort_days")
}

// MarshalJSON writes the canonical snake_case keys. Amounts are JSON numbers
// carrying the exact decimal text; resource costs keep their order.
func (r ForecastResult) MarshalJSON() ([]byte, error) {
	costs := orderedmap.New[string, json.Number]()
	if r.AzureResourceCosts != nil {
		for pair := r.AzureResourceCosts.Oldest(); pair != nil; pair = pair.Next() {
			costs.Set(pair.Key, number(pair.Value))
		}
	}

	breakdown := r.OperationalCostBreakdown
	if breakdown == nil {
		breakdown = []BreakdownRow{}
	}

	return json.Marshal(struct {
		InfraCostPerMonth        json.Number                                `json:"infra_cost_per_month"`
		InfraCostPerYear         json.Number                                `json:"infra_cost_per_year"`
		OperationalCost          json.Number                                `json:"operational_cost"`
		TotalCost                json.Number                                `json:"total_cost"`
		AzureResourceCosts       *orderedmap.OrderedMap[string, json.Number] `json:"azure_resource_costs"`
		TPSSupported             json.Number                                `json:"tps_supported"`
		StorageOffered           string                                     `json:"storage_offered,omitempty"`
		OperationalCostBreakdown []BreakdownRow                             `json:"operational_cost_breakdown"`
	}{
		InfraCostPerMonth:        number(r.InfraCostPerMonth),
		InfraCostPerYear:         number(r.InfraCostPerYear),
		OperationalCost:          number(r.OperationalCost),
		TotalCost:                number(r.TotalCost),
		AzureResourceCosts:       costs,
		TPSSupported:             number(r.TPSSupported),
		StorageOffered:           r.StorageOffered,
		OperationalCostBreakdown: breakdown,
	})
}

// MarshalJSON writes the column captions with the effort as a JSON number.
func (b BreakdownRow) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Resource     string      `json:"Resource"`
		ResourceType string      `json:"Resource Type"`
		EffortDays   json.Number `json:"Effort in Days"`
	}{b.Resource, b.ResourceType, number(b.EffortDays)})
}

func number(d decimal.Decimal) json.Number { return json.Number(d.String()) }

func decodeField(raw map[string]json.RawMessage, dst any, keys ...string) error {
	v, key, ok := lookup(raw, keys...)
	if !ok {
		return fmt.Errorf("%w %q", ErrMissingField, keys[0])
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return fmt.Errorf("field %q: %w", key, err)
	}
	return nil
}

// lookup returns the first non-null value among keys.
func lookup(raw map[string]json.RawMessage, keys ...string) (json.RawMessage, string, bool) {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			continue
		}
		return v, k, true
	}
	return nil, "", false
}

// displayValue renders a JSON scalar as text: strings unquoted, anything else verbatim.
func displayValue(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	return string(bytes.TrimSpace(v))
}
