// Package render maps a forecast onto the widgets shown to the user. Every
// number is carried through verbatim; nothing is rounded or aggregated.
package render

import (
	"github.com/shopspring/decimal"

	"github.com/finopsmind/costmeter/internal/model"
)

// Metric is a captioned headline value.
type Metric struct {
	Label string
	Value string
}

// ResourceCost is one row of the Azure resource cost table.
type ResourceCost struct {
	Name string
	Cost decimal.Decimal
}

// Bar is one bar of the resource cost chart. Percent is the bar length
// relative to the largest cost and only drives drawing.
type Bar struct {
	Label   string
	Value   string
	Percent float64
}

// View is everything the result page displays.
type View struct {
	Headline      []Metric
	ResourceCosts []ResourceCost
	Additional    []Metric
	Breakdown     []model.BreakdownRow
}

// Currency formats an amount the way the calculator always has: a dollar
// sign followed by the amount exactly as the cost service sent it.
func Currency(d decimal.Decimal) string {
	return "$" + d.String()
}

// Render builds the view for r.
func Render(r *model.ForecastResult) View {
	v := View{
		Headline: []Metric{
			{Label: "Infra Cost per Month", Value: Currency(r.InfraCostPerMonth)},
			{Label: "Infra Cost per Year", Value: Currency(r.InfraCostPerYear)},
			{Label: "Operational Cost", Value: Currency(r.OperationalCost)},
			{Label: "Total Cost", Value: Currency(r.TotalCost)},
		},
		Additional: []Metric{
			{Label: "TPS Supported", Value: r.TPSSupported.String()},
		},
		Breakdown: r.OperationalCostBreakdown,
	}

	if r.StorageOffered != "" {
		v.Additional = append(v.Additional, Metric{Label: "Storage Offered", Value: r.StorageOffered})
	}

	if r.AzureResourceCosts != nil {
		v.ResourceCosts = make([]ResourceCost, 0, r.AzureResourceCosts.Len())
		for pair := r.AzureResourceCosts.Oldest(); pair != nil; pair = pair.Next() {
			v.ResourceCosts = append(v.ResourceCosts, ResourceCost{Name: pair.Key, Cost: pair.Value})
		}
	}

	return v
}

// Bars returns the chart data in table order.
func (v View) Bars() []Bar {
	peak := decimal.Zero
	for _, rc := range v.ResourceCosts {
		if rc.Cost.GreaterThan(peak) {
			peak = rc.Cost
		}
	}

	bars := make([]Bar, len(v.ResourceCosts))
	for i, rc := range v.ResourceCosts {
		bars[i] = Bar{Label: rc.Name, Value: rc.Cost.String()}
		if peak.IsPositive() && rc.Cost.IsPositive() {
			bars[i].Percent = rc.Cost.Div(peak).Mul(decimal.NewFromInt(100)).InexactFloat64()
		}
	}
	return bars
}
