package render

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

func resourceTable(v View) table.Writer {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"", "Cost (USD)"})
	for _, rc := range v.ResourceCosts {
		t.AppendRow(table.Row{rc.Name, rc.Cost.String()})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	return t
}

func breakdownTable(v View) table.Writer {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Resource", "Resource Type", "Effort in Days"})
	for _, row := range v.Breakdown {
		t.AppendRow(table.Row{row.Resource, row.ResourceType, row.EffortDays.String()})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
	})
	return t
}

func htmlOptions(class string) table.HTMLOptions {
	opts := table.DefaultHTMLOptions
	opts.CSSClass = class
	opts.EscapeText = true
	return opts
}

// ResourceTableHTML renders the resource cost table as an HTML fragment.
// Cell text is escaped.
func ResourceTableHTML(v View) string {
	t := resourceTable(v)
	t.Style().HTML = htmlOptions("resource-costs")
	return t.RenderHTML()
}

// BreakdownTableHTML renders the operational breakdown as an HTML fragment.
// Cell text is escaped.
func BreakdownTableHTML(v View) string {
	t := breakdownTable(v)
	t.Style().HTML = htmlOptions("operational-breakdown")
	return t.RenderHTML()
}
