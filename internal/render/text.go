package render

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
)

const (
	chartHeight   = 16
	minChartWidth = 40
	barSlotWidth  = 12
)

var barColors = []string{"#4CAF50", "#66c2a5", "#abdda4", "#fee08b", "#f46d43", "#d73027"}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginTop(1)
	metricStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4CAF50")).
			Padding(0, 1)
	chartStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#4CAF50"))
)

// Text renders the view for a terminal: metric boxes, a bar chart of the
// resource costs and the two tables.
func Text(v View) string {
	var b strings.Builder

	section(&b, "Cost Forecast", metricRow(v.Headline))

	if len(v.ResourceCosts) > 0 {
		chart := chartStyle.Render(drawChart(v))
		t := resourceTable(v)
		t.SetStyle(table.StyleRounded)
		section(&b, "Azure Resource Costs", chart+"\n"+t.Render())
	}

	section(&b, "Additional Information", metricRow(v.Additional))

	bt := breakdownTable(v)
	bt.SetStyle(table.StyleRounded)
	section(&b, "Operational Resources Breakdown", bt.Render())

	return b.String()
}

func section(b *strings.Builder, title, body string) {
	fmt.Fprintln(b, titleStyle.Render(title))
	fmt.Fprintln(b, body)
}

func metricRow(metrics []Metric) string {
	boxes := make([]string, len(metrics))
	for i, m := range metrics {
		boxes[i] = metricStyle.Render(m.Label + "\n" + m.Value)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func drawChart(v View) string {
	width := len(v.ResourceCosts) * barSlotWidth
	if width < minChartWidth {
		width = minChartWidth
	}

	bc := barchart.New(width, chartHeight)
	for i, rc := range v.ResourceCosts {
		bc.Push(barchart.BarData{
			Label: rc.Name,
			Values: []barchart.BarValue{
				{
					Name:  rc.Name,
					Value: rc.Cost.InexactFloat64(),
					Style: lipgloss.NewStyle().Foreground(lipgloss.Color(barColors[i%len(barColors)])),
				},
			},
		})
	}
	bc.Draw()
	return bc.View()
}
