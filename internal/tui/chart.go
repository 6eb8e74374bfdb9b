package tui

import (
	"fmt"
	"strings"

	"invoicr/internal/currency"
	"invoicr/internal/invoice"
)

// barChart renders revenue buckets as a horizontal ASCII chart.
type barChart struct {
	Title    string
	Currency string
	Data     []invoice.Bucket
}

func (c barChart) Render(width int) string {
	if width <= 0 {
		return ""
	}
	if len(c.Data) == 0 {
		return c.Title + "\n(no data)"
	}
	scale := invoice.ChartScale(c.Data)
	barWidth := width - 28
	if barWidth < 8 {
		barWidth = 8
	}
	sym := currency.Symbol(c.Currency)
	lines := []string{c.Title}
	for _, b := range c.Data {
		w := int((b.Value / scale) * float64(barWidth))
		if w < 1 && b.Value > 0 {
			w = 1
		}
		lines = append(lines, fmt.Sprintf("%-8s %s %s%.2f", b.Label, strings.Repeat("#", w), sym, b.Value))
	}
	return strings.Join(lines, "\n")
}
