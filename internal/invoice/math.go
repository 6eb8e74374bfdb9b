// Package invoice holds the pure invoice arithmetic: line-item math,
// totals, status aggregates, client rollups, and revenue bucketing.
// Everything here is side-effect free; services call into it on every
// write path so the stored Amount can never drift from Items.
package invoice

import (
	"math"

	"invoicr/internal/model"
)

// ItemAmount is quantity * rate. It overwrites any stored amount
// whenever quantity or rate changes.
func ItemAmount(quantity, rate float64) float64 {
	return quantity * rate
}

// Subtotal sums quantity * rate over all items. Stored item amounts are
// ignored; they are derived values.
func Subtotal(items []model.LineItem) float64 {
	var sum float64
	for _, it := range items {
		sum += ItemAmount(it.Quantity, it.Rate)
	}
	return sum
}

// Total applies tax and discount percentages to the item subtotal.
// Nothing is clamped: a discount over 100% drives the total negative
// and that is accepted as-is.
func Total(items []model.LineItem, tax, discount float64) float64 {
	subtotal := Subtotal(items)
	taxAmount := subtotal * tax / 100
	discountAmount := subtotal * discount / 100
	return subtotal + taxAmount - discountAmount
}

// Recompute resets every item amount and the invoice total in place.
// It is the single choke point all write paths go through.
func Recompute(inv *model.Invoice) {
	for i := range inv.Items {
		inv.Items[i].Amount = ItemAmount(inv.Items[i].Quantity, inv.Items[i].Rate)
	}
	inv.Amount = Total(inv.Items, inv.Tax, inv.Discount)
}

// ValidateAmount reports whether the stored total agrees with a fresh
// recomputation within tol.
func ValidateAmount(inv model.Invoice, tol float64) bool {
	return math.Abs(inv.Amount-Total(inv.Items, inv.Tax, inv.Discount)) <= tol
}

// TotalRevenue sums the stored amounts of paid invoices.
func TotalRevenue(invoices []model.Invoice) float64 {
	return sumByStatus(invoices, model.StatusPaid)
}

// PendingAmount sums the stored amounts of sent invoices.
func PendingAmount(invoices []model.Invoice) float64 {
	return sumByStatus(invoices, model.StatusSent)
}

// OverdueAmount sums the stored amounts of overdue invoices.
func OverdueAmount(invoices []model.Invoice) float64 {
	return sumByStatus(invoices, model.StatusOverdue)
}

// sumByStatus reads the denormalized Amount field directly; it inherits
// whatever that field holds rather than recomputing from items.
func sumByStatus(invoices []model.Invoice, status string) float64 {
	var sum float64
	for _, inv := range invoices {
		if inv.Status == status {
			sum += inv.Amount
		}
	}
	return sum
}
