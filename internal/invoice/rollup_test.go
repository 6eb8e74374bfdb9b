package invoice

import (
	"testing"

	"invoicr/internal/model"
)

func TestRollupIdempotent(t *testing.T) {
	c := model.Client{ID: 1, Name: "Acme", InvoiceCount: 99, TotalAmount: 1234}
	invoices := []model.Invoice{
		{ID: 1, ClientID: 1, Amount: 80},
		{ID: 2, ClientID: 1, Amount: 20},
		{ID: 3, ClientID: 2, Amount: 500},
	}
	once := Rollup(c, invoices)
	twice := Rollup(once, invoices)
	if once.InvoiceCount != 2 || once.TotalAmount != 100 {
		t.Fatalf("rollup = {%d, %v}", once.InvoiceCount, once.TotalAmount)
	}
	if twice != once {
		t.Fatalf("rollup not idempotent: %+v vs %+v", twice, once)
	}
}

func TestRollupNoInvoicesIsZero(t *testing.T) {
	c := model.Client{ID: 5, InvoiceCount: 3, TotalAmount: 300}
	got := Rollup(c, nil)
	if got.InvoiceCount != 0 || got.TotalAmount != 0 {
		t.Fatalf("rollup of empty collection = {%d, %v}, want zeros", got.InvoiceCount, got.TotalAmount)
	}
}

func TestRollupAllRecomputesEveryClient(t *testing.T) {
	clients := []model.Client{{ID: 1}, {ID: 2}, {ID: 3}}
	invoices := []model.Invoice{
		{ClientID: 1, Amount: 10},
		{ClientID: 2, Amount: 20},
		{ClientID: 2, Amount: 30},
	}
	got := RollupAll(clients, invoices)
	wantCounts := []int{1, 2, 0}
	wantTotals := []float64{10, 50, 0}
	for i := range got {
		if got[i].InvoiceCount != wantCounts[i] || got[i].TotalAmount != wantTotals[i] {
			t.Fatalf("client %d rollup = {%d, %v}", got[i].ID, got[i].InvoiceCount, got[i].TotalAmount)
		}
	}
}
