package invoice

import "invoicr/internal/model"

// Rollup returns the client with InvoiceCount and TotalAmount
// recomputed from the invoice collection. The derived fields are a
// view, never authoritative; callers recompute whenever either
// collection changes.
func Rollup(client model.Client, invoices []model.Invoice) model.Client {
	count := 0
	var total float64
	for _, inv := range invoices {
		if inv.ClientID == client.ID {
			count++
			total += inv.Amount
		}
	}
	client.InvoiceCount = count
	client.TotalAmount = total
	return client
}

// RollupAll recomputes the derived stats for every client.
func RollupAll(clients []model.Client, invoices []model.Invoice) []model.Client {
	out := make([]model.Client, len(clients))
	for i, c := range clients {
		out[i] = Rollup(c, invoices)
	}
	return out
}
