package testdata

import (
	"context"
	"math/rand"
	"time"

	"invoicr/internal/model"
	"invoicr/internal/service"
	"invoicr/internal/storage"
)

// Services bundles the services used by Seed.
type Services struct {
	Clients  *service.ClientService
	Invoices *service.InvoiceService
	Items    *service.PredefinedItemService
}

// Seed creates sample clients, predefined items, and a spread of
// invoices over the past year so the analytics charts have something
// to show.
func Seed(ctx context.Context, svcs Services) error {
	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))

	clients := []model.Client{
		{Name: "Sari-Sari Studio", Email: "hello@sarisari.ph", Address: "Makati, Metro Manila"},
		{Name: "Harbor Web Co", Email: "accounts@harborweb.test"},
		{
			Name:  "Nightowl Games",
			Email: "finance@nightowl.test",
			CustomDefaults: &model.ClientCustomDefaults{
				DefaultCurrency: "USD",
				DefaultTax:      12,
				DefaultNotes:    "Payable within 30 days.",
				DefaultItems: []model.DefaultItem{
					{ID: 1, Name: "Retainer", Description: "Monthly retainer", Rate: 1500, RateType: model.RateMonthly},
				},
				RateStructure: model.RateStructure{
					Monthly: 1500,
					Daily:   90,
					Hourly:  15,
				},
				JumbotronRates: model.JumbotronRates{ShowJumbotron: true},
			},
		},
	}
	created := make([]model.Client, 0, len(clients))
	for _, c := range clients {
		saved, err := svcs.Clients.Create(ctx, c)
		if err != nil {
			return err
		}
		created = append(created, saved)
	}

	items := []model.PredefinedItem{
		{Description: "Logo design", Rate: 300},
		{Description: "Landing page", Rate: 800},
		{Description: "Hosting (monthly)", Rate: 25},
		{Description: "Consultation call", Rate: 60},
	}
	for _, it := range items {
		if _, err := svcs.Items.Add(ctx, it); err != nil {
			return err
		}
	}

	descriptions := []string{"Design work", "Development sprint", "Maintenance", "Consulting", "Revisions"}
	statuses := []string{model.StatusDraft, model.StatusSent, model.StatusPaid, model.StatusPaid, model.StatusOverdue}
	now := time.Now().UTC()
	for i := 0; i < 18; i++ {
		client := created[rnd.Intn(len(created))]
		inv := service.NewForClient(client)
		inv.Status = statuses[rnd.Intn(len(statuses))]
		inv.Items = []model.LineItem{{
			Description: descriptions[rnd.Intn(len(descriptions))],
			Quantity:    float64(rnd.Intn(4) + 1),
			Rate:        float64(rnd.Intn(40)+5) * 10,
			RateType:    model.RateCustom,
		}}
		inv.DueDate = now.AddDate(0, 0, rnd.Intn(45)-15)

		if _, err := svcs.Invoices.Create(ctx, inv); err != nil {
			return err
		}
	}

	return backdate(ctx, svcs, rnd, now)
}

// backdate spreads invoice creation times over the past year so the
// monthly buckets are populated. Create stamps CreatedAt with the
// current time and Update preserves it, so this rewrites the stored
// collection directly.
func backdate(ctx context.Context, svcs Services, rnd *rand.Rand, now time.Time) error {
	store := svcs.Invoices.Store
	unlock := store.Lock(storage.CollectionInvoices)
	defer unlock()

	var invoices []model.Invoice
	if err := store.Load(ctx, storage.CollectionInvoices, &invoices); err != nil {
		return err
	}
	for i := range invoices {
		invoices[i].CreatedAt = now.AddDate(0, -rnd.Intn(12), -rnd.Intn(28))
	}
	return store.Save(ctx, storage.CollectionInvoices, invoices)
}
