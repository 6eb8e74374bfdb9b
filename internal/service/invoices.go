package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"invoicr/internal/invoice"
	"invoicr/internal/model"
	"invoicr/internal/storage"
)

// InvoiceService handles invoice CRUD. Every write path runs
// invoice.Recompute before saving so the stored Amount always agrees
// with the items.
type InvoiceService struct {
	Store    *storage.Store
	Settings *SettingsService
	Log      zerolog.Logger
}

// List returns all invoices, newest first.
func (s *InvoiceService) List(ctx context.Context) ([]model.Invoice, error) {
	var invoices []model.Invoice
	if err := s.Store.Load(ctx, storage.CollectionInvoices, &invoices); err != nil {
		return nil, err
	}
	return invoices, nil
}

// ListForClient returns the invoices belonging to one client.
func (s *InvoiceService) ListForClient(ctx context.Context, clientID int64) ([]model.Invoice, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	var out []model.Invoice
	for _, inv := range all {
		if inv.ClientID == clientID {
			out = append(out, inv)
		}
	}
	return out, nil
}

// Get returns one invoice by id.
func (s *InvoiceService) Get(ctx context.Context, id int64) (model.Invoice, error) {
	all, err := s.List(ctx)
	if err != nil {
		return model.Invoice{}, err
	}
	for _, inv := range all {
		if inv.ID == id {
			return inv, nil
		}
	}
	return model.Invoice{}, fmt.Errorf("invoice %d: %w", id, ErrNotFound)
}

// NewForClient builds an unsaved draft invoice prefilled from the
// client's custom defaults.
func NewForClient(client model.Client) model.Invoice {
	inv := model.Invoice{
		ClientID:    client.ID,
		ClientName:  client.Name,
		ClientEmail: client.Email,
		Status:      model.StatusDraft,
		Currency:    "PHP",
		Items:       []model.LineItem{{Quantity: 1}},
	}
	d := client.CustomDefaults
	if d == nil {
		return inv
	}
	if d.DefaultCurrency != "" {
		inv.Currency = d.DefaultCurrency
	}
	inv.Tax = d.DefaultTax
	inv.Discount = d.DefaultDiscount
	inv.Notes = d.DefaultNotes
	inv.ShowJumbotron = d.JumbotronRates.ShowJumbotron
	if len(d.DefaultItems) > 0 {
		items := make([]model.LineItem, 0, len(d.DefaultItems))
		for _, it := range d.DefaultItems {
			items = append(items, model.LineItem{
				Description: it.Description,
				Quantity:    1,
				Rate:        it.Rate,
				Amount:      it.Rate,
				RateType:    it.RateType,
			})
		}
		inv.Items = items
	}
	return inv
}

// Create assigns an id and invoice number, recomputes the total, and
// appends the invoice. The referenced client must exist.
func (s *InvoiceService) Create(ctx context.Context, inv model.Invoice) (model.Invoice, error) {
	var clients []model.Client
	if err := s.Store.Load(ctx, storage.CollectionClients, &clients); err != nil {
		return model.Invoice{}, err
	}
	if !clientExists(clients, inv.ClientID) {
		return model.Invoice{}, fmt.Errorf("client %d: %w", inv.ClientID, ErrNotFound)
	}

	// The number is issued (and the counter persisted) before the
	// invoice itself is written; a failed issue aborts creation.
	if inv.InvoiceNumber == "" {
		number, err := s.Settings.GenerateInvoiceNumber(ctx)
		if err != nil {
			return model.Invoice{}, err
		}
		inv.InvoiceNumber = number
	}

	unlock := s.Store.Lock(storage.CollectionInvoices)
	defer unlock()

	var invoices []model.Invoice
	if err := s.Store.Load(ctx, storage.CollectionInvoices, &invoices); err != nil {
		return model.Invoice{}, err
	}

	var maxID int64
	for _, existing := range invoices {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	inv.ID = nextID(maxID)
	inv.CreatedAt = time.Now().UTC()
	inv.UpdatedAt = nil
	if inv.Status == "" {
		inv.Status = model.StatusDraft
	}
	invoice.Recompute(&inv)

	invoices = append(invoices, inv)
	if err := s.Store.Save(ctx, storage.CollectionInvoices, invoices); err != nil {
		return model.Invoice{}, err
	}
	s.Log.Info().Int64("id", inv.ID).Str("number", inv.InvoiceNumber).Msg("invoice created")
	return inv, nil
}

// Update replaces an existing invoice. The invoice number and creation
// time are preserved from the stored record; the total is recomputed.
func (s *InvoiceService) Update(ctx context.Context, inv model.Invoice) (model.Invoice, error) {
	unlock := s.Store.Lock(storage.CollectionInvoices)
	defer unlock()

	var invoices []model.Invoice
	if err := s.Store.Load(ctx, storage.CollectionInvoices, &invoices); err != nil {
		return model.Invoice{}, err
	}

	idx := -1
	for i, existing := range invoices {
		if existing.ID == inv.ID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return model.Invoice{}, fmt.Errorf("invoice %d: %w", inv.ID, ErrNotFound)
	}

	inv.InvoiceNumber = invoices[idx].InvoiceNumber
	inv.CreatedAt = invoices[idx].CreatedAt
	now := time.Now().UTC()
	inv.UpdatedAt = &now
	invoice.Recompute(&inv)

	invoices[idx] = inv
	if err := s.Store.Save(ctx, storage.CollectionInvoices, invoices); err != nil {
		return model.Invoice{}, err
	}
	return inv, nil
}

// SetStatus changes an invoice's status. Status is purely user-set;
// nothing transitions it automatically.
func (s *InvoiceService) SetStatus(ctx context.Context, id int64, status string) error {
	unlock := s.Store.Lock(storage.CollectionInvoices)
	defer unlock()

	var invoices []model.Invoice
	if err := s.Store.Load(ctx, storage.CollectionInvoices, &invoices); err != nil {
		return err
	}
	for i := range invoices {
		if invoices[i].ID == id {
			invoices[i].Status = status
			now := time.Now().UTC()
			invoices[i].UpdatedAt = &now
			return s.Store.Save(ctx, storage.CollectionInvoices, invoices)
		}
	}
	return fmt.Errorf("invoice %d: %w", id, ErrNotFound)
}

// Delete removes one invoice.
func (s *InvoiceService) Delete(ctx context.Context, id int64) error {
	unlock := s.Store.Lock(storage.CollectionInvoices)
	defer unlock()

	var invoices []model.Invoice
	if err := s.Store.Load(ctx, storage.CollectionInvoices, &invoices); err != nil {
		return err
	}
	kept := invoices[:0]
	found := false
	for _, inv := range invoices {
		if inv.ID == id {
			found = true
			continue
		}
		kept = append(kept, inv)
	}
	if !found {
		return fmt.Errorf("invoice %d: %w", id, ErrNotFound)
	}
	return s.Store.Save(ctx, storage.CollectionInvoices, kept)
}

// DeleteForClient removes every invoice belonging to a client. It is
// the first half of the caller-driven cascade: delete the invoices,
// then the client.
func (s *InvoiceService) DeleteForClient(ctx context.Context, clientID int64) (int, error) {
	unlock := s.Store.Lock(storage.CollectionInvoices)
	defer unlock()

	var invoices []model.Invoice
	if err := s.Store.Load(ctx, storage.CollectionInvoices, &invoices); err != nil {
		return 0, err
	}
	kept := invoices[:0]
	removed := 0
	for _, inv := range invoices {
		if inv.ClientID == clientID {
			removed++
			continue
		}
		kept = append(kept, inv)
	}
	if removed == 0 {
		return 0, nil
	}
	if err := s.Store.Save(ctx, storage.CollectionInvoices, kept); err != nil {
		return 0, err
	}
	s.Log.Info().Int64("client", clientID).Int("removed", removed).Msg("cascade deleted invoices")
	return removed, nil
}

func clientExists(clients []model.Client, id int64) bool {
	for _, c := range clients {
		if c.ID == id {
			return true
		}
	}
	return false
}
