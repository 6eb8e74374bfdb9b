package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/agnivade/levenshtein"

	"invoicr/internal/invoice"
	"invoicr/internal/model"
	"invoicr/internal/storage"
)

// ClientService handles client CRUD. The derived InvoiceCount and
// TotalAmount fields are recomputed from the invoice collection on
// every read; they are never trusted as stored.
type ClientService struct {
	Store *storage.Store
}

// List returns all clients with rollups freshly recomputed.
func (s *ClientService) List(ctx context.Context) ([]model.Client, error) {
	var clients []model.Client
	if err := s.Store.Load(ctx, storage.CollectionClients, &clients); err != nil {
		return nil, err
	}
	var invoices []model.Invoice
	if err := s.Store.Load(ctx, storage.CollectionInvoices, &invoices); err != nil {
		return nil, err
	}
	return invoice.RollupAll(clients, invoices), nil
}

// Get returns one client, rolled up.
func (s *ClientService) Get(ctx context.Context, id int64) (model.Client, error) {
	clients, err := s.List(ctx)
	if err != nil {
		return model.Client{}, err
	}
	for _, c := range clients {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Client{}, fmt.Errorf("client %d: %w", id, ErrNotFound)
}

// Create appends a new client.
func (s *ClientService) Create(ctx context.Context, c model.Client) (model.Client, error) {
	unlock := s.Store.Lock(storage.CollectionClients)
	defer unlock()

	var clients []model.Client
	if err := s.Store.Load(ctx, storage.CollectionClients, &clients); err != nil {
		return model.Client{}, err
	}
	var maxID int64
	for _, existing := range clients {
		if existing.ID > maxID {
			maxID = existing.ID
		}
	}
	c.ID = nextID(maxID)
	c.InvoiceCount = 0
	c.TotalAmount = 0
	clients = append(clients, c)
	if err := s.Store.Save(ctx, storage.CollectionClients, clients); err != nil {
		return model.Client{}, err
	}
	return c, nil
}

// Update replaces an existing client record.
func (s *ClientService) Update(ctx context.Context, c model.Client) error {
	unlock := s.Store.Lock(storage.CollectionClients)
	defer unlock()

	var clients []model.Client
	if err := s.Store.Load(ctx, storage.CollectionClients, &clients); err != nil {
		return err
	}
	for i := range clients {
		if clients[i].ID == c.ID {
			clients[i] = c
			return s.Store.Save(ctx, storage.CollectionClients, clients)
		}
	}
	return fmt.Errorf("client %d: %w", c.ID, ErrNotFound)
}

// Delete removes one client. It does NOT touch the client's invoices:
// callers must run InvoiceService.DeleteForClient first (two-step
// cascade, by convention).
func (s *ClientService) Delete(ctx context.Context, id int64) error {
	unlock := s.Store.Lock(storage.CollectionClients)
	defer unlock()

	var clients []model.Client
	if err := s.Store.Load(ctx, storage.CollectionClients, &clients); err != nil {
		return err
	}
	kept := clients[:0]
	found := false
	for _, c := range clients {
		if c.ID == id {
			found = true
			continue
		}
		kept = append(kept, c)
	}
	if !found {
		return fmt.Errorf("client %d: %w", id, ErrNotFound)
	}
	return s.Store.Save(ctx, storage.CollectionClients, kept)
}

// FindSimilar reports an existing client whose name is a near match of
// name, so the UI can warn before a probable duplicate is created.
// Matching is case-insensitive with an edit-distance threshold scaled
// to name length.
func (s *ClientService) FindSimilar(ctx context.Context, name string) (model.Client, bool) {
	var clients []model.Client
	if err := s.Store.Load(ctx, storage.CollectionClients, &clients); err != nil {
		return model.Client{}, false
	}
	needle := normalizeName(name)
	if needle == "" {
		return model.Client{}, false
	}
	for _, c := range clients {
		candidate := normalizeName(c.Name)
		dist := levenshtein.ComputeDistance(needle, candidate)
		if dist <= maxEditDistance(len(needle)) {
			return c, true
		}
	}
	return model.Client{}, false
}

func normalizeName(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}

func maxEditDistance(n int) int {
	switch {
	case n < 4:
		return 0
	case n < 8:
		return 1
	default:
		return 2
	}
}
