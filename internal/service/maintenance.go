package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"invoicr/internal/model"
	"invoicr/internal/storage"
)

// MaintenanceService houses destructive/ops actions surfaced through
// the TUI: full reset and JSON export/import of every collection.
type MaintenanceService struct {
	Store *storage.Store
}

// Snapshot is the on-disk export format.
type Snapshot struct {
	ID              string                 `json:"id"`
	ExportedAt      time.Time              `json:"exportedAt"`
	Invoices        []model.Invoice        `json:"invoices"`
	Clients         []model.Client         `json:"clients"`
	Notifications   []model.Notification   `json:"notifications"`
	PredefinedItems []model.PredefinedItem `json:"predefinedItems"`
	Settings        model.AppSettings      `json:"appSettings"`
}

var allCollections = []string{
	storage.CollectionInvoices,
	storage.CollectionClients,
	storage.CollectionNotifications,
	storage.CollectionPredefinedItems,
	storage.CollectionAppSettings,
}

// Reset wipes all user data.
func (s *MaintenanceService) Reset(ctx context.Context) error {
	for _, name := range allCollections {
		unlock := s.Store.Lock(name)
		err := s.Store.Delete(ctx, name)
		unlock()
		if err != nil {
			return fmt.Errorf("reset %s: %w", name, err)
		}
	}
	return nil
}

// Export writes a snapshot of every collection to path.
func (s *MaintenanceService) Export(ctx context.Context, path string) (Snapshot, error) {
	snap := Snapshot{
		ID:         uuid.NewString(),
		ExportedAt: time.Now().UTC(),
		Settings:   model.DefaultSettings(),
	}
	if err := s.Store.Load(ctx, storage.CollectionInvoices, &snap.Invoices); err != nil {
		return Snapshot{}, err
	}
	if err := s.Store.Load(ctx, storage.CollectionClients, &snap.Clients); err != nil {
		return Snapshot{}, err
	}
	if err := s.Store.Load(ctx, storage.CollectionNotifications, &snap.Notifications); err != nil {
		return Snapshot{}, err
	}
	if err := s.Store.Load(ctx, storage.CollectionPredefinedItems, &snap.PredefinedItems); err != nil {
		return Snapshot{}, err
	}
	if err := s.Store.Load(ctx, storage.CollectionAppSettings, &snap.Settings); err != nil {
		return Snapshot{}, err
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return Snapshot{}, fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Snapshot{}, fmt.Errorf("write snapshot: %w", err)
	}
	return snap, nil
}

// Import restores a snapshot written by Export, replacing every
// collection.
func (s *MaintenanceService) Import(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return fmt.Errorf("parse snapshot: %w", err)
	}

	writes := []struct {
		name string
		v    interface{}
	}{
		{storage.CollectionInvoices, snap.Invoices},
		{storage.CollectionClients, snap.Clients},
		{storage.CollectionNotifications, snap.Notifications},
		{storage.CollectionPredefinedItems, snap.PredefinedItems},
		{storage.CollectionAppSettings, snap.Settings},
	}
	for _, w := range writes {
		unlock := s.Store.Lock(w.name)
		err := s.Store.Save(ctx, w.name, w.v)
		unlock()
		if err != nil {
			return err
		}
	}
	return nil
}
