package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"invoicr/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	s, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newTestServices(t *testing.T) (*ClientService, *InvoiceService, *SettingsService) {
	t.Helper()
	store := newTestStore(t)
	settings := NewSettingsService(store)
	clients := &ClientService{Store: store}
	invoices := &InvoiceService{Store: store, Settings: settings, Log: zerolog.Nop()}
	return clients, invoices, settings
}

func testCtx() context.Context { return context.Background() }
