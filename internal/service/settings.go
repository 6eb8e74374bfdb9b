package service

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"invoicr/internal/model"
	"invoicr/internal/storage"
)

const randomAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// SettingsService owns the single AppSettings record and the invoice
// number generator. All mutations are serialized through one mutex so
// two generations can never observe the same counter value.
type SettingsService struct {
	Store *storage.Store

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewSettingsService returns a settings service with its own random
// source for random-format numbers.
func NewSettingsService(store *storage.Store) *SettingsService {
	return &SettingsService{
		Store: store,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Get loads the persisted settings, materializing defaults when none
// are stored or the load fails.
func (s *SettingsService) Get(ctx context.Context) model.AppSettings {
	settings := model.DefaultSettings()
	if err := s.Store.Load(ctx, storage.CollectionAppSettings, &settings); err != nil {
		return model.DefaultSettings()
	}
	return settings
}

// Update persists the full settings record.
func (s *SettingsService) Update(ctx context.Context, settings model.AppSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	unlock := s.Store.Lock(storage.CollectionAppSettings)
	defer unlock()
	return s.Store.Save(ctx, storage.CollectionAppSettings, settings)
}

// GenerateInvoiceNumber issues the next invoice number.
//
// Incremental format: prefix + the counter zero-padded to 4 digits
// (a 5-digit counter simply prints wider). The incremented counter is
// persisted before the number is returned; if that save fails, no
// number is considered issued.
//
// Random format: prefix + N uppercase alphanumerics. No uniqueness
// check is made against existing numbers.
func (s *SettingsService) GenerateInvoiceNumber(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	unlock := s.Store.Lock(storage.CollectionAppSettings)
	defer unlock()

	settings := model.DefaultSettings()
	if err := s.Store.Load(ctx, storage.CollectionAppSettings, &settings); err != nil {
		return "", err
	}

	if settings.InvoiceNumberFormat == model.NumberFormatRandom {
		suffix := make([]byte, settings.RandomLength)
		for i := range suffix {
			suffix[i] = randomAlphabet[s.rnd.Intn(len(randomAlphabet))]
		}
		return settings.InvoicePrefix + string(suffix), nil
	}

	number := fmt.Sprintf("%s%04d", settings.InvoicePrefix, settings.NextInvoiceNumber)
	settings.NextInvoiceNumber++
	if err := s.Store.Save(ctx, storage.CollectionAppSettings, settings); err != nil {
		return "", fmt.Errorf("persist counter: %w", err)
	}
	return number, nil
}
