package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"invoicr/internal/model"
	"invoicr/internal/scheduler"
	"invoicr/internal/storage"
)

// ReminderService creates invoice reminders. The notification record
// is persisted before the timer is armed; notifications are never
// mutated, only swept once their date has passed.
type ReminderService struct {
	Store *storage.Store
	Sched scheduler.Scheduler
	Log   zerolog.Logger
}

// Schedule persists a reminder for an invoice and arms the timer. The
// invoice must exist.
func (s *ReminderService) Schedule(ctx context.Context, invoiceID int64, when time.Time) (model.Notification, error) {
	var invoices []model.Invoice
	if err := s.Store.Load(ctx, storage.CollectionInvoices, &invoices); err != nil {
		return model.Notification{}, err
	}
	found := false
	for _, inv := range invoices {
		if inv.ID == invoiceID {
			found = true
			break
		}
	}
	if !found {
		return model.Notification{}, fmt.Errorf("invoice %d: %w", invoiceID, ErrNotFound)
	}

	unlock := s.Store.Lock(storage.CollectionNotifications)
	defer unlock()

	var notifications []model.Notification
	if err := s.Store.Load(ctx, storage.CollectionNotifications, &notifications); err != nil {
		return model.Notification{}, err
	}
	var maxID int64
	for _, n := range notifications {
		if n.ID > maxID {
			maxID = n.ID
		}
	}
	n := model.Notification{
		ID:           nextID(maxID),
		InvoiceID:    invoiceID,
		ReminderDate: when,
		CreatedAt:    time.Now().UTC(),
	}
	notifications = append(notifications, n)
	if err := s.Store.Save(ctx, storage.CollectionNotifications, notifications); err != nil {
		return model.Notification{}, err
	}

	if s.Sched != nil {
		s.Sched.Schedule(n.ID, when)
	}
	s.Log.Info().Int64("notification", n.ID).Int64("invoice", invoiceID).Time("at", when).Msg("reminder scheduled")
	return n, nil
}

// List returns all pending notifications.
func (s *ReminderService) List(ctx context.Context) ([]model.Notification, error) {
	var notifications []model.Notification
	if err := s.Store.Load(ctx, storage.CollectionNotifications, &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// Resolve looks up a notification and its invoice, for building the
// alert text when a timer fires.
func (s *ReminderService) Resolve(ctx context.Context, notificationID int64) (model.Notification, model.Invoice, error) {
	notifications, err := s.List(ctx)
	if err != nil {
		return model.Notification{}, model.Invoice{}, err
	}
	for _, n := range notifications {
		if n.ID != notificationID {
			continue
		}
		var invoices []model.Invoice
		if err := s.Store.Load(ctx, storage.CollectionInvoices, &invoices); err != nil {
			return model.Notification{}, model.Invoice{}, err
		}
		for _, inv := range invoices {
			if inv.ID == n.InvoiceID {
				return n, inv, nil
			}
		}
		return n, model.Invoice{}, fmt.Errorf("invoice %d: %w", n.InvoiceID, ErrNotFound)
	}
	return model.Notification{}, model.Invoice{}, fmt.Errorf("notification %d: %w", notificationID, ErrNotFound)
}

// CleanupExpired drops notifications whose reminder date has passed.
// Returns how many were removed.
func (s *ReminderService) CleanupExpired(ctx context.Context, now time.Time) (int, error) {
	unlock := s.Store.Lock(storage.CollectionNotifications)
	defer unlock()

	var notifications []model.Notification
	if err := s.Store.Load(ctx, storage.CollectionNotifications, &notifications); err != nil {
		return 0, err
	}
	kept := notifications[:0]
	for _, n := range notifications {
		if n.ReminderDate.After(now) {
			kept = append(kept, n)
		}
	}
	removed := len(notifications) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := s.Store.Save(ctx, storage.CollectionNotifications, kept); err != nil {
		return 0, err
	}
	return removed, nil
}

// RestorePending re-arms timers for every stored notification, called
// once at startup. Past-due reminders fire immediately.
func (s *ReminderService) RestorePending(ctx context.Context) error {
	if s.Sched == nil {
		return nil
	}
	notifications, err := s.List(ctx)
	if err != nil {
		return err
	}
	for _, n := range notifications {
		s.Sched.Schedule(n.ID, n.ReminderDate)
	}
	return nil
}
