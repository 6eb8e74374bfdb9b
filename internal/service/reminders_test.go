package service

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"invoicr/internal/model"
)

// recordingScheduler captures Schedule calls without arming real timers.
type recordingScheduler struct {
	mu        sync.Mutex
	scheduled map[int64]time.Time
}

func newRecordingScheduler() *recordingScheduler {
	return &recordingScheduler{scheduled: make(map[int64]time.Time)}
}

func (r *recordingScheduler) Schedule(id int64, at time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.scheduled[id] = at
}

func (r *recordingScheduler) Cancel(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.scheduled, id)
}

func (r *recordingScheduler) Stop() {}

func (r *recordingScheduler) armed(id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.scheduled[id]
	return ok
}

func newReminderFixture(t *testing.T) (*ClientService, *InvoiceService, *ReminderService, *recordingScheduler) {
	t.Helper()
	clients, invoices, _ := newTestServices(t)
	sched := newRecordingScheduler()
	reminders := &ReminderService{Store: invoices.Store, Sched: sched, Log: zerolog.Nop()}
	return clients, invoices, reminders, sched
}

func TestReminderSchedulePersistsThenArms(t *testing.T) {
	t.Parallel()
	clients, invoices, reminders, sched := newReminderFixture(t)
	ctx := testCtx()

	c := mustClient(t, clients, "Acme Corp")
	inv, err := invoices.Create(ctx, model.Invoice{ClientID: c.ID})
	require.NoError(t, err)

	when := time.Now().Add(24 * time.Hour).UTC()
	n, err := reminders.Schedule(ctx, inv.ID, when)
	require.NoError(t, err)
	require.NotZero(t, n.ID)
	require.Equal(t, inv.ID, n.InvoiceID)
	require.True(t, sched.armed(n.ID))

	stored, err := reminders.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.True(t, stored[0].ReminderDate.Equal(when))
}

func TestReminderScheduleRejectsUnknownInvoice(t *testing.T) {
	t.Parallel()
	_, _, reminders, sched := newReminderFixture(t)

	_, err := reminders.Schedule(testCtx(), 42, time.Now().Add(time.Hour))
	require.ErrorIs(t, err, ErrNotFound)
	require.Empty(t, sched.scheduled)
}

func TestReminderResolve(t *testing.T) {
	t.Parallel()
	clients, invoices, reminders, _ := newReminderFixture(t)
	ctx := testCtx()

	c := mustClient(t, clients, "Acme Corp")
	inv, err := invoices.Create(ctx, model.Invoice{ClientID: c.ID})
	require.NoError(t, err)
	n, err := reminders.Schedule(ctx, inv.ID, time.Now().Add(time.Hour))
	require.NoError(t, err)

	gotN, gotInv, err := reminders.Resolve(ctx, n.ID)
	require.NoError(t, err)
	require.Equal(t, n.ID, gotN.ID)
	require.Equal(t, inv.InvoiceNumber, gotInv.InvoiceNumber)

	_, _, err = reminders.Resolve(ctx, 999)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestReminderCleanupExpired(t *testing.T) {
	t.Parallel()
	clients, invoices, reminders, _ := newReminderFixture(t)
	ctx := testCtx()

	c := mustClient(t, clients, "Acme Corp")
	inv, err := invoices.Create(ctx, model.Invoice{ClientID: c.ID})
	require.NoError(t, err)

	now := time.Now().UTC()
	past, err := reminders.Schedule(ctx, inv.ID, now.Add(-48*time.Hour))
	require.NoError(t, err)
	future, err := reminders.Schedule(ctx, inv.ID, now.Add(48*time.Hour))
	require.NoError(t, err)

	removed, err := reminders.CleanupExpired(ctx, now)
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	stored, err := reminders.List(ctx)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	require.Equal(t, future.ID, stored[0].ID)
	require.NotEqual(t, past.ID, stored[0].ID)

	// Second sweep is a no-op.
	removed, err = reminders.CleanupExpired(ctx, now)
	require.NoError(t, err)
	require.Zero(t, removed)
}

func TestReminderRestorePending(t *testing.T) {
	t.Parallel()
	clients, invoices, reminders, _ := newReminderFixture(t)
	ctx := testCtx()

	c := mustClient(t, clients, "Acme Corp")
	inv, err := invoices.Create(ctx, model.Invoice{ClientID: c.ID})
	require.NoError(t, err)
	a, err := reminders.Schedule(ctx, inv.ID, time.Now().Add(time.Hour))
	require.NoError(t, err)
	b, err := reminders.Schedule(ctx, inv.ID, time.Now().Add(2*time.Hour))
	require.NoError(t, err)

	// Simulate a restart: fresh scheduler, same store.
	fresh := newRecordingScheduler()
	reminders.Sched = fresh
	require.NoError(t, reminders.RestorePending(ctx))
	require.True(t, fresh.armed(a.ID))
	require.True(t, fresh.armed(b.ID))
}
