package service

import (
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"

	"invoicr/internal/model"
	"invoicr/internal/storage"
)

func TestSettingsDefaultsWhenAbsent(t *testing.T) {
	t.Parallel()
	_, _, settings := newTestServices(t)

	got := settings.Get(testCtx())
	require.Equal(t, model.NumberFormatIncremental, got.InvoiceNumberFormat)
	require.Equal(t, "INV-", got.InvoicePrefix)
	require.EqualValues(t, 1, got.NextInvoiceNumber)
	require.Equal(t, 6, got.RandomLength)
	require.Empty(t, got.FirstName)
	require.Empty(t, got.LastName)
}

func TestIncrementalNumbersAdvanceCounter(t *testing.T) {
	t.Parallel()
	_, _, settings := newTestServices(t)
	ctx := testCtx()

	for _, want := range []string{"INV-0001", "INV-0002", "INV-0003"} {
		got, err := settings.GenerateInvoiceNumber(ctx)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
	require.EqualValues(t, 4, settings.Get(ctx).NextInvoiceNumber)
}

func TestIncrementalNumberWideCounterNotRepadded(t *testing.T) {
	t.Parallel()
	_, _, settings := newTestServices(t)
	ctx := testCtx()

	s := settings.Get(ctx)
	s.NextInvoiceNumber = 12345
	require.NoError(t, settings.Update(ctx, s))

	got, err := settings.GenerateInvoiceNumber(ctx)
	require.NoError(t, err)
	require.Equal(t, "INV-12345", got)
}

func TestRandomNumberFormat(t *testing.T) {
	t.Parallel()
	_, _, settings := newTestServices(t)
	ctx := testCtx()

	s := settings.Get(ctx)
	s.InvoiceNumberFormat = model.NumberFormatRandom
	s.InvoicePrefix = "ACME-"
	require.NoError(t, settings.Update(ctx, s))

	pattern := regexp.MustCompile(`^ACME-[A-Z0-9]{6}$`)
	for i := 0; i < 10; i++ {
		got, err := settings.GenerateInvoiceNumber(ctx)
		require.NoError(t, err)
		require.Regexp(t, pattern, got)
	}

	// Random mode leaves the counter alone and makes no uniqueness
	// guarantee.
	require.EqualValues(t, 1, settings.Get(ctx).NextInvoiceNumber)
}

func TestGenerateFailsLoudlyWhenPersistFails(t *testing.T) {
	t.Parallel()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	settings := NewSettingsService(store)

	// Prime the settings record, then break the store.
	require.NoError(t, settings.Update(testCtx(), model.DefaultSettings()))
	require.NoError(t, store.Close())

	_, err = settings.GenerateInvoiceNumber(testCtx())
	require.Error(t, err, "a number must not be issued if the counter cannot be persisted")
}
