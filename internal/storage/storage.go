// Package storage is the persistence gateway: a sqlite-backed
// key-value store of whole JSON collections. Reads and writes happen
// at collection granularity; the entire collection is rewritten on
// every save.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Persisted collection names.
const (
	CollectionInvoices        = "invoices"
	CollectionClients         = "clients"
	CollectionNotifications   = "notifications"
	CollectionPredefinedItems = "predefinedItems"
	CollectionAppSettings     = "appSettings"
)

// Sentinel errors for persistence failures.
var (
	ErrLoad = errors.New("storage: load failed")
	ErrSave = errors.New("storage: save failed")
)

// Store provides Load/Save over named collections. A mutex per
// collection serializes read-modify-write sequences so two writers
// can never interleave on the same key.
type Store struct {
	db *sql.DB

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Open opens (or creates) the sqlite file at path and applies pending
// migrations.
func Open(path string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)

	if err := runMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return &Store{db: db, locks: make(map[string]*sync.Mutex)}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }

// Lock acquires the write lock for one collection. Callers doing a
// read-modify-write hold it across the whole sequence.
func (s *Store) Lock(collection string) func() {
	s.mu.Lock()
	l, ok := s.locks[collection]
	if !ok {
		l = &sync.Mutex{}
		s.locks[collection] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// Load unmarshals a collection into dest. A missing key leaves dest
// untouched so callers keep their zero value or defaults; any other
// failure wraps ErrLoad.
func (s *Store) Load(ctx context.Context, collection string, dest interface{}) error {
	var data []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT data FROM collections WHERE name = ?`, collection,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrLoad, collection, err)
	}
	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrLoad, collection, err)
	}
	return nil
}

// Save rewrites a collection in full. On failure the caller must not
// treat its in-memory mutation as committed.
func (s *Store) Save(ctx context.Context, collection string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSave, collection, err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO collections(name, data, updated_at) VALUES(?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		collection, data, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSave, collection, err)
	}
	return nil
}

// Delete removes a collection entirely. Used by maintenance reset.
func (s *Store) Delete(ctx context.Context, collection string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM collections WHERE name = ?`, collection); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrSave, collection, err)
	}
	return nil
}
