package timezone

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
)

// Store persists user offsets. Get creates the record with DefaultOffset on
// first access.
type Store interface {
	Get(ctx context.Context, userID int64) (int, error)
	Set(ctx context.Context, userID int64, offset int) error
	Count(ctx context.Context) (int, error)
	Close() error
}

// SQLStore keeps offsets in the timezones table. Queries are written with
// '?' placeholders and rebound for the driver in use.
type SQLStore struct {
	db *sqlx.DB

	insertDefault string
	selectZone    string
	upsertZone    string
}

// NewSQLStore wraps db. Closing the store closes db.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{
		db:            db,
		insertDefault: db.Rebind(`INSERT INTO timezones (id, zone) VALUES (?, ?) ON CONFLICT (id) DO NOTHING`),
		selectZone:    db.Rebind(`SELECT zone FROM timezones WHERE id = ?`),
		upsertZone:    db.Rebind(`INSERT INTO timezones (id, zone) VALUES (?, ?) ON CONFLICT (id) DO UPDATE SET zone = excluded.zone`),
	}
}

// Get inserts the default record when missing and returns the stored offset.
func (s *SQLStore) Get(ctx context.Context, userID int64) (int, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("timezones: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, s.insertDefault, userID, DefaultOffset); err != nil {
		return 0, fmt.Errorf("timezones: insert default: %w", err)
	}
	var zone sql.NullInt64
	if err := tx.GetContext(ctx, &zone, s.selectZone, userID); err != nil {
		return 0, fmt.Errorf("timezones: select: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("timezones: commit: %w", err)
	}
	// rows written by older versions may hold NULL
	if !zone.Valid {
		return DefaultOffset, nil
	}
	return int(zone.Int64), nil
}

// Set validates offset and stores it.
func (s *SQLStore) Set(ctx context.Context, userID int64, offset int) error {
	if !Valid(offset) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, offset)
	}
	if _, err := s.db.ExecContext(ctx, s.upsertZone, userID, offset); err != nil {
		return fmt.Errorf("timezones: upsert: %w", err)
	}
	return nil
}

// Count returns the number of stored records.
func (s *SQLStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM timezones`); err != nil {
		return 0, fmt.Errorf("timezones: count: %w", err)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}

// MemStore is an in-memory Store.
type MemStore struct {
	mu    sync.RWMutex
	zones map[int64]int
}

// NewMemStore returns an empty MemStore.
func NewMemStore() *MemStore {
	return &MemStore{zones: make(map[int64]int)}
}

func (m *MemStore) Get(_ context.Context, userID int64) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	z, ok := m.zones[userID]
	if !ok {
		z = DefaultOffset
		m.zones[userID] = z
	}
	return z, nil
}

func (m *MemStore) Set(_ context.Context, userID int64, offset int) error {
	if !Valid(offset) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, offset)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.zones[userID] = offset
	return nil
}

// Count returns the number of stored records.
func (m *MemStore) Count(context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.zones), nil
}

func (m *MemStore) Close() error { return nil }
