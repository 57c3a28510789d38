// Package store persists real-estate contracts in a local SQLite file.
//
// The store starts uninitialized. Initialize opens the file and applies the
// schema; until it succeeds every write fails with sentinel.ErrNotInitialized
// and nothing is created on disk.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"realty/internal/contract/models"
	"realty/internal/notify"
	"realty/internal/platform/database"
	"realty/pkg/platform/sentinel"
)

// Store is safe for concurrent use. Writes are serialized by the single
// SQLite connection configured in database.DefaultConfig.
type Store struct {
	cfg      database.Config
	notifier notify.Notifier
	logger   *slog.Logger

	mu sync.RWMutex
	db *database.DB
}

// New returns an uninitialized store for the file described by cfg.
func New(cfg database.Config, notifier notify.Notifier, logger *slog.Logger) *Store {
	if notifier == nil {
		notifier = notify.Discard
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{cfg: cfg, notifier: notifier, logger: logger}
}

// Initialize opens the database file and ensures the contracts table exists.
// Calling it on an initialized store does nothing. On failure the store stays
// uninitialized and a destructive notification is raised.
func (s *Store) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return nil
	}

	db, err := s.open(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "database initialization failed", "error", err, "path", s.cfg.Path)
		s.notifier.Notify(ctx, notify.Failure("Database Error", "Failed to connect to database"))
		return err
	}

	s.db = db
	s.logger.InfoContext(ctx, "database initialized", "path", db.Path())
	s.notifier.Notify(ctx, notify.Success("Database Connection", "Successfully connected to database"))
	return nil
}

func (s *Store) open(ctx context.Context) (*database.DB, error) {
	db, err := database.Open(ctx, s.cfg)
	if err != nil {
		return nil, err
	}
	migrator, err := database.NewMigrator(db.SQL(), s.logger, Migrations()...)
	if err == nil {
		_, err = migrator.Up(ctx)
	}
	if err != nil {
		db.Close() //nolint:errcheck // already failing
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return db, nil
}

// Rollback reverts the latest schema migration and closes the database.
// The store returns to the uninitialized state.
func (s *Store) Rollback(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return sentinel.ErrNotInitialized
	}
	migrator, err := database.NewMigrator(s.db.SQL(), s.logger, Migrations()...)
	if err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	if err := migrator.Down(ctx); err != nil {
		return fmt.Errorf("rollback: %w", err)
	}
	s.logger.InfoContext(ctx, "contract schema rolled back", "path", s.db.Path())

	err = s.db.Close()
	s.db = nil
	return err
}

// Initialized reports whether Initialize has succeeded.
func (s *Store) Initialized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db != nil
}

// SaveContract validates c and inserts it as a single row.
func (s *Store) SaveContract(ctx context.Context, c *models.RealEstateContract) (*models.SaveResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, sentinel.ErrNotInitialized
	}
	if c == nil {
		return nil, fmt.Errorf("contract is required: %w", sentinel.ErrInvalidInput)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}

	res, err := s.db.SQL().ExecContext(ctx, models.InsertSQL, c.Flatten()...)
	if err != nil {
		s.logger.ErrorContext(ctx, "contract insert failed", "error", err, "building", c.BuildingName)
		return nil, fmt.Errorf("insert contract: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("read contract id: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("read rows affected: %w", err)
	}

	s.logger.InfoContext(ctx, "contract saved", "contract_id", id, "rows_affected", rows)
	return &models.SaveResult{ID: id, RowsAffected: rows}, nil
}

// numericColumns default to zero instead of an empty string when NULL.
var numericColumns = map[string]bool{
	"area": true, "parkingSpaces": true, "privateArea": true, "commonArea": true, "totalArea": true,
	"totalPrice": true, "downPayment": true, "fgtsValue": true, "installments": true,
}

var selectSQL = func() string {
	exprs := make([]string, 0, len(models.Columns)+2)
	exprs = append(exprs, "id", "strftime('%Y-%m-%dT%H:%M:%SZ', createdAt)")
	for _, col := range models.Columns {
		if numericColumns[col] {
			exprs = append(exprs, "COALESCE("+col+", 0)")
		} else {
			exprs = append(exprs, "COALESCE("+col+", '')")
		}
	}
	return "SELECT " + strings.Join(exprs, ", ") + " FROM contracts WHERE id = ?"
}()

// FindByID reads a stored contract back.
func (s *Store) FindByID(ctx context.Context, id int64) (*models.StoredContract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, sentinel.ErrNotInitialized
	}

	var (
		stored    models.StoredContract
		createdAt string
	)
	targets := append([]any{&stored.ID, &createdAt}, stored.ScanTargets()...)
	err := s.db.SQL().QueryRowContext(ctx, selectSQL, id).Scan(targets...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sentinel.ErrNotFound
		}
		return nil, fmt.Errorf("find contract by id: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		stored.CreatedAt = t
	}
	return &stored, nil
}

// Health reports whether the database is initialized and reachable.
func (s *Store) Health(ctx context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.db == nil {
		return sentinel.ErrNotInitialized
	}
	return s.db.Health(ctx)
}

// Close releases the database. The store returns to the uninitialized state.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
