package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Migration is one versioned schema change. Versions sort lexically, so use
// timestamps such as "20240101000001".
type Migration struct {
	Version string
	Name    string
	Up      func(*gorm.DB) error
	Down    func(*gorm.DB) error
}

// MigrationRecord is a row of the schema_migrations bookkeeping table.
type MigrationRecord struct {
	Version   string    `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (MigrationRecord) TableName() string { return "schema_migrations" }

// Migrator applies migrations over an already opened *sql.DB.
type Migrator struct {
	db         *gorm.DB
	migrations []Migration
	logger     *slog.Logger
}

// NewMigrator wraps conn in gorm so bookkeeping and DDL share the same connection.
func NewMigrator(conn *sql.DB, logger *slog.Logger, migrations ...Migration) (*Migrator, error) {
	gdb, err := gorm.Open(sqlite.New(sqlite.Config{Conn: conn}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open migrator: %w", err)
	}
	sorted := append([]Migration(nil), migrations...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Version < sorted[j].Version })
	return &Migrator{db: gdb, migrations: sorted, logger: logger}, nil
}

// Applied returns the versions already recorded.
func (m *Migrator) Applied(ctx context.Context) (map[string]bool, error) {
	db := m.db.WithContext(ctx)
	if err := db.AutoMigrate(&MigrationRecord{}); err != nil {
		return nil, fmt.Errorf("ensure schema_migrations: %w", err)
	}
	var records []MigrationRecord
	if err := db.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("read schema_migrations: %w", err)
	}
	versions := make(map[string]bool, len(records))
	for _, r := range records {
		versions[r.Version] = true
	}
	return versions, nil
}

// Up applies every pending migration, each in its own transaction.
// It returns the number of migrations applied.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	applied, err := m.Applied(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, mig := range m.migrations {
		if applied[mig.Version] {
			continue
		}
		err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			if err := mig.Up(tx); err != nil {
				return err
			}
			return tx.Create(&MigrationRecord{
				Version:   mig.Version,
				Name:      mig.Name,
				AppliedAt: time.Now().UTC(),
			}).Error
		})
		if err != nil {
			return count, fmt.Errorf("apply migration %s_%s: %w", mig.Version, mig.Name, err)
		}
		if m.logger != nil {
			m.logger.InfoContext(ctx, "migration applied", "version", mig.Version, "name", mig.Name)
		}
		count++
	}
	return count, nil
}

// Down reverts the most recently applied migration. It is a no-op when
// nothing has been applied.
func (m *Migrator) Down(ctx context.Context) error {
	db := m.db.WithContext(ctx)
	var last MigrationRecord
	err := db.Order("version DESC").Limit(1).Find(&last).Error
	if err != nil {
		return fmt.Errorf("read schema_migrations: %w", err)
	}
	if last.Version == "" {
		return nil
	}

	for _, mig := range m.migrations {
		if mig.Version != last.Version {
			continue
		}
		return db.Transaction(func(tx *gorm.DB) error {
			if mig.Down != nil {
				if err := mig.Down(tx); err != nil {
					return err
				}
			}
			return tx.Delete(&last).Error
		})
	}
	return fmt.Errorf("migration %s is recorded but unknown", last.Version)
}
