// Package store persists admin-API bookkeeping — currently, the
// external-namespace registrations recorded by
// grpcapi.RegisterExternalNamespace — across server restarts.
//
// Grounded on the teacher's pkg/controlplane/store.GORMStore: a
// gorm.io/gorm connection opened against PostgreSQL, auto-migrated at
// startup. Trimmed here to a single model and a single backend: the
// teacher's SQLite option (glebarez/sqlite) has no OPC UA analogue
// (there is no single-node control-plane deployment story for a
// namespace registry) and is dropped rather than carried as dead
// optionality.
package store

import (
	"context"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Config holds the PostgreSQL connection settings for the registry.
type Config struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
}

// ApplyDefaults fills in zero-valued fields with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.Port == 0 {
		c.Port = 5432
	}
	if c.SSLMode == "" {
		c.SSLMode = "disable"
	}
}

func (c *Config) dsn() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode)
}

// NamespaceRegistration is the persisted record of one
// RegisterExternalNamespace call.
type NamespaceRegistration struct {
	NamespaceIndex uint32 `gorm:"primaryKey"`
	URI            string `gorm:"not null"`
	Description    string
	RegisteredAt   time.Time
}

// Store is the GORM-backed namespace registry.
type Store struct {
	db *gorm.DB
}

// Open connects to PostgreSQL and migrates the registry schema.
func Open(cfg Config) (*Store, error) {
	cfg.ApplyDefaults()

	db, err := gorm.Open(postgres.Open(cfg.dsn()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("controlplane/store: connect: %w", err)
	}

	if err := db.AutoMigrate(&NamespaceRegistration{}); err != nil {
		return nil, fmt.Errorf("controlplane/store: migrate: %w", err)
	}

	return &Store{db: db}, nil
}

// Upsert records or updates a namespace's registration.
func (s *Store) Upsert(ctx context.Context, reg NamespaceRegistration) error {
	reg.RegisteredAt = time.Now()
	return s.db.WithContext(ctx).Save(&reg).Error
}

// Get returns the registration for a namespace index, or
// gorm.ErrRecordNotFound if none exists.
func (s *Store) Get(ctx context.Context, namespaceIndex uint32) (*NamespaceRegistration, error) {
	var reg NamespaceRegistration
	if err := s.db.WithContext(ctx).First(&reg, "namespace_index = ?", namespaceIndex).Error; err != nil {
		return nil, err
	}
	return &reg, nil
}

// List returns every registered namespace, ordered by index.
func (s *Store) List(ctx context.Context) ([]NamespaceRegistration, error) {
	var regs []NamespaceRegistration
	if err := s.db.WithContext(ctx).Order("namespace_index").Find(&regs).Error; err != nil {
		return nil, err
	}
	return regs, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
