// Package postgres persists cart records in PostgreSQL via GORM, one
// row per storage key. It backs deployments where several storefront
// clients share a database instead of a local file.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/vegefoods/cart-service/internal/domains/cart/domain"
	"github.com/vegefoods/cart-service/internal/domains/cart/ports"
)

var _ ports.Repository = (*Store)(nil)

// Store is a PostgreSQL-backed cart record store scoped to one key.
type Store struct {
	db     *gorm.DB
	key    string
	logger *slog.Logger
}

// Option configures optional Store collaborators.
type Option func(*Store)

// WithLogger injects a slog logger for parse-failure warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStorageKey overrides the default record key.
func WithStorageKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// NewStore wires a PostgreSQL-backed store. Caller manages DB lifecycle;
// schema is applied by the platform migrations.
func NewStore(db *gorm.DB, opts ...Option) *Store {
	s := &Store{db: db, key: domain.StorageKey, logger: slog.Default()}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

type cartRecord struct {
	Key       string    `gorm:"primaryKey;column:key;size:128"`
	Payload   []byte    `gorm:"column:payload;type:jsonb"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;index"`
}

func (cartRecord) TableName() string { return "cart_records" }

// Load fetches and sanitizes the record for the configured key. A
// missing row is the empty cart; a corrupt payload degrades to the
// empty cart with a warning.
func (s *Store) Load(ctx context.Context) (domain.Cart, error) {
	if err := s.ensureDB(); err != nil {
		return domain.EmptyCart(), err
	}
	var record cartRecord
	if err := s.db.WithContext(ctx).First(&record, "key = ?", s.key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.EmptyCart(), nil
		}
		return domain.EmptyCart(), err
	}
	var raw any
	if err := json.Unmarshal(record.Payload, &raw); err != nil {
		s.logger.Warn("cart record is corrupt, resetting to empty",
			slog.String("key", s.key), slog.String("error", err.Error()))
		return domain.EmptyCart(), nil
	}
	return domain.SanitizeRaw(raw), nil
}

// Save upserts the sanitized record whole under the configured key.
func (s *Store) Save(ctx context.Context, cart domain.Cart) (domain.Cart, error) {
	if err := s.ensureDB(); err != nil {
		return domain.EmptyCart(), err
	}
	sanitized := domain.Sanitize(cart)
	payload, err := json.Marshal(sanitized)
	if err != nil {
		return domain.EmptyCart(), err
	}
	record := cartRecord{Key: s.key, Payload: payload}
	if err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&record).Error; err != nil {
		return domain.EmptyCart(), err
	}
	return sanitized, nil
}

// PurgeStale deletes cart records untouched for longer than ttl,
// regardless of key. Used by the housekeeping binary.
func (s *Store) PurgeStale(ctx context.Context, ttl time.Duration) (int64, error) {
	if err := s.ensureDB(); err != nil {
		return 0, err
	}
	cutoff := time.Now().Add(-ttl)
	result := s.db.WithContext(ctx).Where("updated_at <= ?", cutoff).Delete(&cartRecord{})
	return result.RowsAffected, result.Error
}

func (s *Store) ensureDB() error {
	if s == nil || s.db == nil {
		return errors.New("postgres cart store not configured")
	}
	return nil
}
