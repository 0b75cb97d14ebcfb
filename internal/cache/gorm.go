package cache

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/learnsphere/learnsphere-backend/internal/logger"
	"github.com/learnsphere/learnsphere-backend/internal/types"
)

type gormStore struct {
	db  *gorm.DB
	log *logger.Logger
}

// NewGormStore backs the fingerprint cache with the cache_entry table. Used
// when no Redis address is configured.
func NewGormStore(db *gorm.DB, baseLog *logger.Logger) Store {
	return &gormStore{db: db, log: baseLog.With("service", "GormCacheStore")}
}

func (s *gormStore) Get(ctx context.Context, purpose, query string) (string, bool, error) {
	var entry types.CacheEntry
	err := s.db.WithContext(ctx).
		Where("key = ?", Fingerprint(purpose, query)).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return entry.Payload, true, nil
}

func (s *gormStore) Put(ctx context.Context, purpose, query, payload string) error {
	entry := types.CacheEntry{
		Key:       Fingerprint(purpose, query),
		Purpose:   purpose,
		Query:     query,
		Payload:   payload,
		UpdatedAt: time.Now().UTC(),
	}
	// Atomic-by-replacement: the row is swapped wholesale on conflict.
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"purpose", "query", "payload", "updated_at"}),
		}).
		Create(&entry).Error
}
