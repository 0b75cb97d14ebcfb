package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/learnsphere/learnsphere-backend/internal/logger"
	"github.com/learnsphere/learnsphere-backend/internal/types"
)

type QueryRepo interface {
	Create(ctx context.Context, tx *gorm.DB, queries []*types.Query) ([]*types.Query, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*types.Query, error)
}

type queryRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewQueryRepo(db *gorm.DB, baseLog *logger.Logger) QueryRepo {
	return &queryRepo{db: db, log: baseLog.With("repo", "QueryRepo")}
}

func (r *queryRepo) Create(ctx context.Context, tx *gorm.DB, queries []*types.Query) ([]*types.Query, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(queries) == 0 {
		return []*types.Query{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&queries).Error; err != nil {
		return nil, err
	}
	return queries, nil
}

func (r *queryRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID string) ([]*types.Query, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Query
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
