package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/learnsphere/learnsphere-backend/internal/logger"
	"github.com/learnsphere/learnsphere-backend/internal/types"
)

type ChatLogRepo interface {
	Create(ctx context.Context, tx *gorm.DB, logs []*types.ChatLog) ([]*types.ChatLog, error)
	ListByUserAndCourse(ctx context.Context, tx *gorm.DB, userID, courseName string) ([]*types.ChatLog, error)
}

type chatLogRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChatLogRepo(db *gorm.DB, baseLog *logger.Logger) ChatLogRepo {
	return &chatLogRepo{db: db, log: baseLog.With("repo", "ChatLogRepo")}
}

func (r *chatLogRepo) Create(ctx context.Context, tx *gorm.DB, logs []*types.ChatLog) ([]*types.ChatLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(logs) == 0 {
		return []*types.ChatLog{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *chatLogRepo) ListByUserAndCourse(ctx context.Context, tx *gorm.DB, userID, courseName string) ([]*types.ChatLog, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ChatLog
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND course_name = ?", userID, courseName).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
