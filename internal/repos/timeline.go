package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/learnsphere/learnsphere-backend/internal/logger"
	"github.com/learnsphere/learnsphere-backend/internal/types"
)

type TimelineRepo interface {
	GetByUserAndCourse(ctx context.Context, tx *gorm.DB, userID, courseName string) (*types.TimelinePlan, error)
	// Upsert writes the whole plan document for (user, course), creating the
	// row on first synthesis and replacing Data wholesale afterwards.
	Upsert(ctx context.Context, tx *gorm.DB, userID, courseName, data string) (*types.TimelinePlan, error)
}

type timelineRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTimelineRepo(db *gorm.DB, baseLog *logger.Logger) TimelineRepo {
	return &timelineRepo{db: db, log: baseLog.With("repo", "TimelineRepo")}
}

func (r *timelineRepo) GetByUserAndCourse(ctx context.Context, tx *gorm.DB, userID, courseName string) (*types.TimelinePlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var plan types.TimelinePlan
	err := transaction.WithContext(ctx).
		Where("user_id = ? AND course_name = ?", userID, courseName).
		First(&plan).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

func (r *timelineRepo) Upsert(ctx context.Context, tx *gorm.DB, userID, courseName, data string) (*types.TimelinePlan, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	now := time.Now().UTC()
	plan := &types.TimelinePlan{
		ID:         uuid.New(),
		UserID:     userID,
		CourseName: courseName,
		Data:       data,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_name"}},
			DoUpdates: clause.AssignmentColumns([]string{"data", "updated_at"}),
		}).
		Create(plan).Error; err != nil {
		return nil, err
	}
	return plan, nil
}
