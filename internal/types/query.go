package types

import (
	"time"

	"github.com/google/uuid"
)

// Query records one ranking run: the learning goal and the course it chose.
type Query struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     string    `gorm:"column:user_id;not null;index" json:"user_id"`
	QueryText  string    `gorm:"column:query_text;not null" json:"query_text"`
	CourseName string    `gorm:"column:course_name;not null" json:"course_name"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (Query) TableName() string { return "query" }
