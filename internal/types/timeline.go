package types

import (
	"time"

	"github.com/google/uuid"
)

// TimelinePlan is the document-of-record for one (user, course) pair: the plan
// text stored verbatim as generated or edited, never as HTML. Re-synthesis
// overwrites; chat edits rewrite Data wholesale.
type TimelinePlan struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     string    `gorm:"column:user_id;not null;index:idx_timeline_user_course,unique,priority:1" json:"user_id"`
	CourseName string    `gorm:"column:course_name;not null;index:idx_timeline_user_course,unique,priority:2" json:"course_name"`
	Data       string    `gorm:"column:data;type:text;not null" json:"data"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (TimelinePlan) TableName() string { return "timeline_plan" }
