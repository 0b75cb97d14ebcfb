package types

import (
	"time"

	"github.com/google/uuid"
)

// ChatLog records one chat turn against a timeline: the raw utterance and the
// confirmation (or acknowledgement) returned for it.
type ChatLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     string    `gorm:"column:user_id;not null;index:idx_chat_log_user_course,priority:1" json:"user_id"`
	CourseName string    `gorm:"column:course_name;not null;index:idx_chat_log_user_course,priority:2" json:"course_name"`
	Utterance  string    `gorm:"column:utterance;type:text;not null" json:"utterance"`
	Response   string    `gorm:"column:response;type:text;not null" json:"response"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
}

func (ChatLog) TableName() string { return "chat_log" }
