package notification

import (
	"time"

	"github.com/google/uuid"
)

type Notification struct {
	ID     uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	Title  string    `gorm:"column:title;type:varchar(255);not null"`
	Body   string    `gorm:"column:body;type:text;not null"`

	// SourceKey dedups event-driven notifications; the unique index turns a
	// redelivered message into a no-op.
	SourceKey *string `gorm:"column:source_key;type:varchar(150);uniqueIndex"`

	IsRead    bool      `gorm:"column:is_read;not null;default:false"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}
