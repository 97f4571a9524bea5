package rating

import (
	"time"

	"hrms/internal/user"

	"github.com/google/uuid"
)

type PeerRating struct {
	ID            uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	RaterID       uuid.UUID `gorm:"column:rater_id;type:uuid;not null;uniqueIndex:uq_rating_rater_ratee_period"`
	RateeID       uuid.UUID `gorm:"column:ratee_id;type:uuid;not null;uniqueIndex:uq_rating_rater_ratee_period"`
	Month         int       `gorm:"column:month;not null;uniqueIndex:uq_rating_rater_ratee_period"`
	Year          int       `gorm:"column:year;not null;uniqueIndex:uq_rating_rater_ratee_period"`
	TeamworkScore float64   `gorm:"column:teamwork_score;not null"`
	DeliveryScore float64   `gorm:"column:delivery_score;not null"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`

	Ratee *user.User `gorm:"foreignKey:RateeID;references:ID"`
}

func (PeerRating) TableName() string {
	return "peer_ratings"
}
