package holiday

import (
	"time"

	"github.com/google/uuid"
)

const (
	TypeNational = "NATIONAL"
	TypeRegional = "REGIONAL"
	TypeCompany  = "COMPANY"
)

type Holiday struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	HolidayDate time.Time  `gorm:"column:holiday_date;type:date;not null;uniqueIndex"`
	Name        string     `gorm:"column:name;type:varchar(255);not null"`
	HolidayType string     `gorm:"column:holiday_type;type:varchar(50);not null;default:NATIONAL"`
	Year        int        `gorm:"column:year;not null"`
	AddedBy     *uuid.UUID `gorm:"column:added_by;type:uuid"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (Holiday) TableName() string {
	return "holidays"
}
