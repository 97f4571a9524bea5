package attendance

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusPresent = "PRESENT"
	StatusLate    = "LATE"
	StatusHalfDay = "HALF_DAY"
	StatusAbsent  = "ABSENT"
	StatusOnLeave = "ON_LEAVE"
)

// Attendance is the daily ledger row: at most one per (user, work date),
// enforced by a unique index.
type Attendance struct {
	ID           uuid.UUID  `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID       uuid.UUID  `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_attendance_user_date"`
	WorkDate     time.Time  `gorm:"column:work_date;type:date;not null;uniqueIndex:uq_attendance_user_date"`
	Status       string     `gorm:"column:status;type:varchar(20);not null;default:PRESENT"`
	CheckInTime  *time.Time `gorm:"column:check_in_time;type:timestamptz"`
	CheckInIP    *string    `gorm:"column:check_in_ip;type:varchar(45)"`
	CheckOutTime *time.Time `gorm:"column:check_out_time;type:timestamptz"`
	CheckOutIP   *string    `gorm:"column:check_out_ip;type:varchar(45)"`
	WorkingHours *float64   `gorm:"column:working_hours"`
	IsLate       bool       `gorm:"column:is_late;not null;default:false"`
	Remarks      *string    `gorm:"column:remarks;type:text"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
	User         *UserRef   `gorm:"foreignKey:UserID;references:ID"`
}

func (Attendance) TableName() string {
	return "attendances"
}

type UserRef struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName string    `gorm:"column:full_name"`
	IsActive bool      `gorm:"column:is_active"`
}

func (UserRef) TableName() string {
	return "users"
}
