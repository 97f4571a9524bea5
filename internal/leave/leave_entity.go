package leave

import (
	"time"

	"hrms/internal/user"

	"github.com/google/uuid"
)

const (
	TypeCasual     = "CASUAL"
	TypeOnDuty     = "ON_DUTY"
	TypeWithoutPay = "WITHOUT_PAY"
)

const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

type Leave struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID         uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	LeaveType      string    `gorm:"column:leave_type;type:varchar(30);not null"`
	StartDate      time.Time `gorm:"column:start_date;type:date;not null"`
	EndDate        time.Time `gorm:"column:end_date;type:date;not null"`
	NumberOfDays   float64   `gorm:"column:number_of_days;not null"`
	Reason         string    `gorm:"column:reason;type:text;not null"`
	ContactNo      *string   `gorm:"column:contact_no;type:varchar(30)"`
	PersonInCharge *string   `gorm:"column:person_in_charge;type:varchar(255)"`

	// ReportingTo is the designated approver, frozen at application time so a
	// later reassignment does not reroute pending requests.
	ReportingTo uuid.UUID `gorm:"column:reporting_to;type:uuid;not null"`

	Status        string     `gorm:"column:status;type:varchar(20);not null;default:PENDING"`
	ReviewedBy    *uuid.UUID `gorm:"column:reviewed_by;type:uuid"`
	ReviewedOn    *time.Time `gorm:"column:reviewed_on"`
	ReviewRemarks *string    `gorm:"column:review_remarks;type:text"`

	// Balance snapshots for display. The authoritative remaining balance is
	// always recomputed from approved-leave aggregation.
	BalanceBefore *float64 `gorm:"column:balance_before"`
	BalanceAfter  *float64 `gorm:"column:balance_after"`

	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`

	User *user.User `gorm:"foreignKey:UserID;references:ID"`
}

func (Leave) TableName() string {
	return "leaves"
}

func ValidLeaveType(t string) bool {
	switch t {
	case TypeCasual, TypeOnDuty, TypeWithoutPay:
		return true
	}
	return false
}
