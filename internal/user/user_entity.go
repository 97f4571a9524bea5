package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;primaryKey;default:gen_random_uuid()"`
	EmployeeCode string    `gorm:"column:employee_code;type:varchar(20);not null;uniqueIndex"`
	Email        string    `gorm:"column:email;type:varchar(255);not null;uniqueIndex"`
	Password     string    `gorm:"column:password;type:varchar(255);not null"`
	FullName     string    `gorm:"column:full_name;type:varchar(255);not null"`
	Role         string    `gorm:"column:role;type:varchar(20);not null;default:EMPLOYEE"`
	Designation  *string   `gorm:"column:designation;type:varchar(100)"`
	Department   *string   `gorm:"column:department;type:varchar(100)"`
	ContactNo    *string   `gorm:"column:contact_no;type:varchar(30)"`
	PhotoPath    *string   `gorm:"column:photo_path;type:text"`

	// Employment terms: ReportingTo is the designated leave approver.
	ReportingTo *uuid.UUID `gorm:"column:reporting_to;type:uuid;index"`
	JoinDate    *time.Time `gorm:"column:join_date;type:date"`

	// Leave entitlement columns. CasualLeave is the annual entitlement;
	// remaining balance is always derived from approved-leave aggregation,
	// never by decrementing this column. CasualLeaveAvailed tallies the
	// half-day marks applied by approvers.
	CasualLeave        float64 `gorm:"column:casual_leave;not null;default:12"`
	OnDutyLeave        float64 `gorm:"column:on_duty_leave;not null;default:0"`
	LeaveWithoutPay    float64 `gorm:"column:leave_without_pay;not null;default:0"`
	CasualLeaveAvailed float64 `gorm:"column:casual_leave_availed;not null;default:0"`

	IsActive  bool           `gorm:"column:is_active;not null;default:true"`
	CreatedAt time.Time      `gorm:"column:created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`
}

func (User) TableName() string {
	return "users"
}
