package user

type CreateUserRequest struct {
	Email       string  `json:"email" binding:"required,email"`
	Password    string  `json:"password" binding:"required,min=8"`
	FullName    string  `json:"full_name" binding:"required"`
	Role        string  `json:"role" binding:"required,oneof=EMPLOYEE MANAGER HR ADMIN CEO"`
	Designation *string `json:"designation"`
	Department  *string `json:"department"`
	ContactNo   *string `json:"contact_no"`
	PhotoPath   *string `json:"photo_path"`
	ReportingTo *string `json:"reporting_to"`
	JoinDate    *string `json:"join_date"`
}

type UpdateUserRequest struct {
	FullName    *string `json:"full_name"`
	Role        *string `json:"role" binding:"omitempty,oneof=EMPLOYEE MANAGER HR ADMIN CEO"`
	Designation *string `json:"designation"`
	Department  *string `json:"department"`
	ContactNo   *string `json:"contact_no"`
	PhotoPath   *string `json:"photo_path"`
	ReportingTo *string `json:"reporting_to"`
}

type LeaveBalanceResponse struct {
	CasualLeave        float64 `json:"casual_leave"`
	OnDutyLeave        float64 `json:"on_duty_leave"`
	LeaveWithoutPay    float64 `json:"leave_without_pay"`
	CasualLeaveAvailed float64 `json:"casual_leave_availed"`
}

type UserResponse struct {
	ID           string               `json:"id"`
	EmployeeCode string               `json:"employee_code"`
	Email        string               `json:"email"`
	FullName     string               `json:"full_name"`
	Role         string               `json:"role"`
	Designation  *string              `json:"designation,omitempty"`
	Department   *string              `json:"department,omitempty"`
	ContactNo    *string              `json:"contact_no,omitempty"`
	PhotoPath    *string              `json:"photo_path,omitempty"`
	ReportingTo  *string              `json:"reporting_to,omitempty"`
	JoinDate     *string              `json:"join_date,omitempty"`
	LeaveBalance LeaveBalanceResponse `json:"leave_balance"`
	IsActive     bool                 `json:"is_active"`
}
