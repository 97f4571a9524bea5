package leave

type ApplyLeaveRequest struct {
	LeaveType      string  `json:"leave_type" binding:"required,oneof=CASUAL ON_DUTY WITHOUT_PAY"`
	StartDate      string  `json:"start_date" binding:"required"`
	EndDate        string  `json:"end_date" binding:"required"`
	Reason         string  `json:"reason" binding:"required"`
	ReportingTo    string  `json:"reporting_to" binding:"required,uuid"`
	ContactNo      *string `json:"contact_no"`
	PersonInCharge *string `json:"person_in_charge" binding:"required"`
}

type ReviewLeaveRequest struct {
	Remarks *string `json:"remarks"`
}

type LeaveResponse struct {
	ID             string   `json:"id"`
	UserID         string   `json:"user_id"`
	UserName       string   `json:"user_name,omitempty"`
	LeaveType      string   `json:"leave_type"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	NumberOfDays   float64  `json:"number_of_days"`
	Reason         string   `json:"reason"`
	ContactNo      *string  `json:"contact_no,omitempty"`
	PersonInCharge *string  `json:"person_in_charge,omitempty"`
	ReportingTo    string   `json:"reporting_to"`
	Status         string   `json:"status"`
	ReviewedBy     *string  `json:"reviewed_by,omitempty"`
	ReviewedOn     *string  `json:"reviewed_on,omitempty"`
	ReviewRemarks  *string  `json:"review_remarks,omitempty"`
	BalanceBefore  *float64 `json:"balance_before,omitempty"`
	BalanceAfter   *float64 `json:"balance_after,omitempty"`
}
