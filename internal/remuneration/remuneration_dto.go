package remuneration

// EmployeeRemuneration is the per-employee row of the monthly aggregation.
// Everything here is derived from persisted attendance, leave, and holiday
// data; nothing is mutated by this module.
type EmployeeRemuneration struct {
	UserID          string  `json:"user_id"`
	UserName        string  `json:"user_name"`
	EmployeeCode    string  `json:"employee_code"`
	DaysWorked      float64 `json:"days_worked"`
	CasualLeaveDays float64 `json:"casual_leave_days"`
	AbsentDays      float64 `json:"absent_days"`
	WeeklyOffs      int     `json:"weekly_offs"`
	Holidays        int     `json:"holidays"`
	TotalDays       int     `json:"total_days"`
	PayableDays     float64 `json:"payable_days"`
}

type MonthlySummary struct {
	Month     int                    `json:"month"`
	Year      int                    `json:"year"`
	Employees []EmployeeRemuneration `json:"employees"`
}
