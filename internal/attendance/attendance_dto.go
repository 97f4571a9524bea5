package attendance

type MarkStatusRequest struct {
	UserID  string  `json:"user_id" binding:"required,uuid"`
	Status  string  `json:"status" binding:"required,oneof=PRESENT ABSENT HALF_DAY"`
	Remarks *string `json:"remarks"`
}

type AttendanceResponse struct {
	ID           string   `json:"id"`
	UserID       string   `json:"user_id"`
	UserName     string   `json:"user_name,omitempty"`
	WorkDate     string   `json:"work_date"`
	Status       string   `json:"status"`
	CheckInTime  *string  `json:"check_in_time,omitempty"`
	CheckInIP    *string  `json:"check_in_ip,omitempty"`
	CheckOutTime *string  `json:"check_out_time,omitempty"`
	CheckOutIP   *string  `json:"check_out_ip,omitempty"`
	WorkingHours *float64 `json:"working_hours,omitempty"`
	IsLate       bool     `json:"is_late"`
	Remarks      *string  `json:"remarks,omitempty"`
}

type AbsenteeResponse struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
}

// DayAttendanceResponse lists the day's records plus every active user
// without a record for that date.
type DayAttendanceResponse struct {
	Date      string               `json:"date"`
	Records   []AttendanceResponse `json:"records"`
	Absentees []AbsenteeResponse   `json:"absentees"`
}

type SweepResult struct {
	Date   string `json:"date"`
	Closed int    `json:"closed"`
}
