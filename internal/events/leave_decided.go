package events

import "time"

const LeaveDecisionTopic = "hr.leave.decision.v1"

const (
	LeaveApprovedEventType = "leave.approved"
	LeaveRejectedEventType = "leave.rejected"
)

// LeaveDecidedEvent is emitted once when a pending leave reaches its terminal
// status. Consumers use LeaveID for dedup.
type LeaveDecidedEvent struct {
	EventType  string    `json:"event_type"`
	LeaveID    string    `json:"leave_id"`
	UserID     string    `json:"user_id"`
	LeaveType  string    `json:"leave_type"`
	StartDate  string    `json:"start_date"`
	EndDate    string    `json:"end_date"`
	Status     string    `json:"status"`
	ReviewedBy string    `json:"reviewed_by"`
	Remarks    string    `json:"remarks"`
	OccurredAt time.Time `json:"occurred_at"`
}
