package attendance

import (
	"github.com/Azure/go-autorest/autorest/date"
)

// AttendanceResponse is the view returned by every tracker operation and by
// the today list. FinalStatus carries the display label shown to staff.
type AttendanceResponse struct {
	AttendanceID int        `json:"attendance_id"`
	StudentID    int        `json:"student_id"`
	Date         *date.Date `json:"date"`
	AttendTime   *string    `json:"attend_time,omitempty"`
	LeaveTime    *string    `json:"leave_time,omitempty"`
	IsOuting     bool       `json:"is_outing"`
	ExcuseLate   bool       `json:"excuse_late"`
	ExcuseAbsent bool       `json:"excuse_absent"`
	FinalStatus  string     `json:"final_status"`
}
