package entity

import (
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

type AttendanceStatus string

const (
	StatusNone    AttendanceStatus = "NONE"    // 아직 출결 시작 안됨
	StatusPresent AttendanceStatus = "PRESENT" // 정상 출석
	StatusOuting  AttendanceStatus = "OUTING"  // 외출중
	StatusLeave   AttendanceStatus = "LEAVE"   // 하원
	StatusAbsent  AttendanceStatus = "ABSENT"  // 최종 결석
)

// Label is the display text shown to the facility staff.
func (s AttendanceStatus) Label() string {
	switch s {
	case StatusPresent:
		return "출석"
	case StatusOuting:
		return "외출중"
	case StatusLeave:
		return "하원"
	case StatusAbsent:
		return "무단결석"
	default:
		return "미등원"
	}
}

type PenaltyType string

const (
	PenaltyLateAbsent PenaltyType = "LATE_ABSENT"
	PenaltyAbsent     PenaltyType = "ABSENT"
)

// LateGrace is how long after the scheduled attend time a check in still
// counts as on time.
const LateGrace = 30 * time.Minute

var (
	ErrAlreadyCheckedIn = errors.New("already checked in today")
	ErrNotCheckedIn     = errors.New("not checked in today")
	ErrNoActiveOuting   = errors.New("no active outing")
)

// Attendance is the per student, per day record. It is created lazily on the
// first action of the day and mutated only through the transition functions
// below, so the invariants (single check in, one open outing log) are
// enforced at the transition boundary.
type Attendance struct {
	bun.BaseModel `bun:"table:attendance"`

	BasicEntity
	StudentID    int              `json:"student_id" bun:"student_id"`
	Date         string           `json:"date"       bun:"date"`
	DayOfWeek    string           `json:"day_of_week" bun:"day_of_week"`
	AttendTime   *string          `json:"attend_time" bun:"attend_time"`
	LeaveTime    *string          `json:"leave_time"  bun:"leave_time"`
	Status       AttendanceStatus `json:"status"     bun:"status"`
	ExcuseLate   bool             `json:"excuse_late" bun:"excuse_late"`
	ExcuseAbsent bool             `json:"excuse_absent" bun:"excuse_absent"`
	Memo         *string          `json:"memo"       bun:"memo"`

	OutingLogs []OutingLog `json:"outing_logs" bun:"-"`
}

type OutingLog struct {
	bun.BaseModel `bun:"table:outing_log"`

	ID           int     `json:"id" bun:"id,pk,autoincrement"`
	AttendanceID int     `json:"attendance_id" bun:"attendance_id"`
	StartTime    string  `json:"start_time" bun:"start_time"`
	EndTime      *string `json:"end_time"   bun:"end_time"`
}

// AttendancePenalty rows are append only, one per violation event.
type AttendancePenalty struct {
	bun.BaseModel `bun:"table:attendance_penalty"`

	ID           int         `json:"id" bun:"id,pk,autoincrement"`
	AttendanceID int         `json:"attendance_id" bun:"attendance_id"`
	Type         PenaltyType `json:"type" bun:"type"`
	RecordedAt   time.Time   `json:"recorded_at" bun:"recorded_at"`
}

// NewAttendance returns the initial record for a student and day.
func NewAttendance(studentID int, day time.Time) Attendance {
	return Attendance{
		StudentID: studentID,
		Date:      day.Format(DateLayout),
		DayOfWeek: WeekdayOf(day),
		Status:    StatusNone,
	}
}

// WeekdayOf maps a date to the weekday spelling used by template items.
func WeekdayOf(t time.Time) string {
	return strings.ToUpper(t.Weekday().String())
}

func clockOf(t time.Time) time.Time {
	return time.Date(0, 1, 1, t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}

// CheckIn records the arrival. The returned flag is true when the arrival is
// past the scheduled attend time plus the grace window and not excused, in
// which case the caller appends a LATE_ABSENT penalty.
func (a *Attendance) CheckIn(now time.Time, scheduledAttend *time.Time) (bool, error) {
	if a.AttendTime != nil {
		return false, ErrAlreadyCheckedIn
	}

	t := now.Format(TimeLayout)
	a.AttendTime = &t
	a.Status = StatusPresent

	if a.ExcuseLate || scheduledAttend == nil {
		return false, nil
	}

	return clockOf(now).After(clockOf(*scheduledAttend).Add(LateGrace)), nil
}

// CheckOut records the departure for the day.
func (a *Attendance) CheckOut(now time.Time) error {
	if a.AttendTime == nil {
		return ErrNotCheckedIn
	}

	t := now.Format(TimeLayout)
	a.LeaveTime = &t
	a.Status = StatusLeave

	return nil
}

// StartOuting opens a new outing window.
func (a *Attendance) StartOuting(now time.Time) *OutingLog {
	log := OutingLog{
		StartTime: now.Format(TimeLayout),
	}
	a.OutingLogs = append(a.OutingLogs, log)
	a.Status = StatusOuting

	return &a.OutingLogs[len(a.OutingLogs)-1]
}

// ReturnOuting closes the most recently added open outing log. Status goes
// back to PRESENT; outings are only ever started from an attended day.
func (a *Attendance) ReturnOuting(now time.Time) (*OutingLog, error) {
	var last *OutingLog
	for i := range a.OutingLogs {
		if a.OutingLogs[i].EndTime == nil {
			last = &a.OutingLogs[i]
		}
	}
	if last == nil {
		return nil, ErrNoActiveOuting
	}

	t := now.Format(TimeLayout)
	last.EndTime = &t
	a.Status = StatusPresent

	return last, nil
}

// MarkAbsent finalizes an unmarked day as ABSENT. It reports whether the
// record actually changed: days with an arrival, an excuse notice or an
// earlier sweep run are left alone, so repeating the sweep never
// double-penalizes.
func (a *Attendance) MarkAbsent() bool {
	if a.AttendTime != nil || a.ExcuseAbsent || a.Status == StatusAbsent {
		return false
	}

	a.Status = StatusAbsent
	return true
}

// OutingNow reports whether the student is currently out.
func (a *Attendance) OutingNow() bool {
	return a.Status == StatusOuting
}
