package entity

import (
	"testing"
	"time"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

func timePtr(t time.Time) *time.Time { return &t }

func TestCheckInTwice(t *testing.T) {
	a := NewAttendance(1, at(8, 0))

	if _, err := a.CheckIn(at(9, 0), nil); err != nil {
		t.Fatalf("first check in: %v", err)
	}
	if a.Status != StatusPresent {
		t.Fatalf("expected PRESENT, got %s", a.Status)
	}

	if _, err := a.CheckIn(at(9, 5), nil); err != ErrAlreadyCheckedIn {
		t.Fatalf("expected ErrAlreadyCheckedIn, got %v", err)
	}
}

func TestCheckInLateness(t *testing.T) {
	scheduled := at(14, 0)

	tests := []struct {
		name       string
		now        time.Time
		scheduled  *time.Time
		excuseLate bool
		expLate    bool
	}{
		{
			name:      "on time",
			now:       at(13, 55),
			scheduled: timePtr(scheduled),
		},
		{
			name:      "inside grace window",
			now:       at(14, 20),
			scheduled: timePtr(scheduled),
		},
		{
			name:      "exactly at grace boundary",
			now:       at(14, 30),
			scheduled: timePtr(scheduled),
		},
		{
			name:      "past grace window",
			now:       at(14, 31),
			scheduled: timePtr(scheduled),
			expLate:   true,
		},
		{
			name:       "past grace window but excused",
			now:        at(16, 0),
			scheduled:  timePtr(scheduled),
			excuseLate: true,
		},
		{
			name: "no scheduled attend time",
			now:  at(16, 0),
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			a := NewAttendance(1, tc.now)
			a.ExcuseLate = tc.excuseLate

			late, err := a.CheckIn(tc.now, tc.scheduled)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if late != tc.expLate {
				t.Fatalf("expected late=%v, got %v", tc.expLate, late)
			}
		})
	}
}

func TestCheckOutBeforeCheckIn(t *testing.T) {
	a := NewAttendance(1, at(8, 0))

	if err := a.CheckOut(at(18, 0)); err != ErrNotCheckedIn {
		t.Fatalf("expected ErrNotCheckedIn, got %v", err)
	}
}

func TestCheckOut(t *testing.T) {
	a := NewAttendance(1, at(8, 0))
	if _, err := a.CheckIn(at(9, 0), nil); err != nil {
		t.Fatalf("check in: %v", err)
	}

	if err := a.CheckOut(at(18, 0)); err != nil {
		t.Fatalf("check out: %v", err)
	}
	if a.Status != StatusLeave {
		t.Fatalf("expected LEAVE, got %s", a.Status)
	}
	if a.LeaveTime == nil || *a.LeaveTime != "18:00:00" {
		t.Fatalf("unexpected leave time: %v", a.LeaveTime)
	}
}

func openOutings(a Attendance) int {
	n := 0
	for _, l := range a.OutingLogs {
		if l.EndTime == nil {
			n++
		}
	}
	return n
}

func TestOutingLifecycle(t *testing.T) {
	a := NewAttendance(1, at(8, 0))
	if _, err := a.CheckIn(at(9, 0), nil); err != nil {
		t.Fatalf("check in: %v", err)
	}

	a.StartOuting(at(12, 0))
	if a.Status != StatusOuting {
		t.Fatalf("expected OUTING, got %s", a.Status)
	}
	if openOutings(a) != 1 {
		t.Fatalf("expected one open outing, got %d", openOutings(a))
	}

	log, err := a.ReturnOuting(at(13, 0))
	if err != nil {
		t.Fatalf("return: %v", err)
	}
	if log.EndTime == nil || *log.EndTime != "13:00:00" {
		t.Fatalf("unexpected end time: %v", log.EndTime)
	}
	if a.Status != StatusPresent {
		t.Fatalf("expected PRESENT after return, got %s", a.Status)
	}
	if openOutings(a) != 0 {
		t.Fatalf("expected no open outing, got %d", openOutings(a))
	}
}

func TestReturnClosesLatestOpenOuting(t *testing.T) {
	a := NewAttendance(1, at(8, 0))
	a.StartOuting(at(12, 0))
	a.StartOuting(at(12, 30))

	if _, err := a.ReturnOuting(at(13, 0)); err != nil {
		t.Fatalf("return: %v", err)
	}

	// Latest added log is the one closed.
	if a.OutingLogs[1].EndTime == nil {
		t.Fatalf("expected the latest log to be closed")
	}
	if a.OutingLogs[0].EndTime != nil {
		t.Fatalf("expected the earlier log to stay open")
	}
}

func TestReturnWithoutOuting(t *testing.T) {
	a := NewAttendance(1, at(8, 0))

	if _, err := a.ReturnOuting(at(13, 0)); err != ErrNoActiveOuting {
		t.Fatalf("expected ErrNoActiveOuting, got %v", err)
	}
}

func TestMarkAbsent(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(a *Attendance)
		expMark bool
	}{
		{
			name:    "unmarked day",
			prepare: func(a *Attendance) {},
			expMark: true,
		},
		{
			name: "checked in",
			prepare: func(a *Attendance) {
				if _, err := a.CheckIn(at(9, 0), nil); err != nil {
					panic(err)
				}
			},
		},
		{
			name: "excused absence",
			prepare: func(a *Attendance) {
				a.ExcuseAbsent = true
			},
		},
		{
			name: "already swept",
			prepare: func(a *Attendance) {
				a.MarkAbsent()
			},
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			a := NewAttendance(1, at(8, 0))
			tc.prepare(&a)

			if got := a.MarkAbsent(); got != tc.expMark {
				t.Fatalf("expected mark=%v, got %v", tc.expMark, got)
			}
			if tc.expMark && a.Status != StatusAbsent {
				t.Fatalf("expected ABSENT, got %s", a.Status)
			}
		})
	}
}

func TestStatusLabels(t *testing.T) {
	tests := []struct {
		status AttendanceStatus
		label  string
	}{
		{StatusPresent, "출석"},
		{StatusOuting, "외출중"},
		{StatusLeave, "하원"},
		{StatusAbsent, "무단결석"},
		{StatusNone, "미등원"},
	}

	for _, tc := range tests {
		if got := tc.status.Label(); got != tc.label {
			t.Fatalf("status %s: expected %q, got %q", tc.status, tc.label, got)
		}
	}
}
