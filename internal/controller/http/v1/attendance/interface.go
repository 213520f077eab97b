package attendance

import (
	"context"
	"time"

	"gaon/backend/internal/entity"
	"gaon/backend/internal/repository/postgres/attendance"
	"gaon/backend/internal/repository/postgres/member"
)

type Attendance interface {
	CheckIn(ctx context.Context, studentID int) (attendance.AttendanceResponse, error)
	CheckOut(ctx context.Context, studentID int) (attendance.AttendanceResponse, error)
	OutingStart(ctx context.Context, studentID int) (attendance.AttendanceResponse, error)
	OutingReturn(ctx context.Context, studentID int) (attendance.AttendanceResponse, error)
	ExcuseLate(ctx context.Context, studentID int) (attendance.AttendanceResponse, error)
	ExcuseAbsent(ctx context.Context, studentID int) (attendance.AttendanceResponse, error)
	GetTodayList(ctx context.Context) ([]attendance.AttendanceResponse, error)
	GetListByDate(ctx context.Context, day time.Time) ([]entity.Attendance, error)
}

type Member interface {
	GetList(ctx context.Context) ([]member.GetListResponse, error)
}
