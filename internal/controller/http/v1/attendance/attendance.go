package attendance

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"gaon/backend/foundation/web"
	"gaon/backend/internal/entity"
	"gaon/backend/internal/repository/postgres/attendance"
	"gaon/backend/internal/service/report"

	"github.com/pkg/errors"
)

type Controller struct {
	attendance Attendance
	member     Member
}

func NewController(attendance Attendance, member Member) *Controller {
	return &Controller{attendance: attendance, member: member}
}

func (uc Controller) act(c *web.Context, op func(ctx context.Context, studentID int) (attendance.AttendanceResponse, error)) error {
	studentID := c.GetParam(reflect.Int, "student_id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := op(c.Ctx, studentID)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) CheckIn(c *web.Context) error {
	return uc.act(c, uc.attendance.CheckIn)
}

func (uc Controller) CheckOut(c *web.Context) error {
	return uc.act(c, uc.attendance.CheckOut)
}

func (uc Controller) OutingStart(c *web.Context) error {
	return uc.act(c, uc.attendance.OutingStart)
}

func (uc Controller) OutingReturn(c *web.Context) error {
	return uc.act(c, uc.attendance.OutingReturn)
}

func (uc Controller) ExcuseLate(c *web.Context) error {
	return uc.act(c, uc.attendance.ExcuseLate)
}

func (uc Controller) ExcuseAbsent(c *web.Context) error {
	return uc.act(c, uc.attendance.ExcuseAbsent)
}

func (uc Controller) GetTodayList(c *web.Context) error {
	list, err := uc.attendance.GetTodayList(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   len(list),
		},
		"status": true,
	}, http.StatusOK)
}

// ExportExcel builds the day's attendance workbook and streams it back.
func (uc Controller) ExportExcel(c *web.Context) error {
	dateStr, ok := c.GetQueryFunc(reflect.String, "date").(*string)
	if !ok || dateStr == nil {
		return c.RespondError(web.NewRequestError(errors.New("date parameter is required"), http.StatusBadRequest))
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	day, err := time.Parse(entity.DateLayout, *dateStr)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "parsing date"), http.StatusBadRequest))
	}

	records, err := uc.attendance.GetListByDate(c.Ctx, day)
	if err != nil {
		return c.RespondError(err)
	}

	members, err := uc.member.GetList(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}
	names := make(map[int]string, len(members))
	for _, m := range members {
		if m.FullName != nil {
			names[m.ID] = *m.FullName
		}
	}

	rows := make([]report.AttendanceRow, 0, len(records))
	for _, record := range records {
		row := report.AttendanceRow{
			StudentID: record.StudentID,
			FullName:  names[record.StudentID],
			Date:      record.Date,
			Status:    record.Status.Label(),
		}
		if record.AttendTime != nil {
			row.AttendTime = *record.AttendTime
		}
		if record.LeaveTime != nil {
			row.LeaveTime = *record.LeaveTime
		}
		rows = append(rows, row)
	}

	fileName := fmt.Sprintf("attendance_%s.xlsx", day.Format(entity.DateLayout))

	// Rebuild from scratch, a stale file would get appended to.
	_ = os.Remove(fileName)
	if err = report.AddAttendanceToExcel(rows, fileName); err != nil {
		return c.RespondError(err)
	}

	file, err := os.Open(fileName)
	if err != nil {
		return c.RespondError(err)
	}
	defer file.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+filepath.Base(fileName))
	c.Status(http.StatusOK)
	if _, err = io.Copy(c.Writer, file); err != nil {
		return c.RespondError(err)
	}

	return nil
}
