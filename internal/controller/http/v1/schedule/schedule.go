package schedule

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"reflect"

	"gaon/backend/foundation/web"
	"gaon/backend/internal/repository/postgres/schedule"
	"gaon/backend/internal/service/report"

	"github.com/pkg/errors"
)

type Controller struct {
	schedule Schedule
	member   Member
}

func NewController(schedule Schedule, member Member) *Controller {
	return &Controller{schedule: schedule, member: member}
}

func (uc Controller) Generate(c *web.Context) error {
	var request schedule.GenerateRequest

	if err := c.BindFunc(&request, "VersionID", "From", "To"); err != nil {
		return c.RespondError(err)
	}

	list, err := uc.schedule.Generate(c.Ctx, request)
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

func (uc Controller) listFilter(c *web.Context) (schedule.ListFilter, error) {
	var filter schedule.ListFilter

	memberID, ok := c.GetQueryFunc(reflect.Int, "member_id").(*int)
	if !ok || memberID == nil {
		return filter, web.NewRequestError(errors.New("member_id parameter is required"), http.StatusBadRequest)
	}
	from, ok := c.GetQueryFunc(reflect.String, "from").(*string)
	if !ok || from == nil {
		return filter, web.NewRequestError(errors.New("from parameter is required"), http.StatusBadRequest)
	}
	to, ok := c.GetQueryFunc(reflect.String, "to").(*string)
	if !ok || to == nil {
		return filter, web.NewRequestError(errors.New("to parameter is required"), http.StatusBadRequest)
	}
	if err := c.ValidQuery(); err != nil {
		return filter, err
	}

	filter.MemberID = *memberID
	filter.From = *from
	filter.To = *to
	return filter, nil
}

func (uc Controller) GetList(c *web.Context) error {
	filter, err := uc.listFilter(c)
	if err != nil {
		return c.RespondError(err)
	}

	list, err := uc.schedule.GetList(c.Ctx, filter)
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

// ExportPdf renders the member's schedule rows in the range into a PDF and
// streams it back.
func (uc Controller) ExportPdf(c *web.Context) error {
	filter, err := uc.listFilter(c)
	if err != nil {
		return c.RespondError(err)
	}

	list, err := uc.schedule.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.member.GetById(c.Ctx, filter.MemberID)
	if err != nil {
		return c.RespondError(err)
	}
	studentLabel := fmt.Sprintf("#%d", detail.ID)
	if detail.FullName != nil {
		studentLabel = *detail.FullName
	}

	rows := make([]report.ScheduleRow, 0, len(list))
	for _, item := range list {
		row := report.ScheduleRow{
			StartTime: item.StartTime,
			EndTime:   item.EndTime,
			Status:    string(item.Status),
		}
		if item.Date != nil {
			row.Date = item.Date.String()
		}
		if item.Subject != nil {
			row.Subject = *item.Subject
		}
		rows = append(rows, row)
	}

	fileName, err := report.BuildSchedulePDF(studentLabel, filter.From, filter.To, rows)
	if err != nil {
		return c.RespondError(err)
	}

	file, err := os.Open(fileName)
	if err != nil {
		return c.RespondError(err)
	}
	defer file.Close()

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename="+filepath.Base(fileName))
	c.Status(http.StatusOK)
	if _, err = io.Copy(c.Writer, file); err != nil {
		return c.RespondError(err)
	}

	return nil
}
