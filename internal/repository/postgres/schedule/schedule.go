package schedule

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"gaon/backend/foundation/web"
	"gaon/backend/internal/entity"
	"gaon/backend/internal/pkg/repository/postgresql"
	"gaon/backend/internal/repository/postgres"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

var ErrInvalidRange = errors.New("from date must not be after to date")

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// Generate materializes the version's weekly blocks into dated rows over
// [from, to]. The window is replaced wholesale: every existing row of the
// owning student inside the range is deleted before the new rows are
// inserted, all in one transaction so readers never see the emptied window.
func (r Repository) Generate(ctx context.Context, request GenerateRequest) ([]InstanceResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return nil, err
	}

	from, to, err := parseRange(request.From, request.To)
	if err != nil {
		return nil, err
	}

	var generated []entity.Schedule
	now := time.Now()

	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var detail entity.ScheduleTemplateVersion

		err := tx.NewSelect().
			Model(&detail).
			Where("id = ? AND deleted_at IS NULL", request.VersionID).
			For("UPDATE").
			Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
		}
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "selecting version"), http.StatusInternalServerError)
		}

		if err = detail.CanGenerate(); err != nil {
			return web.NewRequestError(err, http.StatusBadRequest)
		}

		var items []entity.ScheduleTemplateItem
		err = tx.NewSelect().
			Model(&items).
			Where("version_id = ? AND deleted_at IS NULL", detail.ID).
			Order("day_of_week ASC", "start_time ASC").
			Scan(ctx)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return web.NewRequestError(errors.Wrap(err, "selecting template items"), http.StatusInternalServerError)
		}
		if len(items) == 0 {
			return nil
		}

		var studentID int
		err = tx.NewSelect().
			Table("schedule_template").
			Column("member_id").
			Where("id = ?", detail.TemplateID).
			Scan(ctx, &studentID)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "selecting template owner"), http.StatusInternalServerError)
		}

		_, err = tx.NewDelete().
			Model((*entity.Schedule)(nil)).
			Where("student_id = ? AND date BETWEEN ? AND ?",
				studentID, from.Format(entity.DateLayout), to.Format(entity.DateLayout)).
			Exec(ctx)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "deleting prior schedule rows"), http.StatusInternalServerError)
		}

		generated = expandItems(studentID, detail.ID, items, from, to)
		for i := range generated {
			generated[i].CreatedAt = now
			generated[i].CreatedBy = &claims.UserId
		}

		if len(generated) == 0 {
			return nil
		}

		if _, err = tx.NewInsert().Model(&generated).Exec(ctx); err != nil {
			return web.NewRequestError(errors.Wrap(err, "inserting schedule rows"), http.StatusInternalServerError)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return toResponses(generated)
}

// expandItems walks every calendar date of [from, to] and emits one row per
// item whose weekday matches the date.
func expandItems(studentID, versionID int, items []entity.ScheduleTemplateItem, from, to time.Time) []entity.Schedule {
	var rows []entity.Schedule

	for current := from; !current.After(to); current = current.AddDate(0, 0, 1) {
		weekday := entity.WeekdayOf(current)

		for i := range items {
			if items[i].DayOfWeek != weekday {
				continue
			}

			itemID := items[i].ID
			rows = append(rows, entity.Schedule{
				StudentID: studentID,
				Date:      current.Format(entity.DateLayout),
				StartTime: items[i].StartTime,
				EndTime:   items[i].EndTime,
				Subject:   items[i].Subject,
				Status:    entity.ScheduleNormal,
				VersionID: versionID,
				ItemID:    &itemID,
			})
		}
	}

	return rows
}

func parseRange(fromStr, toStr string) (time.Time, time.Time, error) {
	from, err := time.Parse(entity.DateLayout, fromStr)
	if err != nil {
		return time.Time{}, time.Time{}, web.NewRequestError(errors.Wrap(err, "parsing from date"), http.StatusBadRequest)
	}
	to, err := time.Parse(entity.DateLayout, toStr)
	if err != nil {
		return time.Time{}, time.Time{}, web.NewRequestError(errors.Wrap(err, "parsing to date"), http.StatusBadRequest)
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, web.NewRequestError(ErrInvalidRange, http.StatusBadRequest)
	}

	return from, to, nil
}

// GetList returns a member's schedule rows inside the range, ordered by
// date then start time.
func (r Repository) GetList(ctx context.Context, filter ListFilter) ([]InstanceResponse, error) {
	if _, err := r.CheckClaims(ctx); err != nil {
		return nil, err
	}

	from, to, err := parseRange(filter.From, filter.To)
	if err != nil {
		return nil, err
	}

	var rows []entity.Schedule

	err = r.NewSelect().
		Model(&rows).
		Where("student_id = ? AND date BETWEEN ? AND ? AND deleted_at IS NULL",
			filter.MemberID, from.Format(entity.DateLayout), to.Format(entity.DateLayout)).
		Order("date ASC", "start_time ASC").
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting schedule rows"), http.StatusInternalServerError)
	}

	return toResponses(rows)
}

func toResponses(rows []entity.Schedule) ([]InstanceResponse, error) {
	list := make([]InstanceResponse, 0, len(rows))

	for _, row := range rows {
		day, err := date.ParseDate(row.Date)
		if err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "parsing schedule date"), http.StatusInternalServerError)
		}

		list = append(list, InstanceResponse{
			ID:        row.ID,
			StudentID: row.StudentID,
			Date:      &day,
			StartTime: row.StartTime,
			EndTime:   row.EndTime,
			Subject:   row.Subject,
			Memo:      row.Memo,
			Status:    row.Status,
			VersionID: row.VersionID,
			ItemID:    row.ItemID,
		})
	}

	return list, nil
}
