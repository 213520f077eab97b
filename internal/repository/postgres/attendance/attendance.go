package attendance

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"gaon/backend/foundation/web"
	"gaon/backend/internal/entity"
	"gaon/backend/internal/pkg/repository/postgresql"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

// Repository applies the daily attendance state machine. Every operation is
// one transaction with the day's row locked, so concurrent actions for the
// same student serialize on the record.
type Repository struct {
	*postgresql.Database
	location *time.Location
}

func NewRepository(database *postgresql.Database, location *time.Location) *Repository {
	return &Repository{Database: database, location: location}
}

func (r Repository) now() time.Time {
	return time.Now().In(r.location)
}

// getOrCreateToday loads today's record for the student with a row lock,
// creating the initial NONE record on the first action of the day.
func (r Repository) getOrCreateToday(ctx context.Context, tx bun.Tx, studentID int, now time.Time) (entity.Attendance, error) {
	var record entity.Attendance

	err := tx.NewSelect().
		Model(&record).
		Where("student_id = ? AND date = ? AND deleted_at IS NULL", studentID, now.Format(entity.DateLayout)).
		For("UPDATE").
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		record = entity.NewAttendance(studentID, now)
		record.CreatedAt = now

		if _, err = tx.NewInsert().Model(&record).Returning("id").Exec(ctx, &record.ID); err != nil {
			return entity.Attendance{}, web.NewRequestError(errors.Wrap(err, "creating attendance record"), http.StatusInternalServerError)
		}
		return record, nil
	}
	if err != nil {
		return entity.Attendance{}, web.NewRequestError(errors.Wrap(err, "selecting attendance record"), http.StatusInternalServerError)
	}

	return record, nil
}

func (r Repository) loadOutings(ctx context.Context, tx bun.Tx, record *entity.Attendance) error {
	err := tx.NewSelect().
		Model(&record.OutingLogs).
		Where("attendance_id = ?", record.ID).
		Order("id ASC").
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return web.NewRequestError(errors.Wrap(err, "selecting outing logs"), http.StatusInternalServerError)
	}

	return nil
}

// scheduledAttend returns the earliest generated schedule start for the
// student today, the reference point of the lateness check.
func (r Repository) scheduledAttend(ctx context.Context, tx bun.Tx, studentID int, now time.Time) (*time.Time, error) {
	var start *string

	err := tx.NewSelect().
		Table("schedule").
		ColumnExpr("MIN(start_time)").
		Where("student_id = ? AND date = ? AND status != ? AND deleted_at IS NULL",
			studentID, now.Format(entity.DateLayout), entity.ScheduleCanceled).
		Scan(ctx, &start)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting scheduled attend time"), http.StatusInternalServerError)
	}
	if start == nil {
		return nil, nil
	}

	t, err := time.Parse(entity.TimeLayout, *start)
	if err != nil {
		return nil, web.NewRequestError(errors.Wrap(err, "parsing scheduled attend time"), http.StatusInternalServerError)
	}

	return &t, nil
}

func (r Repository) saveRecord(ctx context.Context, tx bun.Tx, record entity.Attendance, by int, now time.Time) error {
	_, err := tx.NewUpdate().
		Table("attendance").
		Where("id = ?", record.ID).
		Set("attend_time = ?", record.AttendTime).
		Set("leave_time = ?", record.LeaveTime).
		Set("status = ?", record.Status).
		Set("excuse_late = ?", record.ExcuseLate).
		Set("excuse_absent = ?", record.ExcuseAbsent).
		Set("updated_at = ?", now).
		Set("updated_by = ?", by).
		Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "updating attendance record"), http.StatusInternalServerError)
	}

	return nil
}

func (r Repository) appendPenalty(ctx context.Context, tx bun.Tx, attendanceID int, penaltyType entity.PenaltyType, now time.Time) error {
	penalty := entity.AttendancePenalty{
		AttendanceID: attendanceID,
		Type:         penaltyType,
		RecordedAt:   now,
	}

	if _, err := tx.NewInsert().Model(&penalty).Exec(ctx); err != nil {
		return web.NewRequestError(errors.Wrap(err, "appending attendance penalty"), http.StatusInternalServerError)
	}

	return nil
}

func toResponse(record entity.Attendance) (AttendanceResponse, error) {
	day, err := date.ParseDate(record.Date)
	if err != nil {
		return AttendanceResponse{}, web.NewRequestError(errors.Wrap(err, "parsing attendance date"), http.StatusInternalServerError)
	}

	return AttendanceResponse{
		AttendanceID: record.ID,
		StudentID:    record.StudentID,
		Date:         &day,
		AttendTime:   clipTime(record.AttendTime),
		LeaveTime:    clipTime(record.LeaveTime),
		IsOuting:     record.OutingNow(),
		ExcuseLate:   record.ExcuseLate,
		ExcuseAbsent: record.ExcuseAbsent,
		FinalStatus:  record.Status.Label(),
	}, nil
}

// clipTime shortens "15:04:05" to the "15:04" shown on screen.
func clipTime(t *string) *string {
	if t == nil {
		return nil
	}
	s := *t
	if len(s) > 5 {
		s = s[:5]
	}
	return &s
}

// CheckIn records the student's arrival. A second check in on the same day
// conflicts; arrivals past the scheduled time plus the grace window append
// a LATE_ABSENT penalty unless a late notice was filed.
func (r Repository) CheckIn(ctx context.Context, studentID int) (AttendanceResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return AttendanceResponse{}, err
	}

	var response AttendanceResponse
	now := r.now()

	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		record, err := r.getOrCreateToday(ctx, tx, studentID, now)
		if err != nil {
			return err
		}

		scheduled, err := r.scheduledAttend(ctx, tx, studentID, now)
		if err != nil {
			return err
		}

		late, err := record.CheckIn(now, scheduled)
		if errors.Is(err, entity.ErrAlreadyCheckedIn) {
			return web.NewRequestError(err, http.StatusConflict)
		}
		if err != nil {
			return web.NewRequestError(err, http.StatusBadRequest)
		}

		if err = r.saveRecord(ctx, tx, record, claims.UserId, now); err != nil {
			return err
		}

		if late {
			if err = r.appendPenalty(ctx, tx, record.ID, entity.PenaltyLateAbsent, now); err != nil {
				return err
			}
		}

		response, err = toResponse(record)
		return err
	})
	if err != nil {
		return AttendanceResponse{}, err
	}

	return response, nil
}

// CheckOut records the student's departure for the day.
func (r Repository) CheckOut(ctx context.Context, studentID int) (AttendanceResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return AttendanceResponse{}, err
	}

	var response AttendanceResponse
	now := r.now()

	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		record, err := r.getOrCreateToday(ctx, tx, studentID, now)
		if err != nil {
			return err
		}

		if err = record.CheckOut(now); err != nil {
			return web.NewRequestError(err, http.StatusBadRequest)
		}

		if err = r.saveRecord(ctx, tx, record, claims.UserId, now); err != nil {
			return err
		}

		response, err = toResponse(record)
		return err
	})
	if err != nil {
		return AttendanceResponse{}, err
	}

	return response, nil
}

// OutingStart opens an outing window on today's record.
func (r Repository) OutingStart(ctx context.Context, studentID int) (AttendanceResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return AttendanceResponse{}, err
	}

	var response AttendanceResponse
	now := r.now()

	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		record, err := r.getOrCreateToday(ctx, tx, studentID, now)
		if err != nil {
			return err
		}
		if err = r.loadOutings(ctx, tx, &record); err != nil {
			return err
		}

		log := record.StartOuting(now)
		log.AttendanceID = record.ID

		if _, err = tx.NewInsert().Model(log).Returning("id").Exec(ctx, &log.ID); err != nil {
			return web.NewRequestError(errors.Wrap(err, "creating outing log"), http.StatusInternalServerError)
		}

		if err = r.saveRecord(ctx, tx, record, claims.UserId, now); err != nil {
			return err
		}

		response, err = toResponse(record)
		return err
	})
	if err != nil {
		return AttendanceResponse{}, err
	}

	return response, nil
}

// OutingReturn closes the latest open outing window and puts the student
// back to PRESENT.
func (r Repository) OutingReturn(ctx context.Context, studentID int) (AttendanceResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return AttendanceResponse{}, err
	}

	var response AttendanceResponse
	now := r.now()

	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		record, err := r.getOrCreateToday(ctx, tx, studentID, now)
		if err != nil {
			return err
		}
		if err = r.loadOutings(ctx, tx, &record); err != nil {
			return err
		}

		log, err := record.ReturnOuting(now)
		if errors.Is(err, entity.ErrNoActiveOuting) {
			return web.NewRequestError(err, http.StatusBadRequest)
		}
		if err != nil {
			return err
		}

		_, err = tx.NewUpdate().
			Table("outing_log").
			Where("id = ?", log.ID).
			Set("end_time = ?", log.EndTime).
			Exec(ctx)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "closing outing log"), http.StatusInternalServerError)
		}

		if err = r.saveRecord(ctx, tx, record, claims.UserId, now); err != nil {
			return err
		}

		response, err = toResponse(record)
		return err
	})
	if err != nil {
		return AttendanceResponse{}, err
	}

	return response, nil
}

// ExcuseLate files a late notice for today. Idempotent; the flag only
// suppresses the lateness penalty, status stays untouched.
func (r Repository) ExcuseLate(ctx context.Context, studentID int) (AttendanceResponse, error) {
	return r.setExcuse(ctx, studentID, func(record *entity.Attendance) {
		record.ExcuseLate = true
	})
}

// ExcuseAbsent files an absence notice for today. Idempotent; the sweep
// skips excused records.
func (r Repository) ExcuseAbsent(ctx context.Context, studentID int) (AttendanceResponse, error) {
	return r.setExcuse(ctx, studentID, func(record *entity.Attendance) {
		record.ExcuseAbsent = true
	})
}

func (r Repository) setExcuse(ctx context.Context, studentID int, apply func(*entity.Attendance)) (AttendanceResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return AttendanceResponse{}, err
	}

	var response AttendanceResponse
	now := r.now()

	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		record, err := r.getOrCreateToday(ctx, tx, studentID, now)
		if err != nil {
			return err
		}

		apply(&record)

		if err = r.saveRecord(ctx, tx, record, claims.UserId, now); err != nil {
			return err
		}

		response, err = toResponse(record)
		return err
	})
	if err != nil {
		return AttendanceResponse{}, err
	}

	return response, nil
}

// GetTodayList returns the response view of every record dated today.
func (r Repository) GetTodayList(ctx context.Context) ([]AttendanceResponse, error) {
	if _, err := r.CheckClaims(ctx); err != nil {
		return nil, err
	}

	var records []entity.Attendance

	err := r.NewSelect().
		Model(&records).
		Where("date = ? AND deleted_at IS NULL", r.now().Format(entity.DateLayout)).
		Order("student_id ASC").
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting today attendance"), http.StatusInternalServerError)
	}

	list := make([]AttendanceResponse, 0, len(records))
	for _, record := range records {
		response, err := toResponse(record)
		if err != nil {
			return nil, err
		}
		list = append(list, response)
	}

	return list, nil
}

// GetListByDate returns the records of one day, used by the excel export.
func (r Repository) GetListByDate(ctx context.Context, day time.Time) ([]entity.Attendance, error) {
	var records []entity.Attendance

	err := r.NewSelect().
		Model(&records).
		Where("date = ? AND deleted_at IS NULL", day.Format(entity.DateLayout)).
		Order("student_id ASC").
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting attendance by date"), http.StatusInternalServerError)
	}

	return records, nil
}

// MarkAbsentees finalizes every unmarked record of the given day as ABSENT
// with an ABSENT penalty. Records with an arrival, an excuse notice or an
// earlier ABSENT mark are skipped, so the sweep is safe to re-run.
func (r Repository) MarkAbsentees(ctx context.Context, day time.Time) (int, error) {
	marked := 0
	now := r.now()

	err := r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		var records []entity.Attendance

		err := tx.NewSelect().
			Model(&records).
			Where("date = ? AND deleted_at IS NULL", day.Format(entity.DateLayout)).
			For("UPDATE").
			Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "selecting sweep candidates"), http.StatusInternalServerError)
		}

		for i := range records {
			if !records[i].MarkAbsent() {
				continue
			}

			_, err = tx.NewUpdate().
				Table("attendance").
				Where("id = ? AND status != ?", records[i].ID, entity.StatusAbsent).
				Set("status = ?", entity.StatusAbsent).
				Set("updated_at = ?", now).
				Exec(ctx)
			if err != nil {
				return web.NewRequestError(errors.Wrap(err, "marking record absent"), http.StatusInternalServerError)
			}

			if err = r.appendPenalty(ctx, tx, records[i].ID, entity.PenaltyAbsent, now); err != nil {
				return err
			}

			marked++
		}

		return nil
	})
	if err != nil {
		return 0, err
	}

	return marked, nil
}
