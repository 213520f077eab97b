package version

import (
	"context"
	"database/sql"
	"net/http"
	"time"

	"gaon/backend/foundation/web"
	"gaon/backend/internal/entity"
	"gaon/backend/internal/pkg/repository/postgresql"
	"gaon/backend/internal/repository/postgres"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

var ErrInvalidItemRange = errors.New("item end_time must be after start_time")

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// Create opens a new version of a template. submit=true files it as
// PENDING, gated on the template not already having a PENDING version;
// drafts are always allowed. The version number is taken from the request
// or auto numbered from the template's highest version.
func (r Repository) Create(ctx context.Context, request CreateRequest) (DetailResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return DetailResponse{}, err
	}

	if err := r.ValidateStruct(&request, "TemplateID"); err != nil {
		return DetailResponse{}, err
	}

	items, err := buildItems(request.Items)
	if err != nil {
		return DetailResponse{}, err
	}

	var response DetailResponse
	now := time.Now()

	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		exists, err := tx.NewSelect().
			Table("schedule_template").
			Where("id = ? AND deleted_at IS NULL", *request.TemplateID).
			For("UPDATE").
			Exists(ctx)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "checking template"), http.StatusInternalServerError)
		}
		if !exists {
			return web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
		}

		submit := request.Submit != nil && *request.Submit
		pending := false
		if submit {
			pending, err = tx.NewSelect().
				Table("schedule_template_version").
				Where("template_id = ? AND status = ? AND deleted_at IS NULL", *request.TemplateID, entity.TemplatePending).
				Exists(ctx)
			if err != nil {
				return web.NewRequestError(errors.Wrap(err, "checking pending version"), http.StatusInternalServerError)
			}
		}

		versionNo, err := r.resolveVersionNo(ctx, tx, *request.TemplateID, request.VersionNo)
		if err != nil {
			return err
		}

		detail, err := entity.NewVersion(*request.TemplateID, versionNo, request.EffectiveFrom, submit, pending)
		if err != nil {
			return web.NewRequestError(err, http.StatusConflict)
		}
		detail.CreatedAt = now
		detail.CreatedBy = &claims.UserId

		if _, err = tx.NewInsert().Model(&detail).Returning("id").Exec(ctx, &detail.ID); err != nil {
			return web.NewRequestError(errors.Wrap(err, "creating template version"), http.StatusBadRequest)
		}

		for i := range items {
			items[i].VersionID = detail.ID
			items[i].CreatedAt = now
			items[i].CreatedBy = &claims.UserId
		}
		if len(items) > 0 {
			if _, err = tx.NewInsert().Model(&items).Exec(ctx); err != nil {
				return web.NewRequestError(errors.Wrap(err, "creating template items"), http.StatusBadRequest)
			}
		}

		response = toDetail(detail, items)
		return nil
	})
	if err != nil {
		return DetailResponse{}, err
	}

	return response, nil
}

func (r Repository) resolveVersionNo(ctx context.Context, tx bun.Tx, templateID int, requested *int) (int, error) {
	if requested != nil {
		return *requested, nil
	}

	var max *int
	err := tx.NewSelect().
		Table("schedule_template_version").
		ColumnExpr("MAX(version_no)").
		Where("template_id = ? AND deleted_at IS NULL", templateID).
		Scan(ctx, &max)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return 0, web.NewRequestError(errors.Wrap(err, "resolving version number"), http.StatusInternalServerError)
	}
	if max == nil {
		return 1, nil
	}

	return *max + 1, nil
}

// buildItems validates and converts the requested weekly blocks. Every
// block needs a known uppercase weekday name and end_time strictly after
// start_time.
func buildItems(requests []ItemRequest) ([]entity.ScheduleTemplateItem, error) {
	items := make([]entity.ScheduleTemplateItem, 0, len(requests))

	for _, req := range requests {
		if !entity.ValidDayOfWeek(req.DayOfWeek) {
			return nil, &web.Error{
				Err:    errors.Errorf("unknown day_of_week %q", req.DayOfWeek),
				Status: http.StatusBadRequest,
				Fields: map[string]string{"day_of_week": "must be an uppercase weekday name, e.g. MONDAY"},
			}
		}

		start, err := parseClock(req.StartTime)
		if err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "parsing item start_time"), http.StatusBadRequest)
		}
		end, err := parseClock(req.EndTime)
		if err != nil {
			return nil, web.NewRequestError(errors.Wrap(err, "parsing item end_time"), http.StatusBadRequest)
		}
		if !end.After(start) {
			return nil, web.NewRequestError(ErrInvalidItemRange, http.StatusBadRequest)
		}

		blockType := entity.ScheduleBlockType(req.Type)
		if blockType == "" {
			blockType = entity.BlockOther
		}

		items = append(items, entity.ScheduleTemplateItem{
			DayOfWeek:   req.DayOfWeek,
			Type:        blockType,
			StartTime:   start.Format(entity.TimeLayout),
			EndTime:     end.Format(entity.TimeLayout),
			Subject:     req.Subject,
			Description: req.Description,
		})
	}

	return items, nil
}

func parseClock(value string) (time.Time, error) {
	for _, layout := range []string{entity.TimeLayout, "15:04"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.Errorf("invalid time %q", value)
}

// Approve moves a PENDING version to APPROVED and points the owning
// template at it. A concurrent approve or reject of the same version loses
// the row lock race and fails the PENDING check.
func (r Repository) Approve(ctx context.Context, versionID int) (DetailResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return DetailResponse{}, err
	}

	var response DetailResponse
	now := time.Now()

	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		detail, err := r.lockVersion(ctx, tx, versionID)
		if err != nil {
			return err
		}

		if err = detail.Approve(); err != nil {
			return web.NewRequestError(err, http.StatusBadRequest)
		}
		detail.ReviewedBy = &claims.UserId

		_, err = tx.NewUpdate().
			Table("schedule_template_version").
			Where("id = ?", detail.ID).
			Set("status = ?", detail.Status).
			Set("reject_reason = NULL").
			Set("reviewed_by = ?", claims.UserId).
			Set("updated_at = ?", now).
			Set("updated_by = ?", claims.UserId).
			Exec(ctx)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "updating version"), http.StatusInternalServerError)
		}

		// Later approvals always supersede the template's current pointer.
		_, err = tx.NewUpdate().
			Table("schedule_template").
			Where("id = ?", detail.TemplateID).
			Set("current_approved_version_id = ?", detail.ID).
			Set("status = ?", entity.TemplateApproved).
			Set("approved_by = ?", claims.UserId).
			Set("approved_at = ?", now).
			Set("updated_at = ?", now).
			Set("updated_by = ?", claims.UserId).
			Exec(ctx)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "updating template"), http.StatusInternalServerError)
		}

		items, err := r.loadItems(ctx, tx, detail.ID)
		if err != nil {
			return err
		}

		response = toDetail(detail, items)
		return nil
	})
	if err != nil {
		return DetailResponse{}, err
	}

	return response, nil
}

// Reject moves a PENDING version to REJECTED with a reason. The template's
// current approved pointer stays untouched.
func (r Repository) Reject(ctx context.Context, versionID int, request RejectRequest) (DetailResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return DetailResponse{}, err
	}

	var response DetailResponse
	now := time.Now()

	err = r.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		detail, err := r.lockVersion(ctx, tx, versionID)
		if err != nil {
			return err
		}

		if err = detail.Reject(request.RejectReason); err != nil {
			return web.NewRequestError(err, http.StatusBadRequest)
		}
		detail.ReviewedBy = &claims.UserId

		_, err = tx.NewUpdate().
			Table("schedule_template_version").
			Where("id = ?", detail.ID).
			Set("status = ?", detail.Status).
			Set("reject_reason = ?", detail.RejectReason).
			Set("reviewed_by = ?", claims.UserId).
			Set("updated_at = ?", now).
			Set("updated_by = ?", claims.UserId).
			Exec(ctx)
		if err != nil {
			return web.NewRequestError(errors.Wrap(err, "updating version"), http.StatusInternalServerError)
		}

		items, err := r.loadItems(ctx, tx, detail.ID)
		if err != nil {
			return err
		}

		response = toDetail(detail, items)
		return nil
	})
	if err != nil {
		return DetailResponse{}, err
	}

	return response, nil
}

func (r Repository) lockVersion(ctx context.Context, tx bun.Tx, versionID int) (entity.ScheduleTemplateVersion, error) {
	var detail entity.ScheduleTemplateVersion

	err := tx.NewSelect().
		Model(&detail).
		Where("id = ? AND deleted_at IS NULL", versionID).
		For("UPDATE").
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.ScheduleTemplateVersion{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.ScheduleTemplateVersion{}, web.NewRequestError(errors.Wrap(err, "selecting version"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) loadItems(ctx context.Context, db bun.IDB, versionID int) ([]entity.ScheduleTemplateItem, error) {
	var items []entity.ScheduleTemplateItem

	err := db.NewSelect().
		Model(&items).
		Where("version_id = ? AND deleted_at IS NULL", versionID).
		Order("day_of_week ASC", "start_time ASC").
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting template items"), http.StatusInternalServerError)
	}

	return items, nil
}

func (r Repository) GetDetailById(ctx context.Context, versionID int) (DetailResponse, error) {
	var detail entity.ScheduleTemplateVersion

	err := r.NewSelect().
		Model(&detail).
		Where("id = ? AND deleted_at IS NULL", versionID).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return DetailResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return DetailResponse{}, web.NewRequestError(errors.Wrap(err, "selecting version"), http.StatusInternalServerError)
	}

	items, err := r.loadItems(ctx, r.DB, detail.ID)
	if err != nil {
		return DetailResponse{}, err
	}

	return toDetail(detail, items), nil
}

func (r Repository) GetListByTemplate(ctx context.Context, templateID int) ([]DetailResponse, error) {
	var versions []entity.ScheduleTemplateVersion

	err := r.NewSelect().
		Model(&versions).
		Where("template_id = ? AND deleted_at IS NULL", templateID).
		Order("version_no DESC").
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting versions"), http.StatusInternalServerError)
	}

	list := make([]DetailResponse, 0, len(versions))
	for _, v := range versions {
		list = append(list, toDetail(v, nil))
	}

	return list, nil
}

func toDetail(v entity.ScheduleTemplateVersion, items []entity.ScheduleTemplateItem) DetailResponse {
	response := DetailResponse{
		ID:            v.ID,
		TemplateID:    v.TemplateID,
		VersionNo:     v.VersionNo,
		Status:        v.Status,
		EffectiveFrom: v.EffectiveFrom,
		RejectReason:  v.RejectReason,
	}

	for _, item := range items {
		response.Items = append(response.Items, ItemResponse{
			ID:          item.ID,
			DayOfWeek:   item.DayOfWeek,
			Type:        string(item.Type),
			StartTime:   item.StartTime,
			EndTime:     item.EndTime,
			Subject:     item.Subject,
			Description: item.Description,
		})
	}

	return response
}
