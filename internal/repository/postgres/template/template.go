package template

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
)

var ErrDuplicateTemplate = errors.New("member already has a schedule template")

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

// Create registers the member's weekly template. One template per student;
// a second create conflicts. submit=true files the template as PENDING
// right away, otherwise it stays a DRAFT.
func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "MemberID"); err != nil {
		return CreateResponse{}, err
	}

	exists, err := r.NewSelect().
		Table("members").
		Where("id = ? AND deleted_at IS NULL", *request.MemberID).
		Exists(ctx)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "checking member"), http.StatusInternalServerError)
	}
	if !exists {
		return CreateResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}

	duplicated, err := r.NewSelect().
		Table("schedule_template").
		Where("member_id = ? AND deleted_at IS NULL", *request.MemberID).
		Exists(ctx)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "checking existing template"), http.StatusInternalServerError)
	}
	if duplicated {
		return CreateResponse{}, web.NewRequestError(ErrDuplicateTemplate, http.StatusConflict)
	}

	status := entity.TemplateDraft
	if request.Submit != nil && *request.Submit {
		status = entity.TemplatePending
	}

	detail := entity.ScheduleTemplate{
		MemberID:    *request.MemberID,
		Name:        request.Name,
		Description: request.Description,
		Status:      status,
	}
	detail.CreatedAt = time.Now()
	detail.CreatedBy = &claims.UserId

	if _, err = r.NewInsert().Model(&detail).Returning("id").Exec(ctx, &detail.ID); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating schedule template"), http.StatusBadRequest)
	}

	return CreateResponse{
		ID:          detail.ID,
		MemberID:    detail.MemberID,
		Name:        detail.Name,
		Description: detail.Description,
		Status:      detail.Status,
	}, nil
}

func (r Repository) GetById(ctx context.Context, id int) (DetailResponse, error) {
	var detail entity.ScheduleTemplate

	err := r.NewSelect().
		Model(&detail).
		Where("id = ? AND deleted_at IS NULL", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return DetailResponse{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return DetailResponse{}, web.NewRequestError(errors.Wrap(err, "selecting schedule template"), http.StatusInternalServerError)
	}

	return toDetail(detail), nil
}

func (r Repository) GetList(ctx context.Context) ([]DetailResponse, error) {
	if _, err := r.CheckClaims(ctx); err != nil {
		return nil, err
	}

	var templates []entity.ScheduleTemplate

	err := r.NewSelect().
		Model(&templates).
		Where("deleted_at IS NULL").
		Order("id ASC").
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting schedule templates"), http.StatusInternalServerError)
	}

	list := make([]DetailResponse, 0, len(templates))
	for _, t := range templates {
		list = append(list, toDetail(t))
	}

	return list, nil
}

func toDetail(t entity.ScheduleTemplate) DetailResponse {
	return DetailResponse{
		ID:                       t.ID,
		MemberID:                 t.MemberID,
		Name:                     t.Name,
		Description:              t.Description,
		Status:                   t.Status,
		CurrentApprovedVersionID: t.CurrentApprovedVersionID,
	}
}
