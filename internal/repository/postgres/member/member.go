package member

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
	"golang.org/x/crypto/bcrypt"
)

type Repository struct {
	*postgresql.Database
}

func NewRepository(database *postgresql.Database) *Repository {
	return &Repository{Database: database}
}

func (r Repository) GetByLogin(ctx context.Context, login string) (entity.Member, error) {
	var detail entity.Member

	err := r.NewSelect().
		Model(&detail).
		Where("login = ? AND deleted_at IS NULL", login).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Member{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.Member{}, web.NewRequestError(errors.Wrap(err, "selecting member by login"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) GetById(ctx context.Context, id int) (entity.Member, error) {
	var detail entity.Member

	err := r.NewSelect().
		Model(&detail).
		Where("id = ? AND deleted_at IS NULL", id).
		Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return entity.Member{}, web.NewRequestError(postgres.ErrNotFound, http.StatusNotFound)
	}
	if err != nil {
		return entity.Member{}, web.NewRequestError(errors.Wrap(err, "selecting member"), http.StatusInternalServerError)
	}

	return detail, nil
}

func (r Repository) Create(ctx context.Context, request CreateRequest) (CreateResponse, error) {
	claims, err := r.CheckClaims(ctx)
	if err != nil {
		return CreateResponse{}, err
	}

	if err := r.ValidateStruct(&request, "Login", "Password", "Role", "FullName"); err != nil {
		return CreateResponse{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(*request.Password), bcrypt.DefaultCost)
	if err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "hashing password"), http.StatusInternalServerError)
	}

	member := entity.Member{
		Login:    request.Login,
		Password: stringPtr(string(hash)),
		Role:     request.Role,
		FullName: request.FullName,
		Phone:    request.Phone,
	}
	member.CreatedAt = time.Now()
	member.CreatedBy = &claims.UserId

	if _, err = r.NewInsert().Model(&member).Returning("id").Exec(ctx, &member.ID); err != nil {
		return CreateResponse{}, web.NewRequestError(errors.Wrap(err, "creating member"), http.StatusBadRequest)
	}

	return CreateResponse{
		ID:       member.ID,
		Login:    member.Login,
		Role:     member.Role,
		FullName: member.FullName,
	}, nil
}

func (r Repository) GetList(ctx context.Context) ([]GetListResponse, error) {
	if _, err := r.CheckClaims(ctx); err != nil {
		return nil, err
	}

	var members []entity.Member

	err := r.NewSelect().
		Model(&members).
		Where("deleted_at IS NULL").
		Order("id ASC").
		Scan(ctx)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, web.NewRequestError(errors.Wrap(err, "selecting members"), http.StatusInternalServerError)
	}

	list := make([]GetListResponse, 0, len(members))
	for _, m := range members {
		list = append(list, GetListResponse{
			ID:       m.ID,
			Login:    m.Login,
			Role:     m.Role,
			FullName: m.FullName,
			Phone:    m.Phone,
		})
	}

	return list, nil
}

func (r Repository) Delete(ctx context.Context, id int) error {
	return r.DeleteRow(ctx, "members", id)
}

func stringPtr(s string) *string { return &s }
