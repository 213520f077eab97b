package member

import (
	"context"

	"gaon/backend/internal/entity"
	"gaon/backend/internal/repository/postgres/member"
)

type Member interface {
	Create(ctx context.Context, request member.CreateRequest) (member.CreateResponse, error)
	GetById(ctx context.Context, id int) (entity.Member, error)
	GetList(ctx context.Context) ([]member.GetListResponse, error)
	Delete(ctx context.Context, id int) error
}
