package template

import (
	"context"

	"gaon/backend/internal/repository/postgres/template"
)

type Template interface {
	Create(ctx context.Context, request template.CreateRequest) (template.CreateResponse, error)
	GetById(ctx context.Context, id int) (template.DetailResponse, error)
	GetList(ctx context.Context) ([]template.DetailResponse, error)
}
