package schedule

import (
	"context"

	"gaon/backend/internal/entity"
	"gaon/backend/internal/repository/postgres/schedule"
)

type Schedule interface {
	Generate(ctx context.Context, request schedule.GenerateRequest) ([]schedule.InstanceResponse, error)
	GetList(ctx context.Context, filter schedule.ListFilter) ([]schedule.InstanceResponse, error)
}

type Member interface {
	GetById(ctx context.Context, id int) (entity.Member, error)
}
