package auth

import (
	"context"

	"gaon/backend/internal/entity"
)

type Member interface {
	GetByLogin(ctx context.Context, login string) (entity.Member, error)
}
