package version

import (
	"context"

	"gaon/backend/internal/repository/postgres/version"
)

type Version interface {
	Create(ctx context.Context, request version.CreateRequest) (version.DetailResponse, error)
	Approve(ctx context.Context, versionID int) (version.DetailResponse, error)
	Reject(ctx context.Context, versionID int, request version.RejectRequest) (version.DetailResponse, error)
	GetDetailById(ctx context.Context, versionID int) (version.DetailResponse, error)
	GetListByTemplate(ctx context.Context, templateID int) ([]version.DetailResponse, error)
}
