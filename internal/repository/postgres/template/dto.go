package template

import (
	"gaon/backend/internal/entity"

	"github.com/uptrace/bun"
)

type CreateRequest struct {
	MemberID    *int    `json:"member_id" form:"member_id"`
	Name        *string `json:"name" form:"name"`
	Description *string `json:"description" form:"description"`
	Submit      *bool   `json:"submit" form:"submit"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:schedule_template"`

	ID          int                   `json:"id" bun:"-"`
	MemberID    int                   `json:"member_id" bun:"member_id"`
	Name        *string               `json:"name" bun:"name"`
	Description *string               `json:"description" bun:"description"`
	Status      entity.TemplateStatus `json:"status" bun:"status"`
}

type DetailResponse struct {
	ID                       int                   `json:"id"`
	MemberID                 int                   `json:"member_id"`
	Name                     *string               `json:"name"`
	Description              *string               `json:"description"`
	Status                   entity.TemplateStatus `json:"status"`
	CurrentApprovedVersionID *int                  `json:"current_approved_version_id"`
}
