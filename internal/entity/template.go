package entity

import (
	"time"

	"github.com/uptrace/bun"
)

type TemplateStatus string

const (
	TemplateDraft    TemplateStatus = "DRAFT"
	TemplatePending  TemplateStatus = "PENDING"
	TemplateApproved TemplateStatus = "APPROVED"
	TemplateRejected TemplateStatus = "REJECTED"
)

// ScheduleTemplate is the logical weekly schedule definition, one per
// student. Status mirrors the latest approved version and
// CurrentApprovedVersionID points at it.
type ScheduleTemplate struct {
	bun.BaseModel `bun:"table:schedule_template"`

	BasicEntity
	MemberID                 int            `json:"member_id" bun:"member_id"`
	Name                     *string        `json:"name" bun:"name"`
	Description              *string        `json:"description" bun:"description"`
	Status                   TemplateStatus `json:"status" bun:"status"`
	ApprovedBy               *int           `json:"approved_by" bun:"approved_by"`
	ApprovedAt               *time.Time     `json:"approved_at" bun:"approved_at"`
	CurrentApprovedVersionID *int           `json:"current_approved_version_id" bun:"current_approved_version_id"`
}
