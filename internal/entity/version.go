package entity

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
)

var (
	ErrNotPending           = errors.New("only a PENDING version can be reviewed")
	ErrBlankRejectReason    = errors.New("reject reason must not be blank")
	ErrNotApproved          = errors.New("schedules can only be generated from an APPROVED version")
	ErrPendingVersionExists = errors.New("a PENDING version already exists for this template")
)

// ScheduleTemplateVersion is one submitted revision of a template's weekly
// blocks. DRAFT -> PENDING -> {APPROVED, REJECTED}; the review states are
// terminal for the version, the template just accumulates further versions.
type ScheduleTemplateVersion struct {
	bun.BaseModel `bun:"table:schedule_template_version"`

	BasicEntity
	TemplateID    int            `json:"template_id" bun:"template_id"`
	VersionNo     int            `json:"version_no" bun:"version_no"`
	Status        TemplateStatus `json:"status" bun:"status"`
	EffectiveFrom *string        `json:"effective_from" bun:"effective_from"`
	RejectReason  *string        `json:"reject_reason" bun:"reject_reason"`
	ReviewedBy    *int           `json:"reviewed_by" bun:"reviewed_by"`
}

// NewVersion builds a fresh version row. Submitting files it as PENDING,
// allowed only while no other version of the template is pending; without
// submit the version stays DRAFT regardless.
func NewVersion(templateID, versionNo int, effectiveFrom *string, submit, pendingExists bool) (ScheduleTemplateVersion, error) {
	if submit && pendingExists {
		return ScheduleTemplateVersion{}, ErrPendingVersionExists
	}

	status := TemplateDraft
	if submit {
		status = TemplatePending
	}

	return ScheduleTemplateVersion{
		TemplateID:    templateID,
		VersionNo:     versionNo,
		Status:        status,
		EffectiveFrom: effectiveFrom,
	}, nil
}

// CanGenerate reports whether schedule rows may be materialized from this
// version.
func (v ScheduleTemplateVersion) CanGenerate() error {
	if v.Status != TemplateApproved {
		return ErrNotApproved
	}
	return nil
}

// Approve moves a PENDING version to APPROVED and clears any reject reason
// left from an earlier review round.
func (v *ScheduleTemplateVersion) Approve() error {
	if v.Status != TemplatePending {
		return ErrNotPending
	}

	v.Status = TemplateApproved
	v.RejectReason = nil

	return nil
}

// Reject moves a PENDING version to REJECTED with a mandatory reason.
func (v *ScheduleTemplateVersion) Reject(reason string) error {
	if strings.TrimSpace(reason) == "" {
		return ErrBlankRejectReason
	}
	if v.Status != TemplatePending {
		return ErrNotPending
	}

	v.Status = TemplateRejected
	v.RejectReason = &reason

	return nil
}
