package entity

import (
	"github.com/uptrace/bun"
)

type ScheduleStatus string

const (
	ScheduleNormal   ScheduleStatus = "NORMAL"
	ScheduleChanged  ScheduleStatus = "CHANGED"
	ScheduleCanceled ScheduleStatus = "CANCELED"
	ScheduleAbsent   ScheduleStatus = "ABSENT"
	ScheduleLate     ScheduleStatus = "LATE"
)

// Schedule is a concrete dated row materialized from an approved template
// version. Rows for a student and date range are owned by the version that
// generated them; regeneration replaces them wholesale.
type Schedule struct {
	bun.BaseModel `bun:"table:schedule"`

	BasicEntity
	StudentID int            `json:"student_id" bun:"student_id"`
	Date      string         `json:"date" bun:"date"`
	StartTime string         `json:"start_time" bun:"start_time"`
	EndTime   string         `json:"end_time" bun:"end_time"`
	Subject   *string        `json:"subject" bun:"subject"`
	Memo      *string        `json:"memo" bun:"memo"`
	Status    ScheduleStatus `json:"status" bun:"status"`
	VersionID int            `json:"source_version_id" bun:"source_version_id"`
	ItemID    *int           `json:"source_item_id" bun:"source_item_id"`
}
