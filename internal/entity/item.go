package entity

import (
	"github.com/uptrace/bun"
)

type ScheduleBlockType string

const (
	BlockStudy    ScheduleBlockType = "STUDY"
	BlockAcademy  ScheduleBlockType = "ACADEMY"
	BlockPersonal ScheduleBlockType = "PERSONAL"
	BlockOther    ScheduleBlockType = "OTHER"
)

var weekdayNames = map[string]bool{
	"MONDAY":    true,
	"TUESDAY":   true,
	"WEDNESDAY": true,
	"THURSDAY":  true,
	"FRIDAY":    true,
	"SATURDAY":  true,
	"SUNDAY":    true,
}

// ValidDayOfWeek reports whether value is one of the uppercase weekday
// names WeekdayOf produces. Anything else would never match a calendar
// date during generation.
func ValidDayOfWeek(value string) bool {
	return weekdayNames[value]
}

// ScheduleTemplateItem is one weekday plus time range block inside a
// version. end_time > start_time is enforced on create.
type ScheduleTemplateItem struct {
	bun.BaseModel `bun:"table:schedule_template_item"`

	BasicEntity
	VersionID   int               `json:"version_id" bun:"version_id"`
	DayOfWeek   string            `json:"day_of_week" bun:"day_of_week"`
	Type        ScheduleBlockType `json:"type" bun:"type"`
	StartTime   string            `json:"start_time" bun:"start_time"`
	EndTime     string            `json:"end_time" bun:"end_time"`
	Subject     *string           `json:"subject" bun:"subject"`
	Description *string           `json:"description" bun:"description"`
}
