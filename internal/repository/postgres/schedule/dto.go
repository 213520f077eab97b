package schedule

import (
	"gaon/backend/internal/entity"

	"github.com/Azure/go-autorest/autorest/date"
)

type GenerateRequest struct {
	VersionID int    `json:"version_id" form:"version_id"`
	From      string `json:"from" form:"from"`
	To        string `json:"to" form:"to"`
}

type ListFilter struct {
	MemberID int    `json:"member_id" form:"member_id"`
	From     string `json:"from" form:"from"`
	To       string `json:"to" form:"to"`
}

type InstanceResponse struct {
	ID        int                   `json:"id"`
	StudentID int                   `json:"student_id"`
	Date      *date.Date            `json:"date"`
	StartTime string                `json:"start_time"`
	EndTime   string                `json:"end_time"`
	Subject   *string               `json:"subject"`
	Memo      *string               `json:"memo"`
	Status    entity.ScheduleStatus `json:"status"`
	VersionID int                   `json:"source_version_id"`
	ItemID    *int                  `json:"source_item_id"`
}
