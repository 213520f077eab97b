package version

import (
	"gaon/backend/internal/entity"
)

type ItemRequest struct {
	DayOfWeek   string  `json:"day_of_week" form:"day_of_week"`
	Type        string  `json:"type" form:"type"`
	StartTime   string  `json:"start_time" form:"start_time"`
	EndTime     string  `json:"end_time" form:"end_time"`
	Subject     *string `json:"subject" form:"subject"`
	Description *string `json:"description" form:"description"`
}

type CreateRequest struct {
	TemplateID    *int          `json:"template_id" form:"template_id"`
	VersionNo     *int          `json:"version_no" form:"version_no"`
	EffectiveFrom *string       `json:"effective_from" form:"effective_from"`
	Submit        *bool         `json:"submit" form:"submit"`
	Items         []ItemRequest `json:"items" form:"items"`
}

type RejectRequest struct {
	RejectReason string `json:"reject_reason" form:"reject_reason"`
}

type ItemResponse struct {
	ID          int     `json:"id"`
	DayOfWeek   string  `json:"day_of_week"`
	Type        string  `json:"type"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Subject     *string `json:"subject"`
	Description *string `json:"description"`
}

type DetailResponse struct {
	ID            int                   `json:"id"`
	TemplateID    int                   `json:"template_id"`
	VersionNo     int                   `json:"version_no"`
	Status        entity.TemplateStatus `json:"status"`
	EffectiveFrom *string               `json:"effective_from"`
	RejectReason  *string               `json:"reject_reason"`
	Items         []ItemResponse        `json:"items,omitempty"`
}
