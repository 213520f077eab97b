package entity

import "time"

// Layouts used for DATE and TIME columns across the schema.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04:05"
)

// BasicEntity is the audit value embedded in every table backed entity.
type BasicEntity struct {
	ID        int        `json:"id" bun:"id,pk,autoincrement"`
	CreatedAt time.Time  `json:"-" bun:"created_at,nullzero"`
	CreatedBy *int       `json:"-" bun:"created_by"`
	UpdatedAt *time.Time `json:"-" bun:"updated_at"`
	UpdatedBy *int       `json:"-" bun:"updated_by"`
	DeletedAt *time.Time `json:"-" bun:"deleted_at"`
	DeletedBy *int       `json:"-" bun:"deleted_by"`
}
