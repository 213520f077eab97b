package entity

import (
	"github.com/uptrace/bun"
)

type Member struct {
	bun.BaseModel `bun:"table:members"`

	BasicEntity
	Login    *string `json:"login"     bun:"login"`
	Password *string `json:"password"  bun:"password"`
	Role     *string `json:"role"      bun:"role"`
	FullName *string `json:"full_name" bun:"full_name"`
	Phone    *string `json:"phone"     bun:"phone"`
}
