package member

import (
	"github.com/uptrace/bun"
)

type SignInRequest struct {
	Login    string `json:"login" form:"login"`
	Password string `json:"password" form:"password"`
}

type AuthClaims struct {
	ID   int
	Role string
	Type string
}

type RefreshTokenRequest struct {
	AccessToken  string `json:"access_token" form:"access_token"`
	RefreshToken string `json:"refresh_token" form:"refresh_token"`
}

type CreateRequest struct {
	Login    *string `json:"login" form:"login"`
	Password *string `json:"password" form:"password"`
	Role     *string `json:"role" form:"role"`
	FullName *string `json:"full_name" form:"full_name"`
	Phone    *string `json:"phone" form:"phone"`
}

type CreateResponse struct {
	bun.BaseModel `bun:"table:members"`

	ID       int     `json:"id" bun:"-"`
	Login    *string `json:"login" bun:"login"`
	Role     *string `json:"role" bun:"role"`
	FullName *string `json:"full_name" bun:"full_name"`
}

type GetListResponse struct {
	ID       int     `json:"id"`
	Login    *string `json:"login"`
	Role     *string `json:"role"`
	FullName *string `json:"full_name"`
	Phone    *string `json:"phone"`
}
