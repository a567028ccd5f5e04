package api

import (
	"time"

	"github.com/itchan-dev/kindboard/shared/domain"
)

type CreateUserRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=32,alphanum"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
	Authority string `json:"authority,omitempty" validate:"omitempty,oneof=ADMIN USER"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

type UserResponse struct {
	Id        domain.UserId `json:"user_id"`
	Username  string        `json:"username"`
	Authority string        `json:"authority"`
	CreatedAt time.Time     `json:"created_at"`
}

func NewUserResponse(u domain.User) UserResponse {
	return UserResponse{Id: u.Id, Username: u.Username, Authority: string(u.Authority), CreatedAt: u.CreatedAt}
}
