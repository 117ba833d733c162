package model

import (
	"time"

	"github.com/google/uuid"
)

// User - users 테이블 레코드. RefreshToken은 마지막 로그인에서 발급된 값만 유지된다.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	RefreshToken *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserResponse is the public profile; it never carries the password hash or
// tokens.
type UserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Public() UserResponse {
	return UserResponse{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
	}
}
