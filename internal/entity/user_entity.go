package entity

import "time"

type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

type User struct {
	Id           uint
	Username     string
	Email        *string
	FullName     string
	Phone        *string
	PasswordHash string
	IsActive     bool
	IsAdmin      bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (u *User) Role() UserRole {
	if u.IsAdmin {
		return UserRoleAdmin
	}
	return UserRoleUser
}
