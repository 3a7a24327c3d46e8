package dto

import "time"

type UserResponse struct {
	Id        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     *string   `json:"email,omitempty"`
	FullName  string    `json:"full_name"`
	Phone     *string   `json:"phone,omitempty"`
	IsActive  bool      `json:"is_active"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// UserWithPromptsResponse decorates a user row with its prompt count
// for the admin user listing.
type UserWithPromptsResponse struct {
	Id          uint      `json:"id"`
	Username    string    `json:"username"`
	FullName    string    `json:"full_name"`
	Phone       *string   `json:"phone,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	PromptCount int64     `json:"prompt_count"`
}
