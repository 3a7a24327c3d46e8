package dto

import "time"

type CreatePromptRequest struct {
	CategoryId    uint   `json:"category_id" validate:"required"`
	SubCategoryId uint   `json:"sub_category_id" validate:"required"`
	Prompt        string `json:"prompt" validate:"required"`
}

type PromptResponse struct {
	Id            uint      `json:"id"`
	UserId        uint      `json:"user_id"`
	CategoryId    uint      `json:"category_id"`
	SubCategoryId uint      `json:"sub_category_id"`
	Prompt        string    `json:"prompt"`
	Response      *string   `json:"response"`
	CreatedAt     time.Time `json:"created_at"`
}

// PromptWithDetailsResponse is the denormalized read shape: the prompt row
// plus display names resolved from its user/category/subcategory references.
type PromptWithDetailsResponse struct {
	Id              uint      `json:"id"`
	UserId          uint      `json:"user_id"`
	CategoryId      uint      `json:"category_id"`
	SubCategoryId   uint      `json:"sub_category_id"`
	Prompt          string    `json:"prompt"`
	Response        *string   `json:"response"`
	CreatedAt       time.Time `json:"created_at"`
	UserName        string    `json:"user_name"`
	CategoryName    string    `json:"category_name"`
	SubCategoryName string    `json:"sub_category_name"`
}

type GenerateLessonRequest struct {
	Topic       string `json:"topic" validate:"required"`
	Prompt      string `json:"prompt" validate:"required"`
	Category    string `json:"category" validate:"required"`
	SubCategory string `json:"sub_category" validate:"required"`
}

type GenerateLessonResponse struct {
	Lesson  string `json:"lesson"`
	Topic   string `json:"topic"`
	Success bool   `json:"success"`
}

// LessonTaskMessage is the payload published to the in-process task bus when
// a prompt is created; the consumer fills the prompt's response from it.
type LessonTaskMessage struct {
	PromptId        uint   `json:"prompt_id"`
	Topic           string `json:"topic"`
	Prompt          string `json:"prompt"`
	CategoryName    string `json:"category_name"`
	SubCategoryName string `json:"sub_category_name"`
}
