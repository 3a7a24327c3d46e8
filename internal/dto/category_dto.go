package dto

import "time"

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,min=1,max=255"`
}

type CreateSubCategoryRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=255"`
	CategoryId uint   `json:"category_id" validate:"required"`
}

type CategoryResponse struct {
	Id        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

type SubCategoryResponse struct {
	Id         uint      `json:"id"`
	Name       string    `json:"name"`
	CategoryId uint      `json:"category_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type CategoryWithSubCategoriesResponse struct {
	Id            uint                  `json:"id"`
	Name          string                `json:"name"`
	CreatedAt     time.Time             `json:"created_at"`
	SubCategories []SubCategoryResponse `json:"sub_categories"`
}
