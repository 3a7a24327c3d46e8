package model

import "time"

type Category struct {
	Id        uint      `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`

	SubCategories []SubCategory `gorm:"foreignKey:CategoryId;constraint:OnDelete:CASCADE"`
}

func (Category) TableName() string {
	return "categories"
}

type SubCategory struct {
	Id         uint      `gorm:"primaryKey;autoIncrement"`
	Name       string    `gorm:"type:varchar(255);not null;uniqueIndex:idx_sub_categories_category_name"`
	CategoryId uint      `gorm:"not null;index;uniqueIndex:idx_sub_categories_category_name"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`
}

func (SubCategory) TableName() string {
	return "sub_categories"
}
