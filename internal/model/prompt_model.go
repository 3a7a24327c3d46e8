package model

import "time"

type Prompt struct {
	Id            uint      `gorm:"primaryKey;autoIncrement"`
	UserId        uint      `gorm:"not null;index"`
	CategoryId    uint      `gorm:"not null;index"`
	SubCategoryId uint      `gorm:"not null;index"`
	Prompt        string    `gorm:"type:text;not null"`
	Response      *string   `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index"`
}

func (Prompt) TableName() string {
	return "prompts"
}
