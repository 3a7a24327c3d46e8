package entity

import "time"

type Category struct {
	Id        uint
	Name      string
	CreatedAt time.Time
}

// SubCategory name is unique within its parent category, not globally.
type SubCategory struct {
	Id         uint
	Name       string
	CategoryId uint
	CreatedAt  time.Time
}
