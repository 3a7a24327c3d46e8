package entity

import "time"

// Prompt holds a user's request and the eventually filled generated lesson.
// Response stays nil until the background fulfillment writes it back.
type Prompt struct {
	Id            uint
	UserId        uint
	CategoryId    uint
	SubCategoryId uint
	Prompt        string
	Response      *string
	CreatedAt     time.Time
}

func (p *Prompt) IsAnswered() bool {
	return p.Response != nil
}
