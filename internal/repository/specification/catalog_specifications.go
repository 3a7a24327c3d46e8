package specification

import "gorm.io/gorm"

// ByName filters by exact name
type ByName struct {
	Name string
}

func (s ByName) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("name = ?", s.Name)
}

// ByCategoryID scopes subcategories (or prompts) to a parent category
type ByCategoryID struct {
	CategoryID uint
}

func (s ByCategoryID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category_id = ?", s.CategoryID)
}
