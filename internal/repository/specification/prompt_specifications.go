package specification

import "gorm.io/gorm"

// OwnedBy scopes rows to their owning user
type OwnedBy struct {
	UserID uint
}

func (s OwnedBy) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}
