package specification

import "gorm.io/gorm"

// ByUsername filters by the unique username
type ByUsername struct {
	Username string
}

func (s ByUsername) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("username = ?", s.Username)
}

// ByEmail filters by the unique (nullable) email
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

// AdminsOnly filters users carrying the admin flag
type AdminsOnly struct{}

func (s AdminsOnly) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("is_admin = ?", true)
}
