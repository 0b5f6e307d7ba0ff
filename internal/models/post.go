package models

import (
	"time"

	"gorm.io/gorm"
)

type Post struct {
	ID        uint           `gorm:"primaryKey" json:"-"`
	PublicID  string         `gorm:"uniqueIndex;not null" json:"id"`
	UserID    uint           `gorm:"not null;index" json:"-"`
	Body      string         `gorm:"not null" json:"body"`
	Anonymous bool           `gorm:"not null;default:false" json:"anonymous"`
	Flagged   bool           `gorm:"not null;default:false" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

type Comment struct {
	ID        uint           `gorm:"primaryKey" json:"-"`
	PostID    uint           `gorm:"not null;index" json:"-"`
	UserID    uint           `gorm:"not null" json:"-"`
	Body      string         `gorm:"not null" json:"body"`
	Flagged   bool           `gorm:"not null;default:false" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	DeletedAt gorm.DeletedAt `json:"-"`
}
