package models

import "gorm.io/gorm"

type Page struct {
	gorm.Model
	Slug      string `gorm:"uniqueIndex:idx_page_slug;type:varchar(150);not null"`
	Title     string `gorm:"type:varchar(200);not null"`
	Body      string `gorm:"type:text"`
	Published bool   `gorm:"default:false;not null"`
}
