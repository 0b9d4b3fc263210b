package models

import "gorm.io/gorm"

type Gallery struct {
	gorm.Model
	Title       string `gorm:"type:varchar(150);not null;index"`
	Description string `gorm:"type:varchar(500)"`
	Published   bool   `gorm:"default:false;not null"`
}
