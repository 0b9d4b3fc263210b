package models

import "gorm.io/gorm"

type TeamMember struct {
	gorm.Model
	Name     string `gorm:"type:varchar(150);not null"`
	Role     string `gorm:"type:varchar(150)"`
	Bio      string `gorm:"type:text"`
	Email    string `gorm:"type:varchar(200)"`
	Position int    `gorm:"default:0;not null"`
}
