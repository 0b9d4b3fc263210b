package models

import "gorm.io/gorm"

type Project struct {
	gorm.Model
	Title       string `gorm:"type:varchar(150);not null;index"`
	Summary     string `gorm:"type:varchar(500)"`
	Body        string `gorm:"type:text"`
	Published   bool   `gorm:"default:false;not null"`

	Partners []*Partner `gorm:"many2many:partner_projects;"`
}
