package models

import "gorm.io/gorm"

// RoleAdmin 管理接口要求的角色
const RoleAdmin = "admin"

type User struct {
	gorm.Model
	Username string `gorm:"uniqueIndex:idx_username;type:varchar(100);not null"`
	Password string `gorm:"not null" json:"-"`
	Role     string `gorm:"type:varchar(32);default:'admin';not null"`
}
