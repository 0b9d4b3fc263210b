package models

import "gorm.io/gorm"

// Partner 合作伙伴
// 历史上一个伙伴只挂在一个项目下（LegacyProjectID），新模型允许多项目关联；
// 两个关系由 partners 服务的 Reconcile 保持一致，字段本身不做自动修正
type Partner struct {
	gorm.Model
	Name    string `gorm:"type:varchar(150);not null;index"`
	Website string `gorm:"type:varchar(300)"`

	LegacyProjectID *uint
	LegacyProject   *Project `gorm:"foreignKey:LegacyProjectID"`

	Projects []*Project `gorm:"many2many:partner_projects;"`
}
