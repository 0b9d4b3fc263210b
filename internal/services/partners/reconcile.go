package partners

import (
	"log"

	"github.com/anoixa/content-hub/database/models"
	"gorm.io/gorm"
)

// Reconcile 在持久化前修正伙伴的新旧两套项目关联
// 旧模型只有单个项目引用（LegacyProjectID），新模型是多对多；
// 两者必须保持一致：
//   - 多关联非空而旧引用为空时，旧引用取多关联的第一个成员
//   - 旧引用已设置但不在多关联中时，把它补进多关联并记警告日志
//
// 函数幂等，连续调用两次不产生新的变化；返回是否发生修正
func Reconcile(partner *models.Partner) bool {
	if partner == nil {
		return false
	}

	if partner.LegacyProjectID == nil {
		// 取多关联中第一个有效成员，跳过稀疏切片里的空元素
		for _, project := range partner.Projects {
			if project == nil {
				continue
			}
			id := project.ID
			partner.LegacyProjectID = &id
			partner.LegacyProject = project
			return true
		}
		return false
	}

	for _, project := range partner.Projects {
		if project != nil && project.ID == *partner.LegacyProjectID {
			return false
		}
	}

	// 旧引用指向的项目被多关联排除，以旧引用为准补齐
	log.Printf("Partner %d: legacy project %d missing from project set, re-adding", partner.ID, *partner.LegacyProjectID)
	legacy := partner.LegacyProject
	if legacy == nil {
		legacy = &models.Project{Model: gorm.Model{ID: *partner.LegacyProjectID}}
	}
	partner.Projects = append(partner.Projects, legacy)
	return true
}
