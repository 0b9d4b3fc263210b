package partners

import (
	"context"

	"github.com/anoixa/content-hub/database/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository 合作伙伴仓库
// 伙伴同时携带旧的单项目引用和新的多对多关联，
// 保存前的修正由 partners 服务完成，仓库只负责持久化
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的合作伙伴仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithContext 返回绑定上下文的仓库
func (r *Repository) WithContext(ctx context.Context) *Repository {
	return &Repository{db: r.db.WithContext(ctx)}
}

// Create 创建合作伙伴，多对多关联一并写入
func (r *Repository) Create(partner *models.Partner) error {
	return r.db.Create(partner).Error
}

// GetByID 根据 ID 获取伙伴及其两套项目关联
func (r *Repository) GetByID(id uint) (*models.Partner, error) {
	var partner models.Partner
	if err := r.db.Preload("Projects").Preload("LegacyProject").First(&partner, id).Error; err != nil {
		return nil, err
	}
	return &partner, nil
}

// List 获取全部伙伴
func (r *Repository) List() ([]*models.Partner, error) {
	var items []*models.Partner
	if err := r.db.Preload("Projects").Order("name asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update 更新伙伴并整体替换多对多关联
func (r *Repository) Update(partner *models.Partner) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var current models.Partner
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&current, partner.ID).Error; err != nil {
			return err
		}
		if err := tx.Model(partner).Association("Projects").Replace(partner.Projects); err != nil {
			return err
		}
		return tx.Omit("Projects").Save(partner).Error
	})
}

// Delete 删除伙伴并清理多对多关联
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		partner := models.Partner{Model: gorm.Model{ID: id}}
		if err := tx.Model(&partner).Association("Projects").Clear(); err != nil {
			return err
		}
		return tx.Delete(&partner).Error
	})
}
