package team

import (
	"context"

	"github.com/anoixa/content-hub/database/models"
	"gorm.io/gorm"
)

// Repository 团队成员仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的团队成员仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithContext 返回绑定上下文的仓库
func (r *Repository) WithContext(ctx context.Context) *Repository {
	return &Repository{db: r.db.WithContext(ctx)}
}

// Create 创建团队成员
func (r *Repository) Create(member *models.TeamMember) error {
	return r.db.Create(member).Error
}

// GetByID 根据 ID 获取团队成员
func (r *Repository) GetByID(id uint) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := r.db.First(&member, id).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

// List 按展示顺序获取全部成员
func (r *Repository) List() ([]*models.TeamMember, error) {
	var items []*models.TeamMember
	if err := r.db.Order("position asc, id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update 更新团队成员
func (r *Repository) Update(member *models.TeamMember) error {
	return r.db.Save(member).Error
}

// Delete 删除团队成员
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&models.TeamMember{}, id).Error
}
