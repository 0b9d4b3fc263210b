package projects

import (
	"context"

	"github.com/anoixa/content-hub/database/models"
	"gorm.io/gorm"
)

// Repository 项目仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的项目仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithContext 返回绑定上下文的仓库
func (r *Repository) WithContext(ctx context.Context) *Repository {
	return &Repository{db: r.db.WithContext(ctx)}
}

// Create 创建项目
func (r *Repository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// GetByID 根据 ID 获取项目及其关联伙伴
func (r *Repository) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	if err := r.db.Preload("Partners").First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// List 分页获取项目列表
func (r *Repository) List(page, pageSize int, publishedOnly bool) ([]*models.Project, int64, error) {
	var items []*models.Project
	var total int64

	db := r.db.Model(&models.Project{})
	if publishedOnly {
		db = db.Where("published = ?", true)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := db.Order("created_at desc").Offset(offset).Limit(pageSize).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update 更新项目
func (r *Repository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete 删除项目并清理多对多关联
func (r *Repository) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		project := models.Project{Model: gorm.Model{ID: id}}
		if err := tx.Model(&project).Association("Partners").Clear(); err != nil {
			return err
		}
		return tx.Delete(&project).Error
	})
}
