package galleries

import (
	"context"

	"github.com/anoixa/content-hub/database/models"
	"gorm.io/gorm"
)

// Repository 图库仓库 - 封装所有图库相关的数据库操作
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的图库仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithContext 返回绑定上下文的仓库
func (r *Repository) WithContext(ctx context.Context) *Repository {
	return &Repository{db: r.db.WithContext(ctx)}
}

// Create 创建图库
func (r *Repository) Create(gallery *models.Gallery) error {
	return r.db.Create(gallery).Error
}

// GetByID 根据 ID 获取图库
func (r *Repository) GetByID(id uint) (*models.Gallery, error) {
	var gallery models.Gallery
	if err := r.db.First(&gallery, id).Error; err != nil {
		return nil, err
	}
	return &gallery, nil
}

// List 分页获取图库列表
func (r *Repository) List(page, pageSize int, publishedOnly bool) ([]*models.Gallery, int64, error) {
	var items []*models.Gallery
	var total int64

	db := r.db.Model(&models.Gallery{})
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

// Update 更新图库
func (r *Repository) Update(gallery *models.Gallery) error {
	return r.db.Save(gallery).Error
}

// Delete 删除图库
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&models.Gallery{}, id).Error
}
