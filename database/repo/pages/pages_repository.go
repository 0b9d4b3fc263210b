package pages

import (
	"context"

	"github.com/anoixa/content-hub/database/models"
	"gorm.io/gorm"
)

// Repository 静态页面仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的页面仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithContext 返回绑定上下文的仓库
func (r *Repository) WithContext(ctx context.Context) *Repository {
	return &Repository{db: r.db.WithContext(ctx)}
}

// Create 创建页面
func (r *Repository) Create(page *models.Page) error {
	return r.db.Create(page).Error
}

// GetBySlug 根据 slug 获取页面
func (r *Repository) GetBySlug(slug string) (*models.Page, error) {
	var page models.Page
	if err := r.db.First(&page, "slug = ?", slug).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

// GetByID 根据 ID 获取页面
func (r *Repository) GetByID(id uint) (*models.Page, error) {
	var page models.Page
	if err := r.db.First(&page, id).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

// List 获取全部页面
func (r *Repository) List(publishedOnly bool) ([]*models.Page, error) {
	var items []*models.Page
	db := r.db.Model(&models.Page{})
	if publishedOnly {
		db = db.Where("published = ?", true)
	}
	if err := db.Order("slug asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Update 更新页面
func (r *Repository) Update(page *models.Page) error {
	return r.db.Save(page).Error
}

// Delete 删除页面
func (r *Repository) Delete(id uint) error {
	return r.db.Delete(&models.Page{}, id).Error
}
