package assets

import (
	"context"
	"errors"

	"github.com/anoixa/content-hub/database/models"
	"gorm.io/gorm"
)

// ErrNotOwned 资产不属于目标内容实体
var ErrNotOwned = errors.New("assets: asset does not belong to the target owner")

// Repository 资产仓库 - 封装所有资产相关的数据库操作
// 主资产不变量（每个集合最多一个 primary）的全部状态迁移集中在 primary.go，
// 其他代码不得直接改写 is_primary 字段
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的资产仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithContext 返回带上下文的仓库
func (r *Repository) WithContext(ctx context.Context) *Repository {
	return &Repository{db: r.db.WithContext(ctx)}
}

// GetByID 通过 ID 获取资产
func (r *Repository) GetByID(id uint) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.First(&asset, id).Error
	return &asset, err
}

// GetByStorageName 通过存储名称获取资产
func (r *Repository) GetByStorageName(storageName string) (*models.Asset, error) {
	var asset models.Asset
	err := r.db.First(&asset, "storage_name = ?", storageName).Error
	return &asset, err
}

// ListByOwner 获取某个内容实体的资产集合
// 展示顺序：sort_position 升序，平位时主资产优先，再按 ID
func (r *Repository) ListByOwner(ownerType string, ownerID uint) ([]*models.Asset, error) {
	var list []*models.Asset
	err := r.db.
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Order("sort_position asc, is_primary desc, id asc").
		Find(&list).Error
	return list, err
}

// CountByOwner 统计某个内容实体的资产数量
func (r *Repository) CountByOwner(ownerType string, ownerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Asset{}).
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		Count(&count).Error
	return count, err
}
