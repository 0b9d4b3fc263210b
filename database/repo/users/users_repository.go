package users

import (
	"context"
	"errors"

	"github.com/anoixa/content-hub/database/models"
	"gorm.io/gorm"
)

// Repository 用户仓库
type Repository struct {
	db *gorm.DB
}

// NewRepository 创建新的用户仓库
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithContext 返回绑定上下文的仓库
func (r *Repository) WithContext(ctx context.Context) *Repository {
	return &Repository{db: r.db.WithContext(ctx)}
}

// Create 创建用户
func (r *Repository) Create(user *models.User) error {
	return r.db.Create(user).Error
}

// GetByUsername 根据用户名获取用户
func (r *Repository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, "username = ?", username).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID 根据 ID 获取用户
func (r *Repository) GetByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// EnsureUser 用户不存在时创建，已存在则保持不变
func (r *Repository) EnsureUser(username, hashedPassword string) error {
	var user models.User
	err := r.db.First(&user, "username = ?", username).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	return r.db.Create(&models.User{
		Username: username,
		Password: hashedPassword,
	}).Error
}

// UpdatePassword 更新用户密码哈希
func (r *Repository) UpdatePassword(id uint, hashedPassword string) error {
	return r.db.Model(&models.User{}).Where("id = ?", id).Update("password", hashedPassword).Error
}
