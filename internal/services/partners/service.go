package partners

import (
	"context"
	"fmt"

	"github.com/anoixa/content-hub/database/models"
	partnersrepo "github.com/anoixa/content-hub/database/repo/partners"
)

// Service 合作伙伴服务
// 所有创建和更新都先经过 Reconcile 再落库，保证两套关联不会互相矛盾
type Service struct {
	repo *partnersrepo.Repository
}

// NewService 创建合作伙伴服务
func NewService(repo *partnersrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Create 修正关联后创建伙伴
func (s *Service) Create(ctx context.Context, partner *models.Partner) error {
	Reconcile(partner)
	if err := s.repo.WithContext(ctx).Create(partner); err != nil {
		return fmt.Errorf("failed to create partner: %w", err)
	}
	return nil
}

// Update 修正关联后更新伙伴
func (s *Service) Update(ctx context.Context, partner *models.Partner) error {
	Reconcile(partner)
	if err := s.repo.WithContext(ctx).Update(partner); err != nil {
		return fmt.Errorf("failed to update partner: %w", err)
	}
	return nil
}

// Get 获取伙伴及其关联
func (s *Service) Get(ctx context.Context, id uint) (*models.Partner, error) {
	return s.repo.WithContext(ctx).GetByID(id)
}

// List 获取全部伙伴
func (s *Service) List(ctx context.Context) ([]*models.Partner, error) {
	return s.repo.WithContext(ctx).List()
}

// Delete 删除伙伴
func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.repo.WithContext(ctx).Delete(id)
}
