package media

import (
	"context"
	"fmt"
	"log"

	"github.com/anoixa/content-hub/database/repo/assets"
	"github.com/anoixa/content-hub/storage"
	"github.com/anoixa/content-hub/utils"
)

// DeleteService 媒体删除服务
// 删除顺序固定为先删数据库记录再删文件，与上传顺序互为镜像
type DeleteService struct {
	repo           *assets.Repository
	storageFactory *storage.Factory
}

// NewDeleteService 创建删除服务
func NewDeleteService(repo *assets.Repository, storageFactory *storage.Factory) *DeleteService {
	return &DeleteService{
		repo:           repo,
		storageFactory: storageFactory,
	}
}

// Detach 移除单个资产
// 被移除的是主资产时，仓库层会自动重新选主
func (s *DeleteService) Detach(ctx context.Context, assetID uint) error {
	removed, err := s.repo.WithContext(ctx).Remove(assetID)
	if err != nil {
		return fmt.Errorf("failed to remove asset record: %w", err)
	}

	s.deleteStoredFile(ctx, removed.StorageName)
	return nil
}

// DetachOwner 级联移除某个内容实体的全部资产
func (s *DeleteService) DetachOwner(ctx context.Context, ownerType string, ownerID uint) error {
	removed, err := s.repo.WithContext(ctx).RemoveAllByOwner(ownerType, ownerID)
	if err != nil {
		return fmt.Errorf("failed to remove asset records: %w", err)
	}

	for _, asset := range removed {
		s.deleteStoredFile(ctx, asset.StorageName)
	}
	return nil
}

// deleteStoredFile 删除存储中的文件
// 记录已删，文件删除失败只会留下可被 clean 命令回收的孤儿文件，记日志即可
func (s *DeleteService) deleteStoredFile(ctx context.Context, storageName string) {
	provider := s.storageFactory.GetDefault()
	if err := provider.DeleteWithContext(ctx, storageName); err != nil {
		log.Printf("Failed to delete stored file %s: %v", utils.SanitizeLogMessage(storageName), err)
	}
}
