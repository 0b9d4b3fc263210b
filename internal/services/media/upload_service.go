package media

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/anoixa/content-hub/database/models"
	"github.com/anoixa/content-hub/database/repo/assets"
	"github.com/anoixa/content-hub/storage"
	"github.com/anoixa/content-hub/utils"
)

// AttachResult 单个上传的处理结果
type AttachResult struct {
	Asset    *models.Asset
	FileName string
	Link     string
	Error    string
}

// UploadService 媒体上传服务
// 写入顺序固定为先存文件再落库：崩溃最多留下孤儿文件，
// 不会出现指向缺失文件的数据库记录
type UploadService struct {
	repo           *assets.Repository
	storageFactory *storage.Factory
	policy         Policy
	maxBatchFiles  int
	maxPerOwner    int
}

// NewUploadService 创建上传服务
func NewUploadService(repo *assets.Repository, storageFactory *storage.Factory, policy Policy, maxBatchFiles, maxPerOwner int) *UploadService {
	return &UploadService{
		repo:           repo,
		storageFactory: storageFactory,
		policy:         policy,
		maxBatchFiles:  maxBatchFiles,
		maxPerOwner:    maxPerOwner,
	}
}

// Attach 校验并存储单个上传，附加到指定内容实体
func (s *UploadService) Attach(ctx context.Context, ownerType string, ownerID uint, upload *Upload) (*models.Asset, error) {
	if err := s.checkOwnerCapacity(ctx, ownerType, ownerID, 1); err != nil {
		return nil, err
	}
	return s.attachOne(ctx, ownerType, ownerID, upload)
}

// AttachBatch 批量附加上传
// 批量大小和持有者容量在写入任何文件前检查；单个文件的失败不回滚
// 同批已成功的文件，结果逐项返回由调用方呈现
func (s *UploadService) AttachBatch(ctx context.Context, ownerType string, ownerID uint, uploads []*Upload) ([]*AttachResult, error) {
	if len(uploads) > s.maxBatchFiles {
		return nil, fmt.Errorf("%w: %d files, limit is %d", ErrBatchTooLarge, len(uploads), s.maxBatchFiles)
	}

	if err := s.checkOwnerCapacity(ctx, ownerType, ownerID, len(uploads)); err != nil {
		return nil, err
	}

	results := make([]*AttachResult, 0, len(uploads))
	for _, upload := range uploads {
		result := &AttachResult{FileName: upload.OriginalName}

		asset, err := s.attachOne(ctx, ownerType, ownerID, upload)
		if err != nil {
			// 路径越界说明存在缺陷或攻击，中止整个批次
			if errors.Is(err, storage.ErrPathEscape) {
				return results, err
			}
			result.Error = err.Error()
		} else {
			result.Asset = asset
			result.Link = utils.BuildPublicLink(asset.StorageName)
		}

		results = append(results, result)
	}

	return results, nil
}

// attachOne 校验、存储并落库单个上传
func (s *UploadService) attachOne(ctx context.Context, ownerType string, ownerID uint, upload *Upload) (*models.Asset, error) {
	class, err := s.policy.Validate(upload)
	if err != nil {
		return nil, err
	}

	provider := s.storageFactory.GetDefault()

	storageName := AllocateStorageName(upload.OriginalName)
	err = provider.SaveWithContext(ctx, storageName, upload.Content, false)
	if errors.Is(err, storage.ErrAlreadyExists) {
		// token 冲突概率可忽略，但写入失败时重新分配一次
		storageName = AllocateStorageName(upload.OriginalName)
		err = provider.SaveWithContext(ctx, storageName, upload.Content, false)
	}
	if err != nil {
		return nil, err
	}

	asset := &models.Asset{
		StorageName:  storageName,
		StoragePath:  storageName,
		OriginalName: upload.OriginalName,
		DeclaredMime: upload.DeclaredMime,
		Class:        class,
		ByteSize:     upload.ByteSize,
		OwnerType:    ownerType,
		OwnerID:      ownerID,
	}

	if err := s.repo.WithContext(ctx).Attach(asset); err != nil {
		// 落库失败时清理已写入的文件，避免孤儿
		if delErr := provider.DeleteWithContext(ctx, storageName); delErr != nil {
			log.Printf("Failed to clean up stored file %s after db error: %v", utils.SanitizeLogMessage(storageName), delErr)
		}
		return nil, fmt.Errorf("failed to save asset metadata: %w", err)
	}

	return asset, nil
}

// checkOwnerCapacity 检查持有者资产总数是否超限
func (s *UploadService) checkOwnerCapacity(ctx context.Context, ownerType string, ownerID uint, incoming int) error {
	existing, err := s.repo.WithContext(ctx).CountByOwner(ownerType, ownerID)
	if err != nil {
		return fmt.Errorf("failed to count existing assets: %w", err)
	}
	if existing+int64(incoming) > int64(s.maxPerOwner) {
		return fmt.Errorf("%w: %d existing + %d new exceeds limit %d", ErrTooManyAssets, existing, incoming, s.maxPerOwner)
	}
	return nil
}
