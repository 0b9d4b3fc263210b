package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/anoixa/content-hub/config"
	"github.com/anoixa/content-hub/database/models"
	"github.com/anoixa/content-hub/database/repo/assets"
	"github.com/anoixa/content-hub/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupServices(t *testing.T) (*UploadService, *DeleteService, *assets.Repository, string) {
	t.Helper()

	// 每个测试使用独立的共享缓存内存库，避免连接池拿到不同的内存数据库
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Asset{}, &models.AssetOwnerLock{}))

	dir := t.TempDir()
	factory, err := storage.NewFactory(&config.Config{
		StorageType:      "local",
		StorageLocalPath: dir,
	})
	require.NoError(t, err)

	repo := assets.NewRepository(db)
	policy := testPolicy()
	return NewUploadService(repo, factory, policy, 10, 100),
		NewDeleteService(repo, factory),
		repo, dir
}

func contentUpload(name, mime, body string) *Upload {
	return &Upload{
		OriginalName: name,
		DeclaredMime: mime,
		ByteSize:     int64(len(body)),
		Content:      strings.NewReader(body),
	}
}

// TestUploadService_Attach 单个上传写文件并落库
func TestUploadService_Attach(t *testing.T) {
	svc, _, repo, dir := setupServices(t)
	ctx := context.Background()

	asset, err := svc.Attach(ctx, models.OwnerTypeGallery, 1, contentUpload("photo.jpg", "image/jpeg", "jpeg-bytes"))
	require.NoError(t, err)

	assert.NotZero(t, asset.ID)
	assert.True(t, asset.IsPrimary, "first asset becomes primary")
	assert.Equal(t, models.AssetClassImage, asset.Class)
	assert.Equal(t, "photo.jpg", asset.OriginalName)
	assert.NotEqual(t, "photo.jpg", asset.StorageName)
	assert.True(t, storage.IsValidStorageName(asset.StorageName))

	// 文件确实写入了存储目录
	data, err := os.ReadFile(filepath.Join(dir, asset.StorageName))
	require.NoError(t, err)
	assert.Equal(t, "jpeg-bytes", string(data))

	stored, err := repo.GetByID(asset.ID)
	require.NoError(t, err)
	assert.Equal(t, asset.StorageName, stored.StorageName)
}

// TestUploadService_Attach_RejectedLeavesNothing 校验失败不写文件不落库
func TestUploadService_Attach_RejectedLeavesNothing(t *testing.T) {
	svc, _, repo, dir := setupServices(t)
	ctx := context.Background()

	_, err := svc.Attach(ctx, models.OwnerTypeGallery, 1, contentUpload("doc.pdf", "application/pdf", "pdf-bytes"))
	assert.ErrorIs(t, err, ErrUnsupportedType)

	count, err := repo.CountByOwner(models.OwnerTypeGallery, 1)
	require.NoError(t, err)
	assert.Zero(t, count)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// TestUploadService_AttachBatch_PartialSuccess 批次中单个失败不影响其余文件
func TestUploadService_AttachBatch_PartialSuccess(t *testing.T) {
	svc, _, repo, _ := setupServices(t)
	ctx := context.Background()

	uploads := []*Upload{
		contentUpload("a.jpg", "image/jpeg", "a"),
		contentUpload("b.png", "image/png", "b"),
		contentUpload("c.pdf", "application/pdf", "c"), // 不支持的类型
		contentUpload("d.gif", "image/gif", "d"),
		contentUpload("e.webp", "image/webp", "e"),
	}

	results, err := svc.AttachBatch(ctx, models.OwnerTypeProject, 7, uploads)
	require.NoError(t, err)
	require.Len(t, results, 5)

	attached := 0
	for i, r := range results {
		if i == 2 {
			assert.Nil(t, r.Asset)
			assert.NotEmpty(t, r.Error)
			continue
		}
		require.NotNil(t, r.Asset, "upload %d should succeed", i)
		assert.Empty(t, r.Error)
		assert.NotEmpty(t, r.Link)
		attached++
	}
	assert.Equal(t, 4, attached)

	count, err := repo.CountByOwner(models.OwnerTypeProject, 7)
	require.NoError(t, err)
	assert.EqualValues(t, 4, count)
}

// TestUploadService_AttachBatch_TooLarge 超出批量上限整体拒绝
func TestUploadService_AttachBatch_TooLarge(t *testing.T) {
	svc, _, repo, _ := setupServices(t)
	ctx := context.Background()

	uploads := make([]*Upload, 11)
	for i := range uploads {
		uploads[i] = contentUpload(fmt.Sprintf("f%d.jpg", i), "image/jpeg", "x")
	}

	_, err := svc.AttachBatch(ctx, models.OwnerTypeGallery, 1, uploads)
	assert.ErrorIs(t, err, ErrBatchTooLarge)

	count, err := repo.CountByOwner(models.OwnerTypeGallery, 1)
	require.NoError(t, err)
	assert.Zero(t, count)
}

// TestUploadService_OwnerCapacity 持有者容量在写入前检查
func TestUploadService_OwnerCapacity(t *testing.T) {
	svc, _, repo, dir := setupServices(t)
	// 收紧容量便于测试
	svc.maxPerOwner = 3
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Attach(ctx, models.OwnerTypeTeamMember, 2, contentUpload(fmt.Sprintf("p%d.jpg", i), "image/jpeg", "x"))
		require.NoError(t, err)
	}

	_, err := svc.Attach(ctx, models.OwnerTypeTeamMember, 2, contentUpload("over.jpg", "image/jpeg", "x"))
	assert.ErrorIs(t, err, ErrTooManyAssets)

	// 批量同样受限：3 个现有 + 2 个新的超过 3
	_, err = svc.AttachBatch(ctx, models.OwnerTypeTeamMember, 2, []*Upload{
		contentUpload("x.jpg", "image/jpeg", "x"),
		contentUpload("y.jpg", "image/jpeg", "y"),
	})
	assert.ErrorIs(t, err, ErrTooManyAssets)

	count, err := repo.CountByOwner(models.OwnerTypeTeamMember, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, count)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3, "rejected uploads must not leave files behind")
}

// TestDeleteService_Detach 删除记录后文件也被清理
func TestDeleteService_Detach(t *testing.T) {
	svc, del, repo, dir := setupServices(t)
	ctx := context.Background()

	first, err := svc.Attach(ctx, models.OwnerTypeGallery, 5, contentUpload("one.jpg", "image/jpeg", "1"))
	require.NoError(t, err)
	second, err := svc.Attach(ctx, models.OwnerTypeGallery, 5, contentUpload("two.jpg", "image/jpeg", "2"))
	require.NoError(t, err)

	require.NoError(t, del.Detach(ctx, first.ID))

	// 主资产被删后剩余资产接任
	primary, err := repo.GetPrimary(models.OwnerTypeGallery, 5)
	require.NoError(t, err)
	assert.Equal(t, second.ID, primary.ID)

	_, err = os.Stat(filepath.Join(dir, first.StorageName))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, second.StorageName))
	assert.NoError(t, err)
}

// TestDeleteService_DetachOwner 级联删除清空记录和文件
func TestDeleteService_DetachOwner(t *testing.T) {
	svc, del, repo, dir := setupServices(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.Attach(ctx, models.OwnerTypePartner, 9, contentUpload(fmt.Sprintf("p%d.png", i), "image/png", "x"))
		require.NoError(t, err)
	}
	// 其他持有者的资产不受影响
	other, err := svc.Attach(ctx, models.OwnerTypeGallery, 1, contentUpload("keep.jpg", "image/jpeg", "k"))
	require.NoError(t, err)

	require.NoError(t, del.DetachOwner(ctx, models.OwnerTypePartner, 9))

	count, err := repo.CountByOwner(models.OwnerTypePartner, 9)
	require.NoError(t, err)
	assert.Zero(t, count)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, other.StorageName, entries[0].Name())
}
