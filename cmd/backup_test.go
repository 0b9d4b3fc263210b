package cmd

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/anoixa/content-hub/database/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupBackupDB 创建带完整结构的测试数据库，suffix 区分同一测试里的多个库
func setupBackupDB(t *testing.T, suffix string) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s-%s?mode=memory&cache=shared", t.Name(), suffix)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Page{},
		&models.Project{},
		&models.Partner{},
		&models.TeamMember{},
		&models.Gallery{},
		&models.Asset{},
		&models.AssetOwnerLock{},
	))
	return db
}

// TestBackupRestoreRoundTrip 备份后恢复到空库，内容完整回来
func TestBackupRestoreRoundTrip(t *testing.T) {
	source := setupBackupDB(t, "source")

	require.NoError(t, source.Create(&models.User{Username: "admin", Password: "hash"}).Error)
	require.NoError(t, source.Create(&models.Page{Slug: "about", Title: "About", Published: true}).Error)
	require.NoError(t, source.Create(&models.Gallery{Title: "Openings"}).Error)
	require.NoError(t, source.Create(&models.Asset{
		StorageName:  "abc123.jpg",
		StoragePath:  "abc123.jpg",
		OriginalName: "photo.jpg",
		DeclaredMime: "image/jpeg",
		Class:        models.AssetClassImage,
		ByteSize:     42,
		IsPrimary:    true,
		OwnerType:    models.OwnerTypeGallery,
		OwnerID:      1,
	}).Error)

	proj := &models.Project{Title: "Bridge"}
	require.NoError(t, source.Create(proj).Error)
	require.NoError(t, source.Create(&models.Partner{
		Name:     "Acme",
		Projects: []*models.Project{proj},
	}).Error)

	archive := filepath.Join(t.TempDir(), "backup.tar.gz")
	manifest, err := backupDatabase(source, nil, archive, "sqlite")
	require.NoError(t, err)

	assert.Equal(t, "1.0", manifest.Version)
	assert.EqualValues(t, 1, manifest.RecordCount["users"])
	assert.EqualValues(t, 1, manifest.RecordCount["pages"])
	assert.EqualValues(t, 1, manifest.RecordCount["assets"])
	assert.EqualValues(t, 1, manifest.RecordCount["partner_projects"])

	target := setupBackupDB(t, "target")
	require.NoError(t, restoreArchive(target, archive, false))

	var page models.Page
	require.NoError(t, target.First(&page, "slug = ?", "about").Error)
	assert.Equal(t, "About", page.Title)

	var asset models.Asset
	require.NoError(t, target.First(&asset, "storage_name = ?", "abc123.jpg").Error)
	assert.True(t, asset.IsPrimary)
	assert.Equal(t, models.OwnerTypeGallery, asset.OwnerType)

	var joinCount int64
	require.NoError(t, target.Table("partner_projects").Count(&joinCount).Error)
	assert.EqualValues(t, 1, joinCount)
}

// TestRestore_SkipsExistingRows 不带 replace 时主键冲突的行保持原样
func TestRestore_SkipsExistingRows(t *testing.T) {
	source := setupBackupDB(t, "source")
	require.NoError(t, source.Create(&models.Page{Slug: "home", Title: "Old title"}).Error)

	archive := filepath.Join(t.TempDir(), "backup.tar.gz")
	_, err := backupDatabase(source, []string{"pages"}, archive, "sqlite")
	require.NoError(t, err)

	// 目标库中同一主键已有新内容
	target := setupBackupDB(t, "target")
	require.NoError(t, target.Create(&models.Page{Model: gorm.Model{ID: 1}, Slug: "home", Title: "New title"}).Error)

	require.NoError(t, restoreArchive(target, archive, false))

	var page models.Page
	require.NoError(t, target.First(&page, 1).Error)
	assert.Equal(t, "New title", page.Title)
}

// TestRestore_ReplaceEmptiesTableFirst replace 模式下恢复结果与归档一致
func TestRestore_ReplaceEmptiesTableFirst(t *testing.T) {
	source := setupBackupDB(t, "source")
	require.NoError(t, source.Create(&models.Page{Slug: "home", Title: "Archived"}).Error)

	archive := filepath.Join(t.TempDir(), "backup.tar.gz")
	_, err := backupDatabase(source, []string{"pages"}, archive, "sqlite")
	require.NoError(t, err)

	target := setupBackupDB(t, "target")
	require.NoError(t, target.Create(&models.Page{Slug: "stale", Title: "Stale"}).Error)

	require.NoError(t, restoreArchive(target, archive, true))

	var count int64
	require.NoError(t, target.Model(&models.Page{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var page models.Page
	require.NoError(t, target.First(&page, "slug = ?", "home").Error)
	assert.Equal(t, "Archived", page.Title)
}
