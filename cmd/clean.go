package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/anoixa/content-hub/config"
	"github.com/anoixa/content-hub/database/dbcore"
	"github.com/anoixa/content-hub/database/models"
	"github.com/anoixa/content-hub/storage"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// cleanCmd 清理孤儿记录和孤儿文件
// 上传在写文件和落库之间崩溃只会留下孤儿文件，这里负责回收
var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean orphan database records and storage files",
	Long: `Clean orphan database records and storage files.
This includes:
  - Delete asset records whose stored file is missing
  - Delete stored files without a corresponding asset record`,
	Run: func(cmd *cobra.Command, args []string) {
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		dbOnly, _ := cmd.Flags().GetBool("db-only")
		storageOnly, _ := cmd.Flags().GetBool("storage-only")

		if err := runClean(dryRun, dbOnly, storageOnly); err != nil {
			log.Fatalf("Clean failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(cleanCmd)
	cleanCmd.Flags().Bool("dry-run", false, "Only show what would be cleaned, don't actually delete")
	cleanCmd.Flags().Bool("db-only", false, "Only clean orphan database records")
	cleanCmd.Flags().Bool("storage-only", false, "Only clean orphan storage files")
}

// cleanStats 清理统计信息
type cleanStats struct {
	mu                  sync.Mutex
	orphanDBRecords     int
	orphanStorageFiles  int
	deletedDBRecords    int
	deletedStorageFiles int
	errors              []string
}

func (s *cleanStats) addError(format string, args ...interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errors = append(s.errors, fmt.Sprintf(format, args...))
}

func runClean(dryRun, dbOnly, storageOnly bool) error {
	config.InitConfig()
	cfg := config.Get()

	db := dbcore.GetDBInstance()
	defer dbcore.CloseDB()

	storageFactory, err := storage.NewFactory(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	stats := &cleanStats{}
	ctx := context.Background()

	if !storageOnly {
		if err := cleanOrphanRecords(ctx, db, storageFactory, stats, dryRun); err != nil {
			stats.addError("clean orphan records failed: %v", err)
		}
	}
	if !dbOnly {
		if err := cleanOrphanFiles(ctx, db, storageFactory, stats, dryRun); err != nil {
			stats.addError("clean orphan files failed: %v", err)
		}
	}

	printCleanStats(stats, dryRun)

	if len(stats.errors) > 0 {
		return fmt.Errorf("encountered %d errors during cleanup", len(stats.errors))
	}
	return nil
}

// cleanOrphanRecords 删除存储中已无对应文件的资产记录
// 指向缺失文件的记录会造成页面上的死链，必须清掉
func cleanOrphanRecords(ctx context.Context, db *gorm.DB, storageFactory *storage.Factory, stats *cleanStats, dryRun bool) error {
	log.Println("Checking for orphan database records...")

	var assetsList []models.Asset
	if err := db.Find(&assetsList).Error; err != nil {
		return fmt.Errorf("failed to fetch assets: %w", err)
	}

	provider := storageFactory.GetDefault()

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(8)

	for _, asset := range assetsList {
		asset := asset
		group.Go(func() error {
			exists, err := provider.Exists(ctx, asset.StorageName)
			if err != nil {
				stats.addError("failed to check existence of %s: %v", asset.StorageName, err)
				return nil
			}
			if exists {
				return nil
			}

			stats.mu.Lock()
			stats.orphanDBRecords++
			stats.mu.Unlock()

			if dryRun {
				log.Printf("Would delete orphan record: id=%d name=%s", asset.ID, asset.StorageName)
				return nil
			}

			if err := db.Unscoped().Delete(&models.Asset{}, asset.ID).Error; err != nil {
				stats.addError("failed to delete record %d: %v", asset.ID, err)
				return nil
			}
			stats.mu.Lock()
			stats.deletedDBRecords++
			stats.mu.Unlock()
			return nil
		})
	}

	return group.Wait()
}

// cleanOrphanFiles 删除没有对应资产记录的本地存储文件
func cleanOrphanFiles(ctx context.Context, db *gorm.DB, storageFactory *storage.Factory, stats *cleanStats, dryRun bool) error {
	log.Println("Checking for orphan storage files...")

	local, ok := storageFactory.GetDefault().(*storage.LocalStorage)
	if !ok {
		log.Println("Storage file sweep only supports the local provider, skipping.")
		return nil
	}

	entries, err := os.ReadDir(local.BasePath())
	if err != nil {
		return fmt.Errorf("failed to read storage directory: %w", err)
	}

	var names []string
	if err := db.Model(&models.Asset{}).Pluck("storage_name", &names).Error; err != nil {
		return fmt.Errorf("failed to fetch asset names: %w", err)
	}
	known := make(map[string]struct{}, len(names))
	for _, name := range names {
		known[name] = struct{}{}
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(8)

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if _, ok := known[name]; ok {
			continue
		}

		stats.mu.Lock()
		stats.orphanStorageFiles++
		stats.mu.Unlock()

		if dryRun {
			log.Printf("Would delete orphan file: %s", filepath.Join(local.BasePath(), name))
			continue
		}

		group.Go(func() error {
			if err := local.DeleteWithContext(ctx, name); err != nil {
				stats.addError("failed to delete file %s: %v", name, err)
				return nil
			}
			stats.mu.Lock()
			stats.deletedStorageFiles++
			stats.mu.Unlock()
			return nil
		})
	}

	return group.Wait()
}

func printCleanStats(stats *cleanStats, dryRun bool) {
	mode := "deleted"
	if dryRun {
		mode = "would delete"
	}
	log.Printf("Orphan records: %d found, %d %s", stats.orphanDBRecords, stats.deletedDBRecords, mode)
	log.Printf("Orphan files: %d found, %d %s", stats.orphanStorageFiles, stats.deletedStorageFiles, mode)
	for _, e := range stats.errors {
		log.Printf("Error: %s", e)
	}
}
