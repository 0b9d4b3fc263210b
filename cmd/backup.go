package cmd

import (
	"archive/tar"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"reflect"
	"time"

	"github.com/anoixa/content-hub/config"
	"github.com/anoixa/content-hub/database/dbcore"
	"github.com/anoixa/content-hub/database/models"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// backupCmd 把内容表导出为 tar.gz 归档
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Backup database content to a tar.gz archive",
	Long: `Backup content tables as JSON files packed into a tar.gz archive.

Examples:
  content-hub backup
  content-hub backup --output ./my-backup.tar.gz
  content-hub backup --tables users,pages`,
	Run: func(cmd *cobra.Command, args []string) {
		outputFile, _ := cmd.Flags().GetString("output")
		tables, _ := cmd.Flags().GetStringSlice("tables")

		if err := runBackup(outputFile, tables); err != nil {
			log.Fatalf("Backup failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(backupCmd)
	backupCmd.Flags().StringP("output", "o", "", "Output tar.gz file path (default: ./backups/backup_YYYYMMDD_HHMMSS.tar.gz)")
	backupCmd.Flags().StringSliceP("tables", "t", []string{}, "Specific tables to backup (default: all)")
}

// backupManifest 归档内的自描述元数据，恢复时按它决定导入哪些表
type backupManifest struct {
	Version     string           `json:"version"`
	CreatedAt   time.Time        `json:"created_at"`
	Database    string           `json:"database"`
	Tables      []string         `json:"tables"`
	RecordCount map[string]int64 `json:"record_count"`
}

// partnerProjectRow partner_projects 关联表行
type partnerProjectRow struct {
	PartnerID uint `json:"partner_id"`
	ProjectID uint `json:"project_id"`
}

// 恢复按此顺序导入：被引用的表先于引用它的表和关联表
var allBackupTables = []string{
	"users", "pages", "projects", "partners", "partner_projects",
	"team_members", "galleries", "assets",
}

// tableSnapshot 返回表对应的具体类型切片指针
// 保持具体类型，JSON 编解码时字段不丢失；表名来自固定白名单
func tableSnapshot(table string) (interface{}, error) {
	switch table {
	case "users":
		return &[]models.User{}, nil
	case "pages":
		return &[]models.Page{}, nil
	case "projects":
		return &[]models.Project{}, nil
	case "partners":
		return &[]models.Partner{}, nil
	case "partner_projects":
		return &[]partnerProjectRow{}, nil
	case "team_members":
		return &[]models.TeamMember{}, nil
	case "galleries":
		return &[]models.Gallery{}, nil
	case "assets":
		return &[]models.Asset{}, nil
	default:
		return nil, fmt.Errorf("unknown table: %s", table)
	}
}

func runBackup(outputFile string, tables []string) error {
	config.InitConfig()
	cfg := config.Get()

	db := dbcore.GetDBInstance()
	defer dbcore.CloseDB()

	if outputFile == "" {
		timestamp := time.Now().Format("20060102_150405")
		outputFile = filepath.Join("./backups", fmt.Sprintf("backup_%s.tar.gz", timestamp))
	}

	manifest, err := backupDatabase(db, tables, outputFile, cfg.DBType)
	if err != nil {
		return err
	}

	var total int64
	for _, count := range manifest.RecordCount {
		total += count
	}
	log.Printf("Backup completed: %s (%d records across %d tables)", outputFile, total, len(manifest.Tables))
	return nil
}

// backupDatabase 导出给定表到 outputFile 指向的 tar.gz 归档
func backupDatabase(db *gorm.DB, tables []string, outputFile string, dbType string) (*backupManifest, error) {
	if len(tables) == 0 {
		tables = allBackupTables
	}

	if err := os.MkdirAll(filepath.Dir(outputFile), 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	tempDir, err := os.MkdirTemp("", "content-hub-backup-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	manifest := &backupManifest{
		Version:     "1.0",
		CreatedAt:   time.Now(),
		Database:    dbType,
		Tables:      tables,
		RecordCount: make(map[string]int64),
	}

	for _, table := range tables {
		count, err := dumpTable(db, table, tempDir)
		if err != nil {
			return nil, fmt.Errorf("failed to backup table %s: %w", table, err)
		}
		manifest.RecordCount[table] = count
		log.Printf("Backed up %d records from table: %s", count, table)
	}

	if err := writeJSONFile(filepath.Join(tempDir, "manifest.json"), manifest); err != nil {
		return nil, fmt.Errorf("failed to write manifest: %w", err)
	}

	if err := packArchive(tempDir, outputFile); err != nil {
		return nil, fmt.Errorf("failed to create archive: %w", err)
	}

	return manifest, nil
}

// dumpTable 把一张表的全部记录写成 JSON 文件，软删除的行一并保留
func dumpTable(db *gorm.DB, table string, dir string) (int64, error) {
	dest, err := tableSnapshot(table)
	if err != nil {
		return 0, err
	}

	query := db.Unscoped()
	if table == "partner_projects" {
		query = db.Table("partner_projects")
	}
	if err := query.Find(dest).Error; err != nil {
		return 0, err
	}

	count := int64(reflect.ValueOf(dest).Elem().Len())
	if err := writeJSONFile(filepath.Join(dir, table+".json"), dest); err != nil {
		return 0, err
	}
	return count, nil
}

func writeJSONFile(path string, data interface{}) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// packArchive 把目录下的文件打进 tar.gz，归档内只有扁平文件名
func packArchive(sourceDir, targetFile string) error {
	out, err := os.Create(targetFile)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	gz := gzip.NewWriter(out)
	tw := tar.NewWriter(gz)

	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = entry.Name()
		if err := tw.WriteHeader(header); err != nil {
			return err
		}

		file, err := os.Open(filepath.Join(sourceDir, entry.Name()))
		if err != nil {
			return err
		}
		_, err = io.Copy(tw, file)
		_ = file.Close()
		if err != nil {
			return err
		}
	}

	if err := tw.Close(); err != nil {
		return err
	}
	return gz.Close()
}
