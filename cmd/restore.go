package cmd

import (
	"archive/tar"
	"compress/gzip"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"reflect"

	"github.com/anoixa/content-hub/config"
	"github.com/anoixa/content-hub/database/dbcore"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// restoreCmd 从备份归档恢复内容表
var restoreCmd = &cobra.Command{
	Use:   "restore <archive>",
	Short: "Restore database content from a backup archive",
	Long: `Restore content tables from a tar.gz archive created by the backup command.

Existing rows with conflicting keys are kept unless --replace is given,
in which case each restored table is emptied first.

Examples:
  content-hub restore ./backups/backup_20260825_120000.tar.gz
  content-hub restore --replace ./my-backup.tar.gz`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		replace, _ := cmd.Flags().GetBool("replace")

		if err := runRestore(args[0], replace); err != nil {
			log.Fatalf("Restore failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(restoreCmd)
	restoreCmd.Flags().Bool("replace", false, "Empty each table before restoring its records")
}

func runRestore(archive string, replace bool) error {
	config.InitConfig()

	db := dbcore.GetDBInstance()
	defer dbcore.CloseDB()

	// 归档可能来自更老的结构，先补齐缺失的表和列
	if err := dbcore.AutoMigrateDB(db); err != nil {
		return err
	}

	return restoreArchive(db, archive, replace)
}

// restoreArchive 解包归档并按清单顺序导入各表
func restoreArchive(db *gorm.DB, archive string, replace bool) error {
	tempDir, err := os.MkdirTemp("", "content-hub-restore-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	if err := unpackArchive(archive, tempDir); err != nil {
		return fmt.Errorf("failed to unpack archive: %w", err)
	}

	var manifest backupManifest
	if err := readJSONFile(filepath.Join(tempDir, "manifest.json"), &manifest); err != nil {
		return fmt.Errorf("archive has no readable manifest: %w", err)
	}
	log.Printf("Restoring backup from %s (database: %s)", manifest.CreatedAt.Format("2006-01-02 15:04:05"), manifest.Database)

	for _, table := range manifest.Tables {
		count, err := restoreTable(db, table, tempDir, replace)
		if err != nil {
			return fmt.Errorf("failed to restore table %s: %w", table, err)
		}
		log.Printf("Restored %d records into table: %s", count, table)
	}

	return nil
}

// restoreTable 把一张表的 JSON 文件导回数据库
// 主键冲突的行保持原样跳过；replace 为真时先清空整表
func restoreTable(db *gorm.DB, table string, dir string, replace bool) (int64, error) {
	dest, err := tableSnapshot(table)
	if err != nil {
		return 0, err
	}

	path := filepath.Join(dir, table+".json")
	if err := readJSONFile(path, dest); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Printf("Table file missing in archive, skipping: %s", table)
			return 0, nil
		}
		return 0, err
	}

	count := int64(reflect.ValueOf(dest).Elem().Len())

	return count, db.Transaction(func(tx *gorm.DB) error {
		if replace {
			// 表名来自 tableSnapshot 的白名单，拼接是安全的
			if err := tx.Exec("DELETE FROM " + table).Error; err != nil {
				return err
			}
		}
		if count == 0 {
			return nil
		}

		query := tx.Clauses(clause.OnConflict{DoNothing: true})
		if table == "partner_projects" {
			query = query.Table("partner_projects")
		}
		return query.CreateInBatches(dest, 200).Error
	})
}

func readJSONFile(path string, out interface{}) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	return json.NewDecoder(file).Decode(out)
}

// unpackArchive 解包 tar.gz，只接受扁平的普通文件
func unpackArchive(archive, destDir string) error {
	file, err := os.Open(archive)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	gz, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer func() { _ = gz.Close() }()

	tr := tar.NewReader(gz)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return err
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}

		// 丢弃归档里的路径部分，顺带挡掉路径穿越
		name := filepath.Base(header.Name)
		out, err := os.Create(filepath.Join(destDir, name))
		if err != nil {
			return err
		}
		_, err = io.Copy(out, tr)
		closeErr := out.Close()
		if err != nil {
			return err
		}
		if closeErr != nil {
			return closeErr
		}
	}

	return nil
}
