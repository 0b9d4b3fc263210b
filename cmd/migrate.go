package cmd

import (
	"fmt"
	"log"

	"github.com/anoixa/content-hub/config"
	"github.com/anoixa/content-hub/database/dbcore"
	"github.com/anoixa/content-hub/database/repo/users"
	"github.com/anoixa/content-hub/utils"
	"github.com/anoixa/content-hub/utils/crypto"
	"github.com/spf13/cobra"
)

// migrateCmd 执行数据库结构迁移并初始化管理员账号
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migration",
	Long: `Run database schema migration and optionally create the initial admin user.

Examples:
  content-hub migrate
  content-hub migrate --admin-user admin --admin-password secret`,
	Run: func(cmd *cobra.Command, args []string) {
		adminUser, _ := cmd.Flags().GetString("admin-user")
		adminPassword, _ := cmd.Flags().GetString("admin-password")

		if err := runMigrate(adminUser, adminPassword); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.Flags().String("admin-user", "", "Create an admin user with this username")
	migrateCmd.Flags().String("admin-password", "", "Password for the admin user (generated randomly when omitted)")
}

func runMigrate(adminUser, adminPassword string) error {
	config.InitConfig()

	db := dbcore.GetDBInstance()
	if err := dbcore.AutoMigrateDB(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	log.Println("Database schema migrated.")

	if adminUser != "" {
		generated := false
		if adminPassword == "" {
			// 没有指定密码时生成随机密码并打印出来
			password, err := utils.RandomToken(18)
			if err != nil {
				return fmt.Errorf("failed to generate admin password: %w", err)
			}
			adminPassword = password
			generated = true
		}
		hash, err := crypto.GenerateFromPassword(adminPassword)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}
		if err := users.NewRepository(db).EnsureUser(adminUser, hash); err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		if generated {
			log.Printf("Admin user %q is ready, generated password: %s", adminUser, adminPassword)
		} else {
			log.Printf("Admin user %q is ready.", adminUser)
		}
	}

	return dbcore.CloseDB()
}
