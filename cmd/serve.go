package cmd

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anoixa/content-hub/api"
	"github.com/anoixa/content-hub/api/core"
	"github.com/anoixa/content-hub/cache"
	"github.com/anoixa/content-hub/config"
	"github.com/anoixa/content-hub/database/dbcore"
	"github.com/anoixa/content-hub/storage"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start API server",
	Run: func(cmd *cobra.Command, args []string) {
		RunServer()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func RunServer() {
	config.InitConfig()
	cfg := config.Get()

	db := dbcore.GetDBInstance()
	if err := dbcore.AutoMigrateDB(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	storageFactory, err := storage.NewFactory(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	if err := cache.Init(cfg); err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}

	if err := api.TokenInit(cfg.JwtSecret, cfg.JwtExpiresIn, cfg.JwtRefreshExpiresIn); err != nil {
		log.Fatalf("Failed to initialize JWT: %v", err)
	}

	deps := &core.ServerDependencies{
		DB:             db,
		StorageFactory: storageFactory,
		CacheProvider:  cache.GetDefault(),
	}

	server, cleanup := core.StartServer(deps)
	go func() {
		log.Printf("Server started on %s", cfg.Addr())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// 处理退出 signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if cleanup != nil {
		cleanup()
	}

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	if err := cache.Close(); err != nil {
		log.Printf("Failed to close cache: %v", err)
	}
	if err := dbcore.CloseDB(); err != nil {
		log.Printf("Failed to close database: %v", err)
	}

	log.Println("Server exited.")
}
