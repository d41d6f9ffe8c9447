package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/DefiantLabs/course-platform/catalog"
	"github.com/DefiantLabs/course-platform/client"
	"github.com/DefiantLabs/course-platform/config"
	"github.com/DefiantLabs/course-platform/rdb"
	"github.com/DefiantLabs/course-platform/tasks"
	"github.com/ethereum/go-ethereum/common"
	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	serveConfig       config.ServeConfig
	serveDbConnection *gorm.DB
)

func init() {
	config.SetupLogFlags(&serveConfig.Log, serveCmd)
	config.SetupDatabaseFlags(&serveConfig.Database, serveCmd)
	config.SetupRedisFlags(&serveConfig.Redis, serveCmd)
	config.SetupServeSpecificFlags(&serveConfig, serveCmd)
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the REST API.",
	Long: `Serves course metadata, instructor applications, the merged course catalog and the
	indexed contract state over REST. Maintenance tasks run on a schedule alongside the API.`,
	PreRunE: setupServe,
	Run:     serve,
}

func setupServe(cmd *cobra.Command, args []string) error {
	bindFlags(cmd, viperConf)

	err := serveConfig.Validate()
	if err != nil {
		return err
	}

	if serveConfig.Chain.ContractAddress != "" && !common.IsHexAddress(serveConfig.Chain.ContractAddress) {
		return errors.New("chain contract-address must be a hex address")
	}

	config.DoConfigureLogger(serveConfig.Log.Path, serveConfig.Log.Level, serveConfig.Log.Pretty)

	db, err := setupDatabase(serveConfig.Database.Host, serveConfig.Database.Port, serveConfig.Database.Database,
		serveConfig.Database.User, serveConfig.Database.Password, serveConfig.Database.LogLevel)
	if err != nil {
		return err
	}
	serveDbConnection = db

	return nil
}

// catalogCache connects the redis cache when configured. A redis that cannot be reached disables caching.
func catalogCache(ctx context.Context) (catalog.Cache, func()) {
	if serveConfig.Redis.Addr == "" {
		return nil, func() {}
	}

	cache, err := rdb.New(serveConfig.Redis.Addr, serveConfig.Redis.Password, serveConfig.Redis.DB, time.Duration(serveConfig.Redis.CacheTTL)*time.Second)
	if err == nil {
		err = cache.Ping(ctx)
	}
	if err != nil {
		config.Log.Warn("Catalog cache disabled", err)
		return nil, func() {}
	}
	return cache, func() { cache.Close() }
}

func serve(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbConn, err := serveDbConnection.DB()
	if err != nil {
		config.Log.Fatal("Failed to connect to DB", err)
	}
	defer dbConn.Close()

	cache, closeCache := catalogCache(ctx)
	defer closeCache()
	cat := catalog.New(serveDbConnection, cache)

	scheduler := gocron.NewScheduler(time.UTC)
	if serveConfig.Tasks.Enabled {
		err = tasks.Schedule(scheduler, serveDbConnection, cat, serveConfig.Tasks.CacheWarmEvery, serveConfig.Tasks.OrphanEvery,
			time.Duration(serveConfig.Tasks.OrphanGraceMins)*time.Minute)
		if err != nil {
			config.Log.Error("Error scheduling maintenance tasks", err)
		}
		scheduler.StartAsync()
	}
	defer scheduler.Stop()

	if !strings.EqualFold(serveConfig.Log.Level, "debug") {
		gin.SetMode(gin.ReleaseMode)
	}

	contract := strings.ToLower(serveConfig.Chain.ContractAddress)
	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", serveConfig.Server.Host, serveConfig.Server.Port),
		Handler:           client.NewServer(serveDbConnection, cat, contract).Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		config.Log.Infof("REST API listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			config.Log.Error("Error starting server", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		config.Log.Error("Error shutting down server", err)
	}
	config.Log.Info("REST API stopped")
}
