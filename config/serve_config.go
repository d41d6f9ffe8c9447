package config

import (
	"errors"

	"github.com/spf13/cobra"
)

type ServeConfig struct {
	Database database
	Log      log
	Redis    redis
	Server   server
	Chain    chain
	Tasks    tasks
}

type server struct {
	Host string
	Port int
}

type tasks struct {
	Enabled         bool
	CacheWarmEvery  int64 `mapstructure:"cache-warm-every"`
	OrphanEvery     int64 `mapstructure:"orphan-report-every"`
	OrphanGraceMins int64 `mapstructure:"orphan-grace-minutes"`
}

func SetupServeSpecificFlags(conf *ServeConfig, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&conf.Server.Host, "server.host", "", "interface to bind the REST API to")
	cmd.PersistentFlags().IntVar(&conf.Server.Port, "server.port", 4000, "port to serve the REST API on")
	cmd.PersistentFlags().StringVar(&conf.Chain.ContractAddress, "chain.contract-address", "", "CoursePlatform contract address, used to report indexer progress")
	cmd.PersistentFlags().BoolVar(&conf.Tasks.Enabled, "tasks.enabled", true, "run scheduled maintenance tasks")
	cmd.PersistentFlags().Int64Var(&conf.Tasks.CacheWarmEvery, "tasks.cache-warm-every", 60, "seconds between catalog cache warm-ups")
	cmd.PersistentFlags().Int64Var(&conf.Tasks.OrphanEvery, "tasks.orphan-report-every", 3600, "seconds between orphaned course reports")
	cmd.PersistentFlags().Int64Var(&conf.Tasks.OrphanGraceMins, "tasks.orphan-grace-minutes", 60, "minutes a course may exist off-chain before it is reported as orphaned")
}

func (conf *ServeConfig) Validate() error {
	err := validateDatabaseConf(conf.Database)
	if err != nil {
		return err
	}

	if conf.Server.Port <= 0 || conf.Server.Port > 65535 {
		return errors.New("server port must be between 1 and 65535")
	}

	if conf.Redis.CacheTTL < 0 {
		return errors.New("redis cache-ttl must be positive or 0")
	}

	MergeConfigs(&conf.Tasks, defaultTasks())

	return nil
}
