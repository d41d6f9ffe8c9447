package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/DefiantLabs/course-platform/util"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

type log struct {
	Level  string
	Path   string
	Pretty bool
}

// These configs are used across multiple commands, and are not specific to a single command
type database struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
	LogLevel string `mapstructure:"log-level"`
}

type chain struct {
	RPC             string
	ContractAddress string `mapstructure:"contract-address"`
	ABIFile         string `mapstructure:"abi-file"`
	ChainName       string `mapstructure:"chain-name"`
}

type redis struct {
	Addr     string
	Password string
	DB       int
	CacheTTL int64 `mapstructure:"cache-ttl"`
}

type throttlingBase struct {
	Throttling float64
}

type retryBase struct {
	RPCRetryAttempts int64  `mapstructure:"rpc-retry-attempts"`
	RPCRetryMaxWait  uint64 `mapstructure:"rpc-retry-max-wait"`
}

func SetupLogFlags(logConf *log, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&logConf.Level, "log.level", "info", "log level")
	cmd.PersistentFlags().BoolVar(&logConf.Pretty, "log.pretty", false, "pretty logs")
	cmd.PersistentFlags().StringVar(&logConf.Path, "log.path", "", "log path, logs are also written to stderr")
}

func SetupDatabaseFlags(databaseConf *database, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&databaseConf.Host, "database.host", "", "database host")
	cmd.PersistentFlags().StringVar(&databaseConf.Port, "database.port", "5432", "database port")
	cmd.PersistentFlags().StringVar(&databaseConf.Database, "database.database", "", "database name")
	cmd.PersistentFlags().StringVar(&databaseConf.User, "database.user", "", "database user")
	cmd.PersistentFlags().StringVar(&databaseConf.Password, "database.password", "", "database password")
	cmd.PersistentFlags().StringVar(&databaseConf.LogLevel, "database.log-level", "", "database loglevel")
}

func SetupChainFlags(chainConf *chain, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&chainConf.RPC, "chain.rpc", "", "EVM node rpc endpoint (http, https, ws or wss)")
	cmd.PersistentFlags().StringVar(&chainConf.ContractAddress, "chain.contract-address", "", "CoursePlatform contract address")
	cmd.PersistentFlags().StringVar(&chainConf.ABIFile, "chain.abi-file", "", "optional CoursePlatform ABI or hardhat artifact, the built-in event ABI is used when empty")
	cmd.PersistentFlags().StringVar(&chainConf.ChainName, "chain.chain-name", "", "human readable chain name used in logs")
}

func SetupRedisFlags(redisConf *redis, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&redisConf.Addr, "redis.addr", "", "redis host:port for the catalog cache, caching is disabled when empty")
	cmd.PersistentFlags().StringVar(&redisConf.Password, "redis.password", "", "redis password")
	cmd.PersistentFlags().IntVar(&redisConf.DB, "redis.db", 0, "redis database number")
	cmd.PersistentFlags().Int64Var(&redisConf.CacheTTL, "redis.cache-ttl", 30, "catalog cache TTL in seconds")
}

func SetupThrottlingFlag(throttlingValue *float64, cmd *cobra.Command) {
	cmd.PersistentFlags().Float64Var(throttlingValue, "base.throttling", 0.5, "throttle delay")
}

func SetupRetryFlags(retryConf *retryBase, cmd *cobra.Command) {
	cmd.PersistentFlags().Int64Var(&retryConf.RPCRetryAttempts, "base.rpc-retry-attempts", 0, "number of RPC query retries to make")
	cmd.PersistentFlags().Uint64Var(&retryConf.RPCRetryMaxWait, "base.rpc-retry-max-wait", 30, "max retry incremental backoff wait time in seconds")
}

func validateDatabaseConf(dbConf database) error {
	if util.StrNotSet(dbConf.Host) {
		return errors.New("database host must be set")
	}
	if util.StrNotSet(dbConf.Port) {
		return errors.New("database port must be set")
	}
	if util.StrNotSet(dbConf.Database) {
		return errors.New("database name (i.e. database) must be set")
	}
	if util.StrNotSet(dbConf.User) {
		return errors.New("database user must be set")
	}
	if util.StrNotSet(dbConf.Password) {
		return errors.New("database password must be set")
	}

	return nil
}

func validateChainConf(chainConf chain) (chain, error) {
	if util.StrNotSet(chainConf.RPC) {
		return chainConf, errors.New("chain rpc must be set")
	}
	if !strings.Contains(chainConf.RPC, "://") {
		return chainConf, fmt.Errorf("chain rpc %q must include a scheme (http, https, ws, wss)", chainConf.RPC)
	}

	if util.StrNotSet(chainConf.ContractAddress) {
		return chainConf, errors.New("chain contract-address must be set")
	}
	if !common.IsHexAddress(chainConf.ContractAddress) {
		return chainConf, fmt.Errorf("chain contract-address %q is not a hex address", chainConf.ContractAddress)
	}
	// normalise to the checksummed form
	chainConf.ContractAddress = common.HexToAddress(chainConf.ContractAddress).Hex()

	if util.StrNotSet(chainConf.ChainName) {
		chainConf.ChainName = "evm"
	}
	return chainConf, nil
}

func validateThrottlingConf(throttlingConf throttlingBase) error {
	if throttlingConf.Throttling < 0 {
		return errors.New("throttling must be a positive number or 0")
	}
	return nil
}
