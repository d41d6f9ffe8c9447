package config

import (
	"io"
	lg "log"

	"github.com/BurntSushi/toml"
	"github.com/imdario/mergo"
)

// MergeConfigs fills every zero value field in overide with the value from def.
func MergeConfigs[T any](overide *T, def T) {
	err := mergo.Merge(overide, def)
	if err != nil {
		lg.Panicf("Config merge failed. Err: %v", err)
	}
}

func defaultIndexBase() indexBase {
	return indexBase{
		BatchSize:         500,
		RPCWorkers:        4,
		WaitForChainDelay: 10,
	}
}

func defaultTasks() tasks {
	return tasks{
		CacheWarmEvery:  60,
		OrphanEvery:     3600,
		OrphanGraceMins: 60,
	}
}

// FileConfig is the on-disk layout shared by every command. Each command only reads the sections it needs.
type FileConfig struct {
	Log      fileLog      `toml:"log"`
	Database fileDatabase `toml:"database"`
	Chain    fileChain    `toml:"chain"`
	Redis    fileRedis    `toml:"redis"`
	Server   fileServer   `toml:"server"`
	Tasks    fileTasks    `toml:"tasks"`
	Base     fileBase     `toml:"base"`
}

type fileLog struct {
	Level  string `toml:"level"`
	Path   string `toml:"path"`
	Pretty bool   `toml:"pretty"`
}

type fileDatabase struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	Database string `toml:"database"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	LogLevel string `toml:"log-level"`
}

type fileChain struct {
	RPC             string `toml:"rpc"`
	ContractAddress string `toml:"contract-address"`
	ABIFile         string `toml:"abi-file"`
	ChainName       string `toml:"chain-name"`
}

type fileRedis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	CacheTTL int64  `toml:"cache-ttl"`
}

type fileServer struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

type fileTasks struct {
	Enabled         bool  `toml:"enabled"`
	CacheWarmEvery  int64 `toml:"cache-warm-every"`
	OrphanEvery     int64 `toml:"orphan-report-every"`
	OrphanGraceMins int64 `toml:"orphan-grace-minutes"`
}

type fileBase struct {
	StartBlock        int64   `toml:"start-block"`
	EndBlock          int64   `toml:"end-block"`
	BatchSize         uint64  `toml:"batch-size"`
	RPCWorkers        int64   `toml:"rpc-workers"`
	BlockTimer        int64   `toml:"block-timer"`
	Throttling        float64 `toml:"throttling"`
	RPCRetryAttempts  int64   `toml:"rpc-retry-attempts"`
	RPCRetryMaxWait   uint64  `toml:"rpc-retry-max-wait"`
	WaitForChain      bool    `toml:"wait-for-chain"`
	WaitForChainDelay int64   `toml:"wait-for-chain-delay"`
	ExitWhenCaughtUp  bool    `toml:"exit-when-caught-up"`
	Dry               bool    `toml:"dry"`
	Format            string  `toml:"format"`
}

func DefaultFileConfig() FileConfig {
	base := defaultIndexBase()
	tasks := defaultTasks()
	return FileConfig{
		Log: fileLog{Level: "info"},
		Database: fileDatabase{
			Host:     "localhost",
			Port:     "5432",
			Database: "course_platform",
			User:     "course_platform",
			Password: "change-me",
		},
		Chain: fileChain{
			RPC:       "http://localhost:8545",
			ChainName: "sepolia",
		},
		Redis:  fileRedis{CacheTTL: 30},
		Server: fileServer{Port: 4000},
		Tasks: fileTasks{
			Enabled:         true,
			CacheWarmEvery:  tasks.CacheWarmEvery,
			OrphanEvery:     tasks.OrphanEvery,
			OrphanGraceMins: tasks.OrphanGraceMins,
		},
		Base: fileBase{
			StartBlock:        -1,
			EndBlock:          -1,
			BatchSize:         base.BatchSize,
			RPCWorkers:        base.RPCWorkers,
			BlockTimer:        10000,
			Throttling:        0.5,
			RPCRetryMaxWait:   30,
			WaitForChainDelay: base.WaitForChainDelay,
			Format:            CatalogFormatCSV,
		},
	}
}

// WriteConfig encodes conf as TOML.
func WriteConfig(w io.Writer, conf FileConfig) error {
	return toml.NewEncoder(w).Encode(conf)
}
