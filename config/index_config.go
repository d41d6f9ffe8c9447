package config

import (
	"errors"

	"github.com/spf13/cobra"
)

type IndexConfig struct {
	Database database
	Log      log
	Chain    chain
	Base     indexBase
}

type indexBase struct {
	throttlingBase
	retryBase
	StartBlock        int64  `mapstructure:"start-block"`
	EndBlock          int64  `mapstructure:"end-block"`
	BatchSize         uint64 `mapstructure:"batch-size"`
	RPCWorkers        int64  `mapstructure:"rpc-workers"`
	BlockTimer        int64  `mapstructure:"block-timer"`
	WaitForChain      bool   `mapstructure:"wait-for-chain"`
	WaitForChainDelay int64  `mapstructure:"wait-for-chain-delay"`
	ExitWhenCaughtUp  bool   `mapstructure:"exit-when-caught-up"`
	Dry               bool
}

func SetupIndexSpecificFlags(conf *IndexConfig, cmd *cobra.Command) {
	cmd.PersistentFlags().Int64Var(&conf.Base.StartBlock, "base.start-block", -1, "block to start indexing at (use -1 to resume from highest block indexed)")
	cmd.PersistentFlags().Int64Var(&conf.Base.EndBlock, "base.end-block", -1, "block to stop indexing at (use -1 to index indefinitely")
	cmd.PersistentFlags().Uint64Var(&conf.Base.BatchSize, "base.batch-size", 500, "number of blocks requested per eth_getLogs call")
	cmd.PersistentFlags().Int64Var(&conf.Base.RPCWorkers, "base.rpc-workers", 4, "concurrent workers resolving block timestamps and transactions")
	cmd.PersistentFlags().Int64Var(&conf.Base.BlockTimer, "base.block-timer", 10000, "print out how long it takes to process this many blocks")
	cmd.PersistentFlags().BoolVar(&conf.Base.WaitForChain, "base.wait-for-chain", false, "wait for chain to be in sync?")
	cmd.PersistentFlags().Int64Var(&conf.Base.WaitForChainDelay, "base.wait-for-chain-delay", 10, "seconds to wait between each check for node to catch up to the chain")
	cmd.PersistentFlags().BoolVar(&conf.Base.ExitWhenCaughtUp, "base.exit-when-caught-up", false, "exit once the chain head has been indexed")
	cmd.PersistentFlags().BoolVar(&conf.Base.Dry, "base.dry", false, "index the chain but don't insert data in the DB.")
	SetupThrottlingFlag(&conf.Base.Throttling, cmd)
	SetupRetryFlags(&conf.Base.retryBase, cmd)
}

func (conf *IndexConfig) Validate() error {
	err := validateDatabaseConf(conf.Database)
	if err != nil {
		return err
	}

	chainConf, err := validateChainConf(conf.Chain)
	if err != nil {
		return err
	}
	conf.Chain = chainConf

	err = validateThrottlingConf(conf.Base.throttlingBase)
	if err != nil {
		return err
	}

	if conf.Base.StartBlock < -1 {
		return errors.New("base start-block must be -1 or a block height")
	}
	if conf.Base.EndBlock < -1 {
		return errors.New("base end-block must be -1 or a block height")
	}
	if conf.Base.EndBlock != -1 && conf.Base.StartBlock > conf.Base.EndBlock {
		return errors.New("base end-block must not be lower than start-block")
	}

	MergeConfigs(&conf.Base, defaultIndexBase())

	return nil
}
