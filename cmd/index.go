package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/DefiantLabs/course-platform/config"
	"github.com/DefiantLabs/course-platform/core"
	"github.com/DefiantLabs/course-platform/platform"
	"github.com/DefiantLabs/course-platform/rpc"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	indexConfig       config.IndexConfig
	indexDbConnection *gorm.DB
)

func init() {
	config.SetupLogFlags(&indexConfig.Log, indexCmd)
	config.SetupDatabaseFlags(&indexConfig.Database, indexCmd)
	config.SetupChainFlags(&indexConfig.Chain, indexCmd)
	config.SetupIndexSpecificFlags(&indexConfig, indexCmd)
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Indexes the CoursePlatform contract according to the configuration defined.",
	Long: `Indexes the CoursePlatform contract events according to the configurations found on the command line
	or in the specified config file. Courses, purchases and platform fees are written to the database for
	the API to serve. It is highly recommended to keep this command running as a background service to keep
	your index up to date.`,
	PreRunE: setupIndex,
	Run:     index,
}

func setupIndex(cmd *cobra.Command, args []string) error {
	bindFlags(cmd, viperConf)

	err := indexConfig.Validate()
	if err != nil {
		return err
	}

	config.DoConfigureLogger(indexConfig.Log.Path, indexConfig.Log.Level, indexConfig.Log.Pretty)

	db, err := setupDatabase(indexConfig.Database.Host, indexConfig.Database.Port, indexConfig.Database.Database,
		indexConfig.Database.User, indexConfig.Database.Password, indexConfig.Database.LogLevel)
	if err != nil {
		return err
	}
	indexDbConnection = db

	return nil
}

func index(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dbConn, err := indexDbConnection.DB()
	if err != nil {
		config.Log.Fatal("Failed to connect to DB", err)
	}
	defer dbConn.Close()

	p, err := platform.New(common.HexToAddress(indexConfig.Chain.ContractAddress), indexConfig.Chain.ABIFile)
	if err != nil {
		config.Log.Fatal("Error loading the CoursePlatform ABI", err)
	}

	cl, err := rpc.Dial(ctx, indexConfig.Chain.RPC, indexConfig.Base.RPCRetryAttempts, indexConfig.Base.RPCRetryMaxWait)
	if err != nil {
		config.Log.Fatal("Error connecting to the chain RPC", err)
	}
	defer cl.Close()

	config.Log.Infof("Indexing %s on %s", indexConfig.Chain.ContractAddress, indexConfig.Chain.ChainName)

	idx := core.NewIndexer(cl, indexDbConnection, p, core.Options{
		StartBlock:        indexConfig.Base.StartBlock,
		EndBlock:          indexConfig.Base.EndBlock,
		BatchSize:         indexConfig.Base.BatchSize,
		RPCWorkers:        indexConfig.Base.RPCWorkers,
		BlockTimer:        indexConfig.Base.BlockTimer,
		Throttling:        indexConfig.Base.Throttling,
		WaitForChain:      indexConfig.Base.WaitForChain,
		WaitForChainDelay: indexConfig.Base.WaitForChainDelay,
		ExitWhenCaughtUp:  indexConfig.Base.ExitWhenCaughtUp,
		Dry:               indexConfig.Base.Dry,
	}, core.HandleFailedBlock)
	defer idx.Stop()

	err = idx.Run(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		config.Log.Error("Indexer stopped", err)
		return
	}
	config.Log.Info("Indexer exited")
}
