package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/DefiantLabs/course-platform/config"
	dbTypes "github.com/DefiantLabs/course-platform/db"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

var (
	cfgFile   string       // config file location to load
	viperConf = viper.New() // file values, bound onto each command's flags in its PreRunE
	rootCmd   = &cobra.Command{
		Use:   "course-platform",
		Short: "Backend for the CoursePlatform dApp: REST API, contract indexer and catalog export.",
		Long: `course-platform serves course metadata and instructor applications over REST,
indexes the CoursePlatform contract events into the same database, and exports the
merged course catalog.`,
	}
)

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// initConfig on initialize of cobra guarantees config struct will be set before all subcommands are executed
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.toml, then $HOME/.course-platform/config.toml)")
}

func initConfig() {
	explicit := cfgFile != ""
	if explicit {
		viperConf.SetConfigFile(cfgFile)
		viperConf.SetConfigType("toml")
	} else {
		// Check in current working dir
		pwd, err := os.Getwd()
		if err != nil {
			log.Fatalf("Could not determine current working dir. Err: %v", err)
		}
		if _, err := os.Stat(fmt.Sprintf("%v/config.toml", pwd)); err == nil {
			cfgFile = pwd
		} else {
			// file not in current working dir. Check home dir instead
			home, err := os.UserHomeDir()
			if err != nil {
				log.Fatalf("Failed to find user home dir. Err: %v", err)
			}
			cfgFile = fmt.Sprintf("%s/.course-platform", home)
		}
		viperConf.AddConfigPath(cfgFile)
		viperConf.SetConfigType("toml")
		viperConf.SetConfigName("config")
	}

	err := viperConf.ReadInConfig()
	if err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound && !explicit {
			return
		}
		log.Fatalf("Failed to read config file. Err: %v", err)
	}
	log.Println("CFG successfully read from: ", viperConf.ConfigFileUsed())
}

// bindFlags sets every flag the user did not pass on the command line from the config file, if present there.
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		configName := f.Name
		if !f.Changed && v.IsSet(configName) {
			val := v.Get(configName)
			err := cmd.PersistentFlags().Set(f.Name, fmt.Sprintf("%v", val))
			if err != nil {
				log.Fatalf("Failed to bind config file value %v. Err: %v", configName, err)
			}
		}
	})
}

// setupDatabase connects to postgres, applies the shared pool limits and runs migrations.
func setupDatabase(host, port, database, user, password, logLevel string) (*gorm.DB, error) {
	db, err := dbTypes.PostgresDbConnect(host, port, database, user, password, strings.ToLower(logLevel))
	if err != nil {
		config.Log.Error("Could not establish connection to the database", err)
		return nil, err
	}

	if err := dbTypes.ConfigurePool(db); err != nil {
		return nil, err
	}

	// run database migrations at every runtime
	err = dbTypes.MigrateModels(db)
	if err != nil {
		config.Log.Error("Error running DB migrations", err)
		return nil, err
	}

	return db, nil
}
