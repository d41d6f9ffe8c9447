package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"

	"github.com/DefiantLabs/course-platform/catalog"
	"github.com/DefiantLabs/course-platform/config"
	"github.com/DefiantLabs/course-platform/csv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	catalogConfig       config.CatalogConfig
	catalogDbConnection *gorm.DB
)

func init() {
	config.SetupLogFlags(&catalogConfig.Log, catalogCmd)
	config.SetupDatabaseFlags(&catalogConfig.Database, catalogCmd)
	config.SetupCatalogSpecificFlags(&catalogConfig, catalogCmd)
	rootCmd.AddCommand(catalogCmd)
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Exports the course catalog.",
	Long: `Exports every course with its indexed on-chain price and purchase count, as CSV or JSON,
	to stdout or a file.`,
	PreRunE: setupCatalog,
	Run: func(cmd *cobra.Command, args []string) {
		entries := catalog.New(catalogDbConnection, nil).Build(context.Background())

		buffer, err := renderCatalog(entries, catalogConfig.Base.Format)
		if err != nil {
			config.Log.Fatal("Error generating catalog export", err)
		}

		if catalogConfig.Base.Output == "" {
			_, err = os.Stdout.Write(buffer.Bytes())
		} else {
			err = os.WriteFile(catalogConfig.Base.Output, buffer.Bytes(), 0o644)
		}
		if err != nil {
			config.Log.Fatal("Error writing catalog export", err)
		}
	},
}

func renderCatalog(entries []catalog.Entry, format string) (bytes.Buffer, error) {
	if format == config.CatalogFormatJSON {
		var b bytes.Buffer
		enc := json.NewEncoder(&b)
		enc.SetIndent("", "  ")
		err := enc.Encode(entries)
		return b, err
	}
	return csv.ToCsv(entries)
}

func setupCatalog(cmd *cobra.Command, args []string) error {
	bindFlags(cmd, viperConf)

	err := catalogConfig.Validate()
	if err != nil {
		return err
	}

	config.DoConfigureLogger(catalogConfig.Log.Path, catalogConfig.Log.Level, catalogConfig.Log.Pretty)

	db, err := setupDatabase(catalogConfig.Database.Host, catalogConfig.Database.Port, catalogConfig.Database.Database,
		catalogConfig.Database.User, catalogConfig.Database.Password, catalogConfig.Database.LogLevel)
	if err != nil {
		return err
	}
	catalogDbConnection = db

	return nil
}
