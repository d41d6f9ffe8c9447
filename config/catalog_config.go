package config

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	CatalogFormatCSV  = "csv"
	CatalogFormatJSON = "json"
)

type CatalogConfig struct {
	Database database
	Log      log
	Base     catalogBase
}

type catalogBase struct {
	Format string
	Output string
}

func SetupCatalogSpecificFlags(conf *CatalogConfig, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&conf.Base.Format, "base.format", CatalogFormatCSV, "output format, one of csv or json")
	cmd.PersistentFlags().StringVar(&conf.Base.Output, "base.output", "", "file to write to, stdout when empty")
}

func (conf *CatalogConfig) Validate() error {
	err := validateDatabaseConf(conf.Database)
	if err != nil {
		return err
	}

	switch conf.Base.Format {
	case CatalogFormatCSV, CatalogFormatJSON:
	default:
		return fmt.Errorf("unsupported format %q, must be one of %s, %s", conf.Base.Format, CatalogFormatCSV, CatalogFormatJSON)
	}

	return nil
}
