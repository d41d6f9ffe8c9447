package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/DefiantLabs/course-platform/config"
	"github.com/spf13/cobra"
)

var (
	initConfigOutput string
	initConfigForce  bool
)

func init() {
	initConfigCmd.Flags().StringVar(&initConfigOutput, "output", "config.toml", "where to write the config")
	initConfigCmd.Flags().BoolVar(&initConfigForce, "force", false, "overwrite an existing file")
	rootCmd.AddCommand(initConfigCmd)
}

var initConfigCmd = &cobra.Command{
	Use:   "init-config",
	Short: "Writes a config file with the default values.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(initConfigOutput); err == nil && !initConfigForce {
			return fmt.Errorf("%s already exists, use --force to overwrite it", initConfigOutput)
		}

		if dir := filepath.Dir(initConfigOutput); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}
		}

		file, err := os.Create(initConfigOutput)
		if err != nil {
			return err
		}
		defer file.Close()

		if err := config.WriteConfig(file, config.DefaultFileConfig()); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", initConfigOutput)
		return nil
	},
}
