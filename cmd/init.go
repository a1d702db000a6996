package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ngts-qa/qaview/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize qaview configuration with an interactive wizard",
	Long:  `Runs an interactive wizard to configure the report and writes it to the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
