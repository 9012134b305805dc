package cmd

import (
	"fmt"
	"log"

	"github.com/Grusburk/intecmd/core/config"
	"github.com/spf13/cobra"
)

var initPrint bool

// initCmd seeds the --config directory with the built-in settings.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the built-in settings to the --config directory.",
	Long: `Write the built-in settings to the --config directory.

An existing config.yaml is left alone. With --print the settings are written
to standard output and nothing is created.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		if initPrint {
			_, err := cmd.OutOrStdout().Write(config.DefaultYAML())
			return err
		}

		cfg, err := config.Initialize(cfgPath, log.New(cmd.ErrOrStderr(), "[init] ", 0))
		if err != nil {
			return err
		}
		conv, err := cfg.PathConvention()
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Paths follow the %s convention.\n", conv.Name)
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initPrint, "print", false, "print the built-in settings instead of writing them")
	rootCmd.AddCommand(initCmd)
}
