package cmd

import (
	"errors"
	"io/fs"
	"log"
	"os"

	"github.com/Grusburk/intecmd/core/config"
	"github.com/spf13/cobra"
)

var cfgPath string

func loadConfig(logger *log.Logger) (*config.Configuration, error) {
	configuration, err := config.Load(cfgPath)

	if errors.Is(err, fs.ErrNotExist) {
		logger.Println("No config found, using defaults: run init to create one")
		return config.Default(), nil
	}

	return configuration, err
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "intecmd",
	Short: "Interactive directory shell",
	Long: `A small interactive shell for moving around directories and listing
their contents with cd, ls and pwd.`,
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		return shellCmd.RunE(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		os.Exit(exitErr.Code)
	}
	cobra.CheckErr(err)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", ".", "config path")
}
