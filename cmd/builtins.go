package cmd

import (
	"fmt"
	"sort"

	"github.com/Grusburk/intecmd/commands"
	"github.com/Grusburk/intecmd/core/shell"
	"github.com/spf13/cobra"
)

// builtinsCmd lists what the shell can run
var builtinsCmd = &cobra.Command{
	Use:   "builtins",
	Short: "Show the commands and shell builtins.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		builtins := commands.ListBuiltinCommands()

		for _, name := range shell.ListBuiltins() {
			builtins = append(builtins, "shell:"+name)
		}

		sort.Strings(builtins)

		for _, v := range builtins {
			fmt.Fprintln(cmd.OutOrStdout(), v)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(builtinsCmd)
}
