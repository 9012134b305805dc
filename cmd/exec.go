package cmd

import (
	"fmt"
	"log"

	"github.com/Grusburk/intecmd/core/shell"
	"github.com/Grusburk/intecmd/core/vos"
	"github.com/spf13/cobra"
)

var execLines []string

// ExitError carries the code passed to the exit builtin.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// execCmd runs lines in a single session without a prompt
var execCmd = &cobra.Command{
	Use:   "exec -c LINE [-c LINE]...",
	Short: "Run lines in a single shell session and exit.",
	Example: `  intecmd exec -c 'cd src' -c 'ls -l'
  intecmd exec -c 'cd "My Documents"' -c pwd`,
	Args: cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		execLogger := log.New(cmd.ErrOrStderr(), "[exec] ", 0)
		cfg, err := loadConfig(execLogger)
		if err != nil {
			return err
		}

		local, err := newLocalSession(cfg, sessionIO{
			stdin:  cmd.InOrStdin(),
			stdout: cmd.OutOrStdout(),
			stderr: cmd.ErrOrStderr(),
			pty:    vos.PTY{Width: defaultWidth},
		})
		if err != nil {
			return err
		}
		defer local.Close()

		sh := shell.New(local.Login, local.Options)
		if code := sh.RunLines(execLines); code != 0 {
			cmd.SilenceErrors = true
			return &ExitError{Code: code}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(execCmd)
	execCmd.Flags().StringArrayVarP(&execLines, "command", "c", nil, "line to run, may be repeated")
	cobra.CheckErr(execCmd.MarkFlagRequired("command"))
}
