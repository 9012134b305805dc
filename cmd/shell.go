package cmd

import (
	"log"
	"os"

	"github.com/Grusburk/intecmd/core/shell"
	"github.com/Grusburk/intecmd/core/vos"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const defaultWidth = 80

// terminalPTY describes the terminal the process is attached to.
func terminalPTY() vos.PTY {
	stdin, stdout := int(os.Stdin.Fd()), int(os.Stdout.Fd())
	if !term.IsTerminal(stdin) || !term.IsTerminal(stdout) {
		return vos.PTY{Width: defaultWidth}
	}

	width, _, err := term.GetSize(stdout)
	if err != nil || width <= 0 {
		width = defaultWidth
	}
	return vos.PTY{Width: width, IsPTY: true}
}

// shellCmd runs the interactive shell on the local terminal
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Run the interactive shell.",
	Args:  cobra.ExactArgs(0),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true

		shellLogger := log.New(cmd.ErrOrStderr(), "[intecmd] ", 0)
		cfg, err := loadConfig(shellLogger)
		if err != nil {
			return err
		}

		local, err := newLocalSession(cfg, sessionIO{
			stdin:  os.Stdin,
			stdout: cmd.OutOrStdout(),
			stderr: cmd.ErrOrStderr(),
			pty:    terminalPTY(),
		})
		if err != nil {
			return err
		}
		defer local.Close()

		sh, err := shell.NewInteractive(local.Login, local.Options)
		if err != nil {
			return err
		}
		defer sh.Close()

		if code := sh.RunInteractive(); code != 0 {
			cmd.SilenceErrors = true
			return &ExitError{Code: code}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(shellCmd)
}
