package commands

import (
	"github.com/Grusburk/intecmd/core/vos"
)

// Pwd prints the current directory.
func Pwd(virtOS vos.VOS) int {
	cmd := &SimpleCommand{
		Use:   "pwd",
		Short: "Print the name of the current working directory.",
	}

	return cmd.Run(virtOS, func() int {
		if len(cmd.Flags().Args()) > 0 {
			writeLine(virtOS.Stdout(), "pwd: too many arguments")
			return 1
		}

		writeLine(virtOS.Stdout(), virtOS.Getwd())
		return 0
	})
}

var _ vos.ProcessFunc = Pwd

func init() {
	mustAddCmd("pwd", Pwd)
}
