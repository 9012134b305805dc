package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Grusburk/intecmd/core/logger"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

var (
	reportSummary bool
)

var logsCmd = &cobra.Command{
	Use:     "logs",
	Aliases: []string{"log"},
	Short:   "Explore the session event log.",
}

// openEventLog opens the log named by args, or the configured event log.
func openEventLog(cmd *cobra.Command, args []string) (io.ReadCloser, error) {
	if len(args) > 0 {
		return os.Open(args[0])
	}

	cfg, err := loadConfig(log.New(cmd.ErrOrStderr(), "[logs] ", 0))
	if err != nil {
		return nil, err
	}
	return cfg.ReadAppLog()
}

// catCommand prints events one per line
var catCommand = &cobra.Command{
	Use:   "cat [LOG]",
	Short: "Print the events of a log in a readable form.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		fd, err := openEventLog(cmd, args)
		if err != nil {
			return err
		}
		defer fd.Close()

		w := cmd.OutOrStdout()
		return logger.ReadJSONLinesLog(fd, func(le *logger.LogEntry) {
			fmt.Fprintln(w, formatEntry(le))
		})
	},
}

func formatEntry(le *logger.LogEntry) string {
	ts := time.UnixMicro(le.TimestampMicros).UTC().Format(time.RFC3339)
	session := le.SessionId
	if len(session) > 8 {
		session = session[:8]
	}

	var detail string
	switch event := le.GetLogType().(type) {
	case *logger.SessionStart:
		detail = fmt.Sprintf("session start user=%s dir=%s convention=%s", event.User, event.Directory, event.Convention)
	case *logger.SessionEnd:
		detail = fmt.Sprintf("session end exit=%d", event.ExitCode)
	case *logger.RunCommand:
		detail = fmt.Sprintf("run %q status=%d", strings.Join(event.Command, " "), event.Status)
	case *logger.UnknownCommand:
		detail = fmt.Sprintf("unknown %q", strings.Join(event.Command, " "))
	case *logger.InvalidInvocation:
		detail = fmt.Sprintf("invalid %q: %s", strings.Join(event.Command, " "), event.Error)
	case *logger.DirectoryChanged:
		detail = fmt.Sprintf("cd %s -> %s", event.From, event.To)
	default:
		raw, _ := json.Marshal(le)
		detail = string(raw)
	}

	return fmt.Sprintf("%s %s %s", ts, session, detail)
}

// reportCommand aggregates the events of a log
var reportCommand = &cobra.Command{
	Use:   "report [LOG]",
	Short: "Show a report of events.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		fd, err := openEventLog(cmd, args)
		if err != nil {
			return err
		}
		defer fd.Close()

		var report logger.Report
		if err := logger.ReadJSONLinesLog(fd, report.Update); err != nil {
			return err
		}

		if reportSummary {
			fmt.Fprint(cmd.OutOrStdout(), report.Summary())
			return nil
		}

		out, err := yaml.Marshal(report)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), string(out))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(logsCmd)
	logsCmd.AddCommand(catCommand)
	logsCmd.AddCommand(reportCommand)

	reportCommand.Flags().BoolVar(&reportSummary, "summary", false, "print a plain text summary instead of YAML")
}
