package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/timzifer/interplist"
	cfgpkg "github.com/timzifer/interplist/internal/config"
	"github.com/timzifer/interplist/internal/logging"
	"github.com/timzifer/interplist/internal/program"
)

// NewRoot constructs the root command and registers the subcommands.
func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "interplist",
		Short:         "Stage interpreted programs and inspect the command queue",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("config", "", "TOML configuration file")
	root.PersistentFlags().String("log-level", "", "log level (debug|info|warn|error)")

	root.AddCommand(newDumpCommand(), newDrainCommand(), newSeekCommand())
	return root
}

// stageProgram builds a queue from the configuration flags and stages the
// program at path into it.
func stageProgram(cmd *cobra.Command, path string) (*interplist.CommandQueue, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	logLevel, _ := cmd.Flags().GetString("log-level")

	cfg, err := cfgpkg.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	logger, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}

	prog, err := program.Load(path)
	if err != nil {
		return nil, err
	}
	q := interplist.NewCommandQueue(cfg.QueueOptions(logger)...)
	n, err := prog.Stage(q)
	if err != nil {
		return nil, fmt.Errorf("stage %s: %w", path, err)
	}
	logger.Debug("program staged", "path", path, "commands", n, "queue_id", q.ID())
	return q, nil
}

func formatRecord(rec interplist.Record) string {
	desc := ""
	if cmd, err := rec.Command(); err == nil {
		desc = fmt.Sprintf("%+v", cmd)
	}
	return fmt.Sprintf("line=%d call_level=%d remap_level=%d type=%s %s",
		rec.LineNumber, rec.CallLevel, rec.RemapLevel, rec.Tag, desc)
}
