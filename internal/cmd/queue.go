package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

func newDumpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dump PROGRAM",
		Short: "Stage a program and print the queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := stageProgram(cmd, args[0])
			if err != nil {
				return err
			}
			return q.Dump(cmd.OutOrStdout())
		},
	}
}

func newDrainCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "drain PROGRAM",
		Short: "Stage a program and dequeue every command in order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := stageProgram(cmd, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for {
				rec, ok := q.Dequeue()
				if !ok {
					break
				}
				fmt.Fprintln(out, formatRecord(rec))
			}
			m := q.Metrics()
			fmt.Fprintf(out, "drained %d commands\n", m.Dequeues)
			return nil
		},
	}
}

func newSeekCommand() *cobra.Command {
	seekCmd := &cobra.Command{
		Use:   "seek PROGRAM",
		Short: "Find the command staged for a source line",
		Long: `Find the command staged for a source line.

Without --after the first command of the given line is printed; line 0
selects the first command of the program. With --after the first command
of any later line is printed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			line, _ := cmd.Flags().GetInt("line")
			after, _ := cmd.Flags().GetBool("after")
			if line < 0 {
				return errors.New("--line must not be negative")
			}

			q, err := stageProgram(cmd, args[0])
			if err != nil {
				return err
			}
			find := q.FindByLine
			if after {
				find = q.FindNextAfterLine
			}
			out := cmd.OutOrStdout()
			rec, ok := find(line)
			if !ok {
				fmt.Fprintln(out, "not found")
				return nil
			}
			fmt.Fprintln(out, formatRecord(rec))
			return nil
		},
	}
	seekCmd.Flags().Int("line", 0, "source line to seek")
	seekCmd.Flags().Bool("after", false, "seek the first command after the line")
	return seekCmd
}
