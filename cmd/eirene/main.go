// Command eirene is a minimal, in-memory demonstration host for the
// notebook CRDT core. It holds two replicas side by side, lets a caller
// drive edits into either one from the command line, and merges them on
// demand — standing in for the network transport and UI layers the core
// package leaves out of scope.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	gocrdt "github.com/rotationalio/eirene"
)

// host pairs a Notebook with the logger used to trace its operations.
type host struct {
	name     string
	notebook *gocrdt.Notebook
	log      *zap.Logger
}

func newHost(name string, log *zap.Logger) *host {
	return &host{
		name:     name,
		notebook: gocrdt.NewNotebook(gocrdt.NewReplicaID()),
		log:      log.With(zap.String("replica", name)),
	}
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, "eirene: failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := newRootCmd(logger).Execute(); err != nil {
		logger.Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}

func newRootCmd(logger *zap.Logger) *cobra.Command {
	root := &cobra.Command{
		Use:   "eirene",
		Short: "Demonstration host for the notebook CRDT core",
	}
	root.AddCommand(newRunCmd(logger))
	root.AddCommand(newMergeCmd(logger))
	return root
}

// newRunCmd drives a scripted sequence of edits against a single
// in-memory replica and prints its converged cell text, so the core's
// behavior can be exercised without a real transport.
func newRunCmd(logger *zap.Logger) *cobra.Command {
	var replicaName string
	var lines []string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Apply a sequence of cell edits to a single replica and print the result",
		RunE: func(cmd *cobra.Command, args []string) error {
			h := newHost(replicaName, logger)
			h.log.Info("replica started")

			if err := h.notebook.CreateCell(nil); err != nil {
				return err
			}
			for i, text := range lines {
				if err := h.notebook.UpdateCell(0, text); err != nil {
					return err
				}
				h.log.Info("cell updated", zap.Int("step", i), zap.String("text", text))
			}

			for _, cellText := range h.notebook.GetCellData() {
				fmt.Println(cellText)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&replicaName, "replica", "demo", "name for the in-memory replica, used only in log output")
	cmd.Flags().StringArrayVar(&lines, "text", nil, "successive values to set cell 0 to (repeatable)")
	return cmd
}

// newMergeCmd builds two independent replicas, applies a scripted edit to
// each, merges them in both directions, and prints the converged state —
// exercising commutativity end to end.
func newMergeCmd(logger *zap.Logger) *cobra.Command {
	var textA, textB string

	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Diverge two replicas and merge them back together",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newHost("a", logger)
			b := newHost("b", logger)

			if err := a.notebook.CreateCell(nil); err != nil {
				return err
			}
			if err := b.notebook.CreateCell(nil); err != nil {
				return err
			}
			if err := a.notebook.UpdateCell(0, textA); err != nil {
				return err
			}
			if err := b.notebook.UpdateCell(0, textB); err != nil {
				return err
			}

			if err := a.notebook.Merge(b.notebook); err != nil {
				return err
			}
			if err := b.notebook.Merge(a.notebook); err != nil {
				return err
			}
			logger.Info("replicas merged", zap.Strings("a", a.notebook.GetCellData()), zap.Strings("b", b.notebook.GetCellData()))

			for _, cellText := range a.notebook.GetCellData() {
				fmt.Println(cellText)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&textA, "a", "", "text to set cell 0 to on replica a")
	cmd.Flags().StringVar(&textB, "b", "", "text to set cell 0 to on replica b")
	return cmd
}
