package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/miickii/HSKTrainer-sub000/internal/transfer"
)

var exportOutput string

var exportProgressCmd = &cobra.Command{
	Use:   "export-progress",
	Short: "Write a learning-progress snapshot to a file (or stdout)",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			exitErr("opening store", err)
		}
		defer a.close()

		snapshot, err := a.transfer.ExportProgress(ctx)
		if err != nil {
			exitErr("exporting progress", err)
		}

		out := cmd.OutOrStdout()
		if exportOutput != "" {
			f, err := os.Create(exportOutput)
			if err != nil {
				exitErr("creating output file", err)
			}
			defer f.Close()
			out = f
		}
		if err := transfer.WriteSnapshot(out, snapshot); err != nil {
			exitErr("writing snapshot", err)
		}
		if exportOutput != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Exported progress for %d words to %s\n",
				len(snapshot.ProgressData), exportOutput)
		}
	},
}

var importProgressCmd = &cobra.Command{
	Use:   "import-progress <file>",
	Short: "Merge a previously exported progress snapshot back into the corpus",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			exitErr("opening store", err)
		}
		defer a.close()

		f, err := os.Open(args[0])
		if err != nil {
			exitErr("opening snapshot", err)
		}
		defer f.Close()

		snapshot, err := transfer.ReadSnapshot(f)
		if err != nil {
			exitErr("reading snapshot", err)
		}

		merged, err := a.transfer.ImportProgress(ctx, snapshot)
		if err != nil {
			exitErr("importing progress", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Merged progress for %d of %d words\n",
			merged, len(snapshot.ProgressData))
	},
}

func init() {
	exportProgressCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
	RootCmd.AddCommand(exportProgressCmd)
	RootCmd.AddCommand(importProgressCmd)
}
