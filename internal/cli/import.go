package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miickii/HSKTrainer-sub000/internal/feed"
)

var importSheet string

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the vocabulary corpus from a word list (xlsx, csv or json)",
	Long: "Parses a vocabulary word list and replaces the whole corpus with it.\n" +
		"This wipes learning progress; run export-progress first and import-progress after.",
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			exitErr("opening store", err)
		}
		defer a.close()

		opts := feed.DefaultOptions()
		if importSheet != "" {
			opts.SheetName = importSheet
		}

		result, err := feed.ParseFile(args[0], opts)
		if err != nil {
			exitErr("parsing word list", err)
		}
		for _, problem := range result.Errors {
			fmt.Fprintf(cmd.ErrOrStderr(), "skipped: %s\n", problem)
		}

		imported, err := a.transfer.ImportFromRemote(ctx, result.Records)
		if err != nil {
			exitErr("importing vocabulary", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Imported %d words (%d rows skipped)\n", imported, len(result.Errors))
	},
}

func init() {
	importCmd.Flags().StringVar(&importSheet, "sheet", "", "Worksheet name for Excel files (default Sheet1)")
	RootCmd.AddCommand(importCmd)
}
