package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miickii/HSKTrainer-sub000/internal/config"
)

var resetYes bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset all learning progress (favorites are kept)",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if !resetYes {
			fmt.Fprintln(cmd.OutOrStdout(), "This wipes all learning progress. Re-run with --yes to confirm.")
			return
		}

		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			exitErr("opening store", err)
		}
		defer a.close()

		count, err := a.repo.ResetAllProgress(ctx)
		if err != nil {
			exitErr("resetting progress", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Reset progress for %d words\n", count)
	},
}

var favoriteCmd = &cobra.Command{
	Use:   "favorite <id>",
	Short: "Toggle the favorite flag on a word",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			exitErr("opening store", err)
		}
		defer a.close()

		w, err := a.repo.ToggleFavorite(ctx, args[0])
		if err != nil {
			exitErr("toggling favorite", err)
		}
		state := "off"
		if w.IsFavorite {
			state = "on"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: favorite %s\n", w.Simplified, state)
	},
}

var levelsCmd = &cobra.Command{
	Use:   "levels [levels]",
	Short: "Show or set the active HSK levels (e.g. \"1,2,3\")",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			exitErr("opening store", err)
		}
		defer a.close()

		if len(args) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "Active levels: %s\n", config.FormatLevels(a.cfg.ActiveLevels))
			return
		}

		levels, err := config.ParseLevels(args[0])
		if err != nil {
			exitErr("parsing levels", err)
		}
		if err := a.settings.Set(ctx, settingActiveLevels, config.FormatLevels(levels)); err != nil {
			exitErr("saving levels", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Active levels set to %s\n", config.FormatLevels(levels))
	},
}

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip confirmation")
	RootCmd.AddCommand(resetCmd)
	RootCmd.AddCommand(favoriteCmd)
	RootCmd.AddCommand(levelsCmd)
}
