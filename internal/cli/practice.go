package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/miickii/HSKTrainer-sub000/pkg/models"
)

var (
	practiceRounds  int
	practiceNewOnly bool
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Run a practice session in the terminal",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			exitErr("opening store", err)
		}
		defer a.close()

		out := cmd.OutOrStdout()
		in := bufio.NewScanner(cmd.InOrStdin())
		levels := a.cfg.ActiveLevels

		correct, total := 0, 0
		for round := 0; round < practiceRounds; round++ {
			word, err := a.repo.SelectPracticeWord(ctx, levels, practiceNewOnly)
			if err != nil {
				exitErr("selecting word", err)
			}
			if word == nil {
				fmt.Fprintln(out, "No practicable words for the active levels. Import a word list first.")
				return
			}

			printWord(out, word, round+1, practiceRounds)
			fmt.Fprint(out, "Did you get it right? [y/n/q] ")
			if !in.Scan() {
				break
			}
			answer := strings.ToLower(strings.TrimSpace(in.Text()))
			if answer == "q" {
				break
			}

			wasCorrect := answer == "y" || answer == "yes"
			updated, err := a.repo.RecordPracticeOutcome(ctx, word.ID, wasCorrect)
			if err != nil {
				exitErr("recording outcome", err)
			}
			total++
			if wasCorrect {
				correct++
			}
			fmt.Fprintf(out, "-> level %d, next review %s\n\n", updated.SRSLevel, updated.NextReview)
		}

		if total > 0 {
			fmt.Fprintf(out, "Session done: %d/%d correct\n", correct, total)
		}
	},
}

func printWord(out io.Writer, w *models.Word, round, rounds int) {
	fmt.Fprintf(out, "[%d/%d] %s (%s)\n", round, rounds, w.Simplified, w.Pinyin)
	if len(w.Meanings) > 0 {
		fmt.Fprintf(out, "      %s\n", strings.Join(w.Meanings, "; "))
	}
	for _, ex := range w.Examples {
		fmt.Fprintf(out, "      %s - %s\n", ex.Simplified, ex.English)
	}
}

func init() {
	practiceCmd.Flags().IntVarP(&practiceRounds, "rounds", "n", 10, "Number of practice rounds")
	practiceCmd.Flags().BoolVar(&practiceNewOnly, "new", false, "Only words never answered correctly")
	RootCmd.AddCommand(practiceCmd)
}
