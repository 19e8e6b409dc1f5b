package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/miickii/HSKTrainer-sub000/internal/vocab"
	"github.com/miickii/HSKTrainer-sub000/pkg/models"
)

var (
	dueCount     int
	dueLevel     int
	searchLevel  int
	searchFilter string
)

var dueCmd = &cobra.Command{
	Use:   "due",
	Short: "List the words for the next review session",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			exitErr("opening store", err)
		}
		defer a.close()

		words, err := a.repo.GetDueForReview(ctx, dueCount, levelArg(dueLevel))
		if err != nil {
			exitErr("listing due words", err)
		}
		if len(words) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "Nothing to review.")
			return
		}
		printWordList(cmd.OutOrStdout(), words)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [term]",
	Short: "Search and filter the vocabulary corpus",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			exitErr("opening store", err)
		}
		defer a.close()

		term := ""
		if len(args) > 0 {
			term = args[0]
		}
		words, err := a.repo.SearchAndFilter(ctx, term, levelArg(searchLevel), vocab.FilterType(searchFilter))
		if err != nil {
			exitErr("searching", err)
		}
		if len(words) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No matches.")
			return
		}
		printWordList(cmd.OutOrStdout(), words)
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show corpus and learning statistics",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			exitErr("opening store", err)
		}
		defer a.close()

		stats, err := a.repo.Stats(ctx)
		if err != nil {
			exitErr("computing stats", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Words:     %d\n", stats.TotalWords)
		fmt.Fprintf(out, "Due today: %d\n", stats.DueToday)
		fmt.Fprintf(out, "Mastered:  %d\n", stats.Mastered)
		fmt.Fprintf(out, "Favorites: %d\n", stats.Favorites)

		levels := make([]int, 0, len(stats.ByLevel))
		for l := range stats.ByLevel {
			levels = append(levels, l)
		}
		sort.Ints(levels)
		for _, l := range levels {
			fmt.Fprintf(out, "  %s: %d\n", levelName(l), stats.ByLevel[l])
		}
	},
}

func levelArg(level int) *int {
	if level <= 0 {
		return nil
	}
	return &level
}

func levelName(level int) string {
	switch {
	case level == models.LevelIdiom:
		return "Idioms"
	case level >= models.LevelMin && level <= models.LevelMax:
		return fmt.Sprintf("HSK %d", level)
	default:
		return fmt.Sprintf("Level %d", level)
	}
}

func printWordList(out io.Writer, words []models.Word) {
	for _, w := range words {
		marker := " "
		if w.IsFavorite {
			marker = "*"
		}
		fmt.Fprintf(out, "%s %-8s %-16s %s  (%s, srs %d, next %s)\n",
			marker, w.Simplified, w.Pinyin, strings.Join(w.Meanings, "; "),
			levelName(w.Level), w.SRSLevel, w.NextReview)
	}
}

func init() {
	dueCmd.Flags().IntVarP(&dueCount, "count", "n", 10, "Session size")
	dueCmd.Flags().IntVarP(&dueLevel, "level", "l", 0, "Restrict to one HSK level (0 = all)")
	searchCmd.Flags().IntVarP(&searchLevel, "level", "l", 0, "Restrict to one HSK level (0 = all)")
	searchCmd.Flags().StringVarP(&searchFilter, "filter", "f", string(vocab.FilterAll), "Filter: all, mastered, learning or favorite")
	RootCmd.AddCommand(dueCmd)
	RootCmd.AddCommand(searchCmd)
	RootCmd.AddCommand(statsCmd)
}
