package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/miickii/HSKTrainer-sub000/internal/reminder"
)

var remindNow bool

// stdoutNotifier prints the reminder to the terminal running the job.
type stdoutNotifier struct{}

func (stdoutNotifier) SendReminder(dueCount int) error {
	_, err := fmt.Printf("You have %d words due for review. Run `hsktrainer practice`.\n", dueCount)
	return err
}

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Run the daily due-words reminder",
	Long:  "Stays in the foreground and prints a reminder every day at the configured hour (HSK_REMINDER_HOUR).",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		a, err := openApp(ctx)
		if err != nil {
			exitErr("opening store", err)
		}
		defer a.close()

		r := reminder.New(a.repo, stdoutNotifier{}, a.cfg.ReminderHour, a.log)
		if remindNow {
			if err := r.RunManualCheck(ctx); err != nil {
				exitErr("checking due words", err)
			}
			return
		}

		if err := r.Start(); err != nil {
			exitErr("starting reminder", err)
		}
		defer r.Stop()
		fmt.Fprintf(cmd.OutOrStdout(), "Reminder running daily at %02d:00. Press Ctrl+C to stop.\n", a.cfg.ReminderHour)

		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
	},
}

func init() {
	remindCmd.Flags().BoolVar(&remindNow, "now", false, "Check once and exit instead of scheduling")
	RootCmd.AddCommand(remindCmd)
}
