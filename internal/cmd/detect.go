package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/Randomblock1/caffeinate2/internal/config"
	"github.com/Randomblock1/caffeinate2/internal/sleepwatch"
)

var (
	detectInterval  time.Duration
	detectThreshold time.Duration
)

var detectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect and report system sleep events",
	Long: `Watch the wall clock for gaps that can only be explained by the
system having slept, and report each one. Ctrl+C stops the watch and
prints a summary. Useful for verifying that caffeinate2 actually kept the
machine awake.`,
	Args: cobra.NoArgs,
	RunE: runDetect,
}

func init() {
	detectCmd.Flags().DurationVarP(&detectInterval, "interval", "i", 0, "time between clock checks (default from config, 5s)")
	detectCmd.Flags().DurationVar(&detectThreshold, "threshold", 0, "oversleep counted as a sleep event (default 2x interval)")
	rootCmd.AddCommand(detectCmd)
}

func runDetect(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := newLogger(cfg)

	interval := detectInterval
	if interval <= 0 {
		interval = cfg.Detect.Interval
	}
	threshold := detectThreshold
	if threshold <= 0 {
		threshold = cfg.Detect.Threshold
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := &sleepwatch.Watcher{
		Interval:  interval,
		Threshold: threshold,
		Log:       log,
		OnEvent: func(ev sleepwatch.Event) {
			fmt.Printf("Sleep detected! Slept for about %s, woke at %s\n",
				ev.Excess.Round(time.Second), ev.WokeAt.Format("2006-01-02 3:04:05 PM"))
		},
	}

	fmt.Println("Watching for sleep events. Ctrl+C to stop.")
	events := w.Run(ctx)

	count, avg := sleepwatch.Summarize(events)
	if count == 0 {
		fmt.Println("\nNo sleep was detected.")
		return nil
	}
	fmt.Printf("\nSleep was detected %d time(s), averaging %s.\n", count, avg.Round(time.Second))
	return nil
}
