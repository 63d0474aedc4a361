package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Randomblock1/caffeinate2/internal/config"
	"github.com/Randomblock1/caffeinate2/internal/power"
	"github.com/Randomblock1/caffeinate2/internal/proc"
	"github.com/Randomblock1/caffeinate2/internal/tui"
)

var statusWatch bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the sleep setting and current lock holders",
	Long: `Display whether system sleep is currently disabled and which
caffeinate2 instances are recorded in the shared registry. Stale entries
left by crashed instances are marked; they are reclaimed by the next
instance that acquires or releases the lock.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusWatch, "watch", false, "keep watching the registry for changes")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := newLogger(cfg)

	store := newStore(cfg, log)
	ctrl := power.New(log)

	fetch := func() (tui.Status, error) {
		ids, err := store.Snapshot()
		if err != nil {
			return tui.Status{}, err
		}

		var st tui.Status
		if disabled, err := ctrl.SleepDisabled(); err == nil {
			st.SleepDisabled = disabled
			st.SleepKnown = true
		}
		for _, id := range ids {
			h := tui.Holder{Identity: id, Alive: proc.Probe(id)}
			if id.StartTime != 0 {
				h.Since = time.Unix(int64(id.StartTime), 0)
			}
			st.Holders = append(st.Holders, h)
		}
		sort.Slice(st.Holders, func(i, j int) bool {
			return st.Holders[i].Identity.PID < st.Holders[j].Identity.PID
		})
		return st, nil
	}

	if statusWatch {
		if !styledStdout() {
			return fmt.Errorf("--watch needs a terminal")
		}
		return tui.Run(store.Path(), fetch)
	}

	st, err := fetch()
	if err != nil {
		return err
	}
	printStatus(os.Stdout, store.Path(), st)
	return nil
}

func printStatus(w io.Writer, path string, st tui.Status) {
	fmt.Fprintf(w, "Registry: %s\n", path)

	switch {
	case !st.SleepKnown:
		fmt.Fprintln(w, "System sleep: unknown")
	case st.SleepDisabled:
		fmt.Fprintln(w, "System sleep: disabled")
	default:
		fmt.Fprintln(w, "System sleep: enabled")
	}

	if len(st.Holders) == 0 {
		fmt.Fprintln(w, "No holders recorded.")
		return
	}

	fmt.Fprintf(w, "Holders (%d):\n", len(st.Holders))
	for _, h := range st.Holders {
		marker := "[alive]"
		if !h.Alive {
			marker = "[stale]"
		}
		if h.Since.IsZero() {
			fmt.Fprintf(w, "  pid %-8d %s\n", h.Identity.PID, marker)
			continue
		}
		fmt.Fprintf(w, "  pid %-8d started %-20s %s\n", h.Identity.PID, humanize.Time(h.Since), marker)
	}
}

// styledStdout reports whether stdout is a terminal that can take the
// watch UI.
func styledStdout() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
