// Package cmd wires the caffeinate2 command line.
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Randomblock1/caffeinate2/internal/config"
	"github.com/Randomblock1/caffeinate2/internal/duration"
	"github.com/Randomblock1/caffeinate2/internal/lock"
	"github.com/Randomblock1/caffeinate2/internal/logging"
	"github.com/Randomblock1/caffeinate2/internal/power"
	"github.com/Randomblock1/caffeinate2/internal/proc"
	"github.com/Randomblock1/caffeinate2/internal/runner"
)

var (
	flagTimeout string
	flagWaitPID int
	flagVerbose bool

	// exitCode is what the process exits with after a successful run; a
	// child command's status lands here so release-path warnings cannot
	// overwrite it.
	exitCode int
)

var rootCmd = &cobra.Command{
	Use:   "caffeinate2 [flags] [command...]",
	Short: "Prevent the system from sleeping",
	Long: `caffeinate2 keeps the machine awake. With no arguments, sleep stays
disabled until Ctrl+C. With --timeout, sleep stays disabled for the given
duration. With a command, sleep stays disabled while the command runs and
its exit code is propagated.

Concurrent instances share one registry: the first disables sleep and the
last one out re-enables it. Changing the sleep setting requires root.`,
	Args:         cobra.ArbitraryArgs,
	Version:      "2.0.0",
	SilenceUsage: true,
	RunE:         runRoot,
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		return 1
	}
	return exitCode
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/caffeinate2/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "verbose logging")

	rootCmd.Flags().StringVarP(&flagTimeout, "timeout", "t", "", `keep awake for a duration ("1d 2h 3m", "90m", or seconds)`)
	rootCmd.Flags().IntVarP(&flagWaitPID, "waitfor", "w", 0, "keep awake until the process with this PID exits")
}

func initConfig() {
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("CAFFEINATE2")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Config file is optional.
	_ = viper.ReadInConfig()
}

func runRoot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := newLogger(cfg)

	store := newStore(cfg, log)
	ctrl := power.New(log)

	// The interrupt routes through context cancellation into the same
	// release path as normal completion; the guard's own exactly-once
	// check covers any remaining race between the two.
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	guard, err := lock.Acquire(store, ctrl, log)
	if err != nil {
		return err
	}
	defer guard.Release()

	switch {
	case flagTimeout != "":
		d, err := duration.Parse(flagTimeout)
		if err != nil {
			return fmt.Errorf("invalid timeout %q: %w", flagTimeout, err)
		}
		fmt.Printf("Preventing sleep for %s.\n", d)
		runner.Sleep(ctx, d)

	case flagWaitPID > 0:
		fmt.Printf("Preventing sleep until process %d exits.\n", flagWaitPID)
		if err := runner.WaitFor(ctx, flagWaitPID); err != nil {
			log.Debug("wait interrupted", "error", err)
		}

	case len(args) > 0:
		fmt.Println("Preventing sleep until command finishes.")
		code, err := runner.Run(ctx, args, os.Stdout, os.Stderr)
		if err != nil {
			return err
		}
		exitCode = code

	default:
		fmt.Println("Preventing sleep until Ctrl+C is pressed.")
		<-ctx.Done()
	}

	guard.Release()
	return nil
}

// newLogger honors the configured level, with --verbose forcing debug.
func newLogger(cfg *config.Config) *slog.Logger {
	level := cfg.Logging.Level
	if flagVerbose {
		level = logging.LevelDebug
	}
	return logging.New(level)
}

// newStore builds the registry store for the calling process.
func newStore(cfg *config.Config, log *slog.Logger) *lock.Store {
	path := cfg.Lock.Path
	if path == "" {
		path = lock.DefaultPath()
	}
	return lock.NewStore(path, lock.DefaultMode(), proc.Self(), proc.Probe, log)
}
