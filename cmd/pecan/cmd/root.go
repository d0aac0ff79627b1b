package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pecan/internal/config"
)

var (
	cfgFile string
	verbose bool
	noColor bool

	cfg = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "pecan",
	Short: "Front end tools for the pecan language",
	Long: `pecan tokenizes and parses pecan source files.

Commands:
  parse    - parse files and print the syntax tree
  tokens   - print the token stream of a file
  repl     - interactive read-parse-print loop
  version  - print version information`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !isReported(err) {
		color.New(color.FgRed).Fprintf(rootCmd.ErrOrStderr(), "error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./pecan.toml, or $PECAN_CONFIG)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// loadConfig reads the config file and applies its output settings. Flags
// win over the file.
func loadConfig(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	if disabled, decided := cfg.ColorDisabled(); decided {
		color.NoColor = disabled
	}
	if noColor {
		color.NoColor = true
	}

	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "config: color=%s show_timing=%t\n", cfg.Output.Color, cfg.Timing())
	}
	return nil
}

// reportedError marks a failure whose diagnostics were already printed.
type reportedError struct {
	msg string
}

func (e reportedError) Error() string { return e.msg }

func isReported(err error) bool {
	_, ok := err.(reportedError)
	return ok
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}
