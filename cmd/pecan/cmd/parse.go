package cmd

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pecan/internal/errors"
	"pecan/internal/parser"
)

var (
	parseExprOnly bool
	parseQuiet    bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file...]",
	Short: "Parse files and print the syntax tree",
	Long: `Parses each file and prints its syntax tree in canonical form, with
every binary and unary operation parenthesized. With no file, or "-",
the source is read from stdin.

Examples:
  pecan parse main.pc
  pecan parse --quiet src/*.pc
  echo "1 + 2 * 3" | pecan parse --expr`,
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().BoolVarP(&parseExprOnly, "expr", "e", false, "parse the input as a single expression")
	parseCmd.Flags().BoolVarP(&parseQuiet, "quiet", "q", false, "only report errors")
}

func runParse(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"-"}
	}

	failed := 0
	for _, path := range args {
		if !parseOne(cmd, path) {
			failed++
		}
	}

	if failed > 0 {
		return reportedError{msg: fmt.Sprintf("%d of %d input(s) failed to parse", failed, len(args))}
	}
	return nil
}

func parseOne(cmd *cobra.Command, path string) bool {
	startTime := time.Now()
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()

	name, source, err := readSource(cmd, path)
	if err != nil {
		fmt.Fprint(errOut, errors.NewErrorReporter(name, "").FormatError(errors.SourceUnreadable(name, err)))
		return false
	}

	var tree fmt.Stringer
	if parseExprOnly {
		tree, err = parser.ParseExpr(source)
	} else {
		tree, err = parser.Parse(name, source)
	}

	duration := formatDuration(time.Since(startTime))

	if err != nil {
		fmt.Fprint(errOut, errors.NewErrorReporter(name, source).Format(err))
		if cfg.Timing() {
			color.New(color.FgRed).Fprintf(errOut, "Parsing %s failed after %s\n", name, duration)
		}
		return false
	}

	if !parseQuiet {
		fmt.Fprintln(out, tree.String())
	}
	if cfg.Timing() {
		color.New(color.FgGreen).Fprintf(out, "Successfully parsed %s in %s\n", name, duration)
	}
	return true
}

// readSource reads path, or stdin for "-".
func readSource(cmd *cobra.Command, path string) (name, source string, err error) {
	if path == "-" {
		content, err := io.ReadAll(cmd.InOrStdin())
		return "<stdin>", string(content), err
	}

	content, err := os.ReadFile(path)
	return path, string(content), err
}
