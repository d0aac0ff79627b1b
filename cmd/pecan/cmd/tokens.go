package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pecan/internal/errors"
	"pecan/internal/lexer"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Print the token stream of a file",
	Long: `Prints one token per line as "line:col TYPE lexeme". Scanning stops at
the first malformed literal, which is reported.

Examples:
  pecan tokens main.pc
  echo "0xFF + 1" | pecan tokens`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	path := "-"
	if len(args) == 1 {
		path = args[0]
	}

	name, source, err := readSource(cmd, path)
	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), errors.NewErrorReporter(name, "").FormatError(errors.SourceUnreadable(name, err)))
		return reportedError{msg: "unreadable input"}
	}

	tokens, err := lexer.Tokenize(name, source)
	for _, tok := range tokens {
		fmt.Fprintln(cmd.OutOrStdout(), tok.String())
	}

	if err != nil {
		fmt.Fprint(cmd.ErrOrStderr(), errors.NewErrorReporter(name, source).Format(err))
		return reportedError{msg: "scanning failed"}
	}

	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d token(s)\n", len(tokens))
	}
	return nil
}
