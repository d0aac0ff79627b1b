package cmd

import (
	"fmt"
	"os/user"

	"github.com/spf13/cobra"

	"pecan/repl"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start an interactive read-parse-print loop",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		name := "there"
		if currentUser, err := user.Current(); err == nil {
			name = currentUser.Username
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Welcome to the pecan REPL, %s! Type :help for commands.\n", name)
		repl.Start(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(replCmd)
}
