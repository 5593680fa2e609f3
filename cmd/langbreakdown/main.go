// Command langbreakdown walks a directory tree and prints a per-language
// byte-size breakdown, the way a github/linguist-style "linguist" CLI front
// end would, built on top of pkg/langident.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/brindlecode/langident/cmd/langbreakdown/commands"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "langbreakdown",
		Short: "Language breakdown - per-language byte-size summary of a directory tree",
		Long: `langbreakdown walks a directory tree, classifies each file
(vendor, documentation, dotfile, configuration), identifies the language of
what's left, and prints a size breakdown by language.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(commands.NewBreakdownCommand())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
