// Package main implements the aiapi example CLI using cobra.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const version = "0.1.0"

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "aiapi",
	Short: "aiapi — function-calling façade over an LLM chat API",
	Long: "aiapi registers ordinary functions with a structured spec and answers\n" +
		"natural-language queries by letting the model pick and call them",
}

// Execute runs the root command and exits on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Version = version

	rootCmd.AddCommand(queryCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(docsCmd)
}
